package trainer

import (
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"backprop-forge/internal/dataset"
	"backprop-forge/internal/network"
)

// CaseReport is the forward-only result for one case.
type CaseReport struct {
	Name    string
	Outputs []float64
	Targets []float64
	// Error is sum_i (target[i]-output[i])^2, zero when the case has no target.
	Error float64
	// Strongest is the index of the largest output.
	Strongest int
}

// Evaluate runs the forward pass over cases without updating w.
func Evaluate(w *network.Weights, cases []dataset.Case) ([]CaseReport, error) {
	reports := make([]CaseReport, 0, len(cases))
	for m, c := range cases {
		act, err := network.Forward(w, c.Input)
		if err != nil {
			return nil, errors.Wrapf(err, "case %d (%s)", m, c.Name)
		}
		r := CaseReport{
			Name:      c.Name,
			Outputs:   act.Output,
			Targets:   c.Target,
			Strongest: floats.MaxIdx(act.Output),
		}
		if c.HasTarget() {
			if len(c.Target) != len(act.Output) {
				return nil, errors.Wrapf(network.ErrConfiguration, "case %d (%s): target has %d values, network produces %d",
					m, c.Name, len(c.Target), len(act.Output))
			}
			r.Error = squaredDistance(c.Target, act.Output)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// TotalError is half the summed case error over reports, the quantity the
// training loop compares against its threshold.
func TotalError(reports []CaseReport) float64 {
	total := 0.0
	for _, r := range reports {
		total += r.Error
	}
	return total / 2
}

// LogReports prints one line per case under the given set label.
func LogReports(set string, reports []CaseReport) {
	for _, r := range reports {
		if r.Targets != nil {
			log.Printf("set=%s case=%s error=%.6g outputs=[%s] targets=[%s] strongest=%d",
				set, r.Name, r.Error, formatVector(r.Outputs), formatVector(r.Targets), r.Strongest)
			continue
		}
		log.Printf("set=%s case=%s outputs=[%s] strongest=%d", set, r.Name, formatVector(r.Outputs), r.Strongest)
	}
}

func squaredDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 6, 64)
	}
	return strings.Join(parts, " ")
}

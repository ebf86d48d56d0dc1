package trainer

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"backprop-forge/internal/dataset"
	"backprop-forge/internal/metrics"
	"backprop-forge/internal/network"
)

// State is where the training controller stands.
type State int

const (
	Running State = iota
	Converged
	MaxIterationsReached
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations_reached"
	default:
		return "unknown"
	}
}

const (
	DefaultLearningRate   = 0.1
	DefaultErrorThreshold = 1e-9
	DefaultMaxIterations  = 100000000
	DefaultReportEvery    = 1000
)

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	LearningRate   float64
	ErrorThreshold float64
	// MaxIterations caps the number of passes. Zero stops before the first pass.
	MaxIterations int
	ReportEvery   int
	// RunID tags progress lines; empty omits it.
	RunID string
	// Progress, when set, is called at the ReportEvery cadence.
	Progress func(iteration int, totalError float64)
}

// Result is the training state at the moment the loop stopped.
type Result struct {
	State      State
	Iterations int
	Error      float64
}

// Run trains w in place with online backpropagation until the total error
// drops to ErrorThreshold or MaxIterations passes have run.
func Run(w *network.Weights, cases []dataset.Case, cfg RunConfig) (Result, error) {
	if cfg.LearningRate <= 0 {
		return Result{}, errors.Wrapf(network.ErrConfiguration, "trainer: learning rate must be > 0 (got %g)", cfg.LearningRate)
	}
	if cfg.ErrorThreshold <= 0 {
		return Result{}, errors.Wrapf(network.ErrConfiguration, "trainer: error threshold must be > 0 (got %g)", cfg.ErrorThreshold)
	}
	if cfg.MaxIterations < 0 {
		return Result{}, errors.Wrapf(network.ErrConfiguration, "trainer: max iterations must be >= 0 (got %d)", cfg.MaxIterations)
	}
	if cfg.ReportEvery <= 0 {
		cfg.ReportEvery = DefaultReportEvery
	}
	if err := dataset.Validate(dataset.Sets{Training: cases}, w.Topology()); err != nil {
		return Result{}, err
	}

	res := Result{State: Running}
	if cfg.MaxIterations == 0 {
		res.State = MaxIterationsReached
		return res, nil
	}

	var window metrics.Window
	for res.State == Running {
		start := time.Now()
		totalError, err := Pass(w, cases, cfg.LearningRate)
		if err != nil {
			return res, err
		}
		window.Record(len(cases), time.Since(start), totalError)
		res.Error = totalError

		if totalError <= cfg.ErrorThreshold {
			res.State = Converged
			break
		}
		res.Iterations++
		if res.Iterations >= cfg.MaxIterations {
			res.State = MaxIterationsReached
			break
		}
		if res.Iterations%cfg.ReportEvery == 0 {
			report(cfg, res.Iterations, window.Snapshot())
		}
	}

	log.Printf("%sstate=%s iterations=%d error=%.6g", runPrefix(cfg.RunID), res.State, res.Iterations, res.Error)
	return res, nil
}

// Pass trains on every case once, in order, applying each update before the
// next case. It returns half the summed case squared error.
func Pass(w *network.Weights, cases []dataset.Case, learningRate float64) (float64, error) {
	total := 0.0
	for m, c := range cases {
		caseError, err := network.TrainCase(w, c.Input, c.Target, learningRate)
		if err != nil {
			return 0, errors.Wrapf(err, "case %d (%s)", m, c.Name)
		}
		total += caseError
	}
	return total / 2, nil
}

func report(cfg RunConfig, iteration int, snap metrics.Snapshot) {
	log.Printf("%siteration=%d cases_per_sec=%.1f pass_ms=%.4f error=%.6g",
		runPrefix(cfg.RunID),
		iteration,
		snap.CasesPerSec,
		snap.AvgPassMS,
		snap.LastError,
	)
	if cfg.Progress != nil {
		cfg.Progress(iteration, snap.LastError)
	}
}

func runPrefix(runID string) string {
	if runID == "" {
		return ""
	}
	return "run=" + runID + " "
}

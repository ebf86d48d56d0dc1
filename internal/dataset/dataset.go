package dataset

import (
	"github.com/pkg/errors"

	"backprop-forge/internal/network"
)

// Case is one input vector, optionally paired with the output it should produce.
type Case struct {
	Name   string
	Input  []float64
	Target []float64
}

// HasTarget reports whether the case can be scored.
func (c Case) HasTarget() bool {
	return len(c.Target) > 0
}

// Sets bundles the cases a run trains on and the held-out cases it reports on.
type Sets struct {
	Training   []Case
	Evaluation []Case
}

// Provider produces the training and evaluation sets for a run.
type Provider interface {
	Provide() (Sets, error)
}

// Dimensions infers input and output sizes from the first training case.
func (s Sets) Dimensions() (inputs, outputs int, err error) {
	if len(s.Training) == 0 {
		return 0, 0, errors.Wrap(network.ErrConfiguration, "training set is empty")
	}
	first := s.Training[0]
	return len(first.Input), len(first.Target), nil
}

// Validate checks every vector against topo. Training cases need targets;
// evaluation targets are optional.
func Validate(s Sets, topo network.Topology) error {
	if len(s.Training) == 0 {
		return errors.Wrap(network.ErrConfiguration, "training set is empty")
	}
	for m, c := range s.Training {
		if err := checkCase(c, topo, true); err != nil {
			return errors.Wrapf(err, "training case %d (%s)", m, c.Name)
		}
	}
	for m, c := range s.Evaluation {
		if err := checkCase(c, topo, false); err != nil {
			return errors.Wrapf(err, "evaluation case %d (%s)", m, c.Name)
		}
	}
	return nil
}

func checkCase(c Case, topo network.Topology, needTarget bool) error {
	if len(c.Input) != topo.Inputs {
		return errors.Wrapf(network.ErrConfiguration, "input has %d values, want %d", len(c.Input), topo.Inputs)
	}
	if !needTarget && !c.HasTarget() {
		return nil
	}
	if len(c.Target) != topo.Outputs {
		return errors.Wrapf(network.ErrConfiguration, "target has %d values, want %d", len(c.Target), topo.Outputs)
	}
	return nil
}

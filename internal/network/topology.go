package network

import "github.com/pkg/errors"

var (
	// ErrConfiguration marks a topology or dimension problem detected before training.
	ErrConfiguration = errors.New("network: configuration error")
	// ErrFormat marks a weight file that does not hold what the topology needs.
	ErrFormat = errors.New("network: weight file format error")
)

// Topology fixes the layer sizes of a two-layer network.
type Topology struct {
	Inputs  int
	Hiddens int
	Outputs int
}

// Validate verifies every layer has at least one unit.
func (t Topology) Validate() error {
	if t.Inputs <= 0 {
		return errors.Wrapf(ErrConfiguration, "inputs must be > 0 (got %d)", t.Inputs)
	}
	if t.Hiddens <= 0 {
		return errors.Wrapf(ErrConfiguration, "hiddens must be > 0 (got %d)", t.Hiddens)
	}
	if t.Outputs <= 0 {
		return errors.Wrapf(ErrConfiguration, "outputs must be > 0 (got %d)", t.Outputs)
	}
	return nil
}

// WeightCount is the number of values a weight file must carry after its header.
func (t Topology) WeightCount() int {
	return t.Inputs*t.Hiddens + t.Hiddens*t.Outputs
}

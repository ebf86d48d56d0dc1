package network

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Range is the half-open interval [Min, Max) random weights are drawn from.
type Range struct {
	Min float64
	Max float64
}

// DefaultRange yields weights in [-1, 1).
var DefaultRange = Range{Min: -1, Max: 1}

// Weights owns both weight matrices of a two-layer network. The input->hidden
// matrix is Inputs x Hiddens and the hidden->output matrix is Hiddens x Outputs;
// neither can be replaced after construction.
type Weights struct {
	topo         Topology
	inputHidden  *mat.Dense
	hiddenOutput *mat.Dense
}

// NewZeroWeights allocates both matrices filled with zeros.
func NewZeroWeights(topo Topology) (*Weights, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	return &Weights{
		topo:         topo,
		inputHidden:  mat.NewDense(topo.Inputs, topo.Hiddens, nil),
		hiddenOutput: mat.NewDense(topo.Hiddens, topo.Outputs, nil),
	}, nil
}

// NewRandomWeights draws every weight independently and uniformly from r.
func NewRandomWeights(topo Topology, r Range, seed int64) (*Weights, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	if !(r.Max > r.Min) {
		return nil, errors.Wrapf(ErrConfiguration, "weight range [%g, %g) is empty", r.Min, r.Max)
	}
	rng := rand.New(rand.NewSource(seed))
	span := r.Max - r.Min
	below := math.Nextafter(r.Max, r.Min)
	draw := func(n int) []float64 {
		data := make([]float64, n)
		for i := range data {
			data[i] = math.Min(rng.Float64()*span+r.Min, below)
		}
		return data
	}
	return &Weights{
		topo:         topo,
		inputHidden:  mat.NewDense(topo.Inputs, topo.Hiddens, draw(topo.Inputs*topo.Hiddens)),
		hiddenOutput: mat.NewDense(topo.Hiddens, topo.Outputs, draw(topo.Hiddens*topo.Outputs)),
	}, nil
}

// Topology reports the layer sizes the matrices were built for.
func (w *Weights) Topology() Topology {
	return w.topo
}

// Clone returns a deep copy.
func (w *Weights) Clone() *Weights {
	return &Weights{
		topo:         w.topo,
		inputHidden:  mat.DenseCopyOf(w.inputHidden),
		hiddenOutput: mat.DenseCopyOf(w.hiddenOutput),
	}
}

// Equal reports whether both matrices hold identical values.
func (w *Weights) Equal(other *Weights) bool {
	if other == nil || w.topo != other.topo {
		return false
	}
	return mat.Equal(w.inputHidden, other.inputHidden) && mat.Equal(w.hiddenOutput, other.hiddenOutput)
}

// InputHidden exposes the input->hidden weights for reading.
func (w *Weights) InputHidden() mat.Matrix {
	return w.inputHidden
}

// HiddenOutput exposes the hidden->output weights for reading.
func (w *Weights) HiddenOutput() mat.Matrix {
	return w.hiddenOutput
}

// SetInputHidden overwrites the weight from input k to hidden unit j.
func (w *Weights) SetInputHidden(k, j int, v float64) {
	w.inputHidden.Set(k, j, v)
}

// SetHiddenOutput overwrites the weight from hidden unit j to output i.
func (w *Weights) SetHiddenOutput(j, i int, v float64) {
	w.hiddenOutput.Set(j, i, v)
}

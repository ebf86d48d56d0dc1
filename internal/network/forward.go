package network

import "github.com/pkg/errors"

// Activations holds one case's forward pass. The pre-activation sums are kept
// because the error signals are computed from them.
type Activations struct {
	Hidden     []float64
	Output     []float64
	HiddenSums []float64
	OutputSums []float64
}

// Forward propagates input through both layers without touching w.
func Forward(w *Weights, input []float64) (Activations, error) {
	topo := w.topo
	if len(input) != topo.Inputs {
		return Activations{}, errors.Wrapf(ErrConfiguration, "input has %d values, network expects %d", len(input), topo.Inputs)
	}
	act := Activations{
		Hidden:     make([]float64, topo.Hiddens),
		Output:     make([]float64, topo.Outputs),
		HiddenSums: make([]float64, topo.Hiddens),
		OutputSums: make([]float64, topo.Outputs),
	}
	ih := w.inputHidden.RawMatrix()
	ho := w.hiddenOutput.RawMatrix()
	for j := 0; j < topo.Hiddens; j++ {
		sum := 0.0
		for k := 0; k < topo.Inputs; k++ {
			sum += input[k] * ih.Data[k*ih.Stride+j]
		}
		act.HiddenSums[j] = sum
		act.Hidden[j] = Sigmoid(sum)
	}
	for i := 0; i < topo.Outputs; i++ {
		sum := 0.0
		for j := 0; j < topo.Hiddens; j++ {
			sum += act.Hidden[j] * ho.Data[j*ho.Stride+i]
		}
		act.OutputSums[i] = sum
		act.Output[i] = Sigmoid(sum)
	}
	return act, nil
}

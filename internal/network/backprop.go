package network

import "github.com/pkg/errors"

// Deltas are the error signals of one case.
type Deltas struct {
	Output []float64
	Hidden []float64
}

// ComputeDeltas returns the output and hidden error signals for act against
// target, plus the case squared error sum_i (target[i]-output[i])^2.
// Hidden signals read HiddenOutput as it stands, so call this before
// ApplyUpdate.
func ComputeDeltas(w *Weights, act Activations, target []float64) (Deltas, float64, error) {
	topo := w.topo
	if len(target) != topo.Outputs {
		return Deltas{}, 0, errors.Wrapf(ErrConfiguration, "target has %d values, network expects %d", len(target), topo.Outputs)
	}
	d := Deltas{
		Output: make([]float64, topo.Outputs),
		Hidden: make([]float64, topo.Hiddens),
	}
	caseError := 0.0
	for i := 0; i < topo.Outputs; i++ {
		diff := target[i] - act.Output[i]
		d.Output[i] = diff * SigmoidDerivative(act.OutputSums[i])
		caseError += diff * diff
	}
	for j := 0; j < topo.Hiddens; j++ {
		omega := 0.0
		for i := 0; i < topo.Outputs; i++ {
			omega += d.Output[i] * w.hiddenOutput.At(j, i)
		}
		d.Hidden[j] = omega * SigmoidDerivative(act.HiddenSums[j])
	}
	return d, caseError, nil
}

// ApplyUpdate moves every weight once along the error signals in d.
func ApplyUpdate(w *Weights, input []float64, act Activations, d Deltas, learningRate float64) {
	topo := w.topo
	ho := w.hiddenOutput.RawMatrix()
	for j := 0; j < topo.Hiddens; j++ {
		for i := 0; i < topo.Outputs; i++ {
			ho.Data[j*ho.Stride+i] += learningRate * act.Hidden[j] * d.Output[i]
		}
	}
	ih := w.inputHidden.RawMatrix()
	for k := 0; k < topo.Inputs; k++ {
		for j := 0; j < topo.Hiddens; j++ {
			ih.Data[k*ih.Stride+j] += learningRate * input[k] * d.Hidden[j]
		}
	}
}

// TrainCase runs one online step: forward, error signals, then an immediate
// update. It returns the case squared error measured before the update.
func TrainCase(w *Weights, input, target []float64, learningRate float64) (float64, error) {
	act, err := Forward(w, input)
	if err != nil {
		return 0, err
	}
	d, caseError, err := ComputeDeltas(w, act, target)
	if err != nil {
		return 0, err
	}
	ApplyUpdate(w, input, act, d, learningRate)
	return caseError, nil
}

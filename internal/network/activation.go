package network

import "math"

// Sigmoid is the logistic activation used by both layers.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDerivative must stay paired with Sigmoid.
func SigmoidDerivative(x float64) float64 {
	fx := Sigmoid(x)
	return fx * (1 - fx)
}

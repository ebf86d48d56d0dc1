package dataset

// Patterns provides the built-in 5x5 box and cross bitmaps. Training teaches
// box -> {1,0} and cross -> {0,1}; evaluation adds the unseen box-cross.
type Patterns struct{}

// Provide implements Provider.
func (Patterns) Provide() (Sets, error) {
	return Sets{
		Training:   []Case{Box(), Cross()},
		Evaluation: []Case{Box(), Cross(), BoxCross()},
	}, nil
}

// Box is a hollow square outline.
func Box() Case {
	return Case{
		Name: "box",
		Input: []float64{
			1, 1, 1, 1, 1,
			1, 0, 0, 0, 1,
			1, 0, 0, 0, 1,
			1, 0, 0, 0, 1,
			1, 1, 1, 1, 1,
		},
		Target: []float64{1, 0},
	}
}

// Cross is an X spanning both diagonals.
func Cross() Case {
	return Case{
		Name: "cross",
		Input: []float64{
			1, 0, 0, 0, 1,
			0, 1, 0, 1, 0,
			0, 0, 1, 0, 0,
			0, 1, 0, 1, 0,
			1, 0, 0, 0, 1,
		},
		Target: []float64{0, 1},
	}
}

// BoxCross overlays Box and Cross.
func BoxCross() Case {
	return Case{
		Name: "boxcross",
		Input: []float64{
			1, 1, 1, 1, 1,
			1, 1, 0, 1, 1,
			1, 0, 1, 0, 1,
			1, 1, 0, 1, 1,
			1, 1, 1, 1, 1,
		},
		Target: []float64{1, 1},
	}
}

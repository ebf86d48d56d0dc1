package metrics

import "time"

// Window accumulates pass statistics between two progress reports.
type Window struct {
	cases     int
	elapsed   time.Duration
	passes    int
	lastError float64
}

// Record adds one training pass to the window.
func (w *Window) Record(cases int, elapsed time.Duration, totalError float64) {
	w.cases += cases
	w.elapsed += elapsed
	w.passes++
	w.lastError = totalError
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Passes: w.passes}
	if w.elapsed > 0 {
		snap.CasesPerSec = float64(w.cases) / w.elapsed.Seconds()
	}
	if w.passes > 0 {
		snap.AvgPassMS = (w.elapsed.Seconds() * 1000) / float64(w.passes)
	}
	snap.LastError = w.lastError

	w.cases = 0
	w.elapsed = 0
	w.passes = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Passes      int
	CasesPerSec float64
	AvgPassMS   float64
	LastError   float64
}

package sim

import "github.com/go-gl/mathgl/mgl64"

// Frame is the rope state captured after one tick.
type Frame struct {
	Time   float64
	Spring float64
	Active bool
	Points []mgl64.Vec3
}

// Metric accumulates a scalar over frames.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Observer receives every frame as it is produced.
type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Dt       float64
	Duration float64
}

type Result struct {
	Frames  []Frame
	Metrics map[string]float64
}

// LastActive returns the most recent frame with a live rope path, or false
// if the rope never attached.
func (r *Result) LastActive() (Frame, bool) {
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if r.Frames[i].Active {
			return r.Frames[i], true
		}
	}
	return Frame{}, false
}

// SpringTrace extracts the spring value series.
func (r *Result) SpringTrace() []float64 {
	trace := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		trace[i] = f.Spring
	}
	return trace
}

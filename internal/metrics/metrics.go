// Package metrics provides streaming measurements over rope frames.
package metrics

import (
	"math"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
)

// MaxDeflection tracks the largest chord deflection of the rope path.
type MaxDeflection struct {
	max float64
}

func NewMaxDeflection() *MaxDeflection { return &MaxDeflection{} }

func (m *MaxDeflection) Name() string { return "max_deflection" }

func (m *MaxDeflection) Observe(f sim.Frame) {
	if !f.Active {
		return
	}
	if d := rope.Deflection(f.Points); d > m.max {
		m.max = d
	}
}

func (m *MaxDeflection) Value() float64 { return m.max }
func (m *MaxDeflection) Reset()         { m.max = 0 }

// SettleTime reports the time of the last frame whose spring magnitude
// exceeded the threshold: the point after which the rope stays visually
// straight.
type SettleTime struct {
	threshold float64
	last      float64
}

func NewSettleTime(threshold float64) *SettleTime {
	return &SettleTime{threshold: threshold}
}

func (s *SettleTime) Name() string { return "settle_time" }

func (s *SettleTime) Observe(f sim.Frame) {
	if math.Abs(f.Spring) > s.threshold {
		s.last = f.Time
	}
}

func (s *SettleTime) Value() float64 { return s.last }
func (s *SettleTime) Reset()         { s.last = 0 }

// Crossings counts sign changes of the spring value, a proxy for the number
// of visible half-oscillations.
type Crossings struct {
	count int
	sign  int
}

func NewCrossings() *Crossings { return &Crossings{} }

func (c *Crossings) Name() string { return "crossings" }

func (c *Crossings) Observe(f sim.Frame) {
	sign := 0
	if f.Spring > 0 {
		sign = 1
	} else if f.Spring < 0 {
		sign = -1
	}
	if sign != 0 && c.sign != 0 && sign != c.sign {
		c.count++
	}
	if sign != 0 {
		c.sign = sign
	}
}

func (c *Crossings) Value() float64 { return float64(c.count) }

func (c *Crossings) Reset() {
	c.count = 0
	c.sign = 0
}

// Default is the metric set attached to every stored run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewMaxDeflection(),
		NewSettleTime(0.01),
		NewCrossings(),
	}
}

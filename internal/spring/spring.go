package spring

import "math"

const (
	DefaultStrength = 800.0
	DefaultDamper   = 14.0
)

// Spring is a critically-damped scalar oscillator stepped with explicit
// forward Euler. It pulls value toward target with force proportional to
// displacement and damping proportional to velocity. The explicit step can
// overshoot when dt*strength is large; callers are expected to feed sane
// frame deltas.
type Spring struct {
	strength float64
	damper   float64
	target   float64
	velocity float64
	value    float64
}

func New(strength, damper float64) *Spring {
	return &Spring{strength: strength, damper: damper}
}

// Step advances the oscillator by dt. Integration is total: negative or
// huge dt degrades numerically instead of failing.
func (s *Spring) Step(dt float64) {
	d := s.target - s.value
	dir := 1.0
	if d < 0 {
		dir = -1.0
	}
	force := math.Abs(d) * s.strength
	s.velocity += (force*dir - s.velocity*s.damper) * dt
	s.value += s.velocity * dt
}

// Reset zeroes value and velocity. Target, strength and damper keep their
// configured values.
func (s *Spring) Reset() {
	s.velocity = 0
	s.value = 0
}

func (s *Spring) Value() float64    { return s.value }
func (s *Spring) Velocity() float64 { return s.velocity }
func (s *Spring) Target() float64   { return s.target }

// Setters assign unconditionally. Negative strength or damper diverges
// rather than erroring; bounded behavior is the caller's responsibility.
func (s *Spring) SetValue(v float64)    { s.value = v }
func (s *Spring) SetVelocity(v float64) { s.velocity = v }
func (s *Spring) SetTarget(v float64)   { s.target = v }
func (s *Spring) SetStrength(v float64) { s.strength = v }
func (s *Spring) SetDamper(v float64)   { s.damper = v }

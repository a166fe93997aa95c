package rope

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/ropesim/internal/spring"
)

// anchorRate is the exponential smoothing rate of the tracked anchor toward
// the live grapple point. The lerp factor dt*anchorRate is deliberately not
// clamped to 1: a frame delta above 1/anchorRate overshoots past the target,
// matching the reference behavior.
const anchorRate = 12.0

// GrappleSource supplies the live anchor positions and the active flag.
// It is polled exactly once per Tick.
type GrappleSource interface {
	IsActive() bool
	GrapplePoint() mgl64.Vec3
	OriginPoint() mgl64.Vec3
}

// Config holds the sampler tunables. All fields may be changed between
// frames without restriction.
type Config struct {
	SampleCount int
	Strength    float64
	Damper      float64
	Impulse     float64 // spring velocity applied when the rope attaches
	WaveCount   float64
	WaveHeight  float64
	Falloff     Falloff
}

func DefaultConfig() Config {
	return Config{
		SampleCount: 16,
		Strength:    spring.DefaultStrength,
		Damper:      spring.DefaultDamper,
		Impulse:     15,
		WaveCount:   3,
		WaveHeight:  1,
		Falloff:     FalloffLinear,
	}
}

// Sampler turns two anchor positions plus one spring scalar into an ordered
// point sequence: a sine wave collapsing onto the origin-anchor line.
type Sampler struct {
	Config

	src    GrappleSource
	spring *spring.Spring
	active bool
	anchor mgl64.Vec3
	points []mgl64.Vec3
}

func NewSampler(src GrappleSource, cfg Config) *Sampler {
	if cfg.Falloff == nil {
		cfg.Falloff = FalloffLinear
	}
	return &Sampler{
		Config: cfg,
		src:    src,
		spring: spring.New(cfg.Strength, cfg.Damper),
	}
}

// Spring exposes the owned oscillator for observation.
func (s *Sampler) Spring() *spring.Spring { return s.spring }

// Active reports whether the rope was attached on the last Tick.
func (s *Sampler) Active() bool { return s.active }

// Points returns the current sample buffer: SampleCount+1 ordered positions
// from the origin end to the grapple end while active, empty while idle.
// The slice is rewritten in place on every active Tick.
func (s *Sampler) Points() []mgl64.Vec3 { return s.points }

// Anchor returns the smoothed grapple-end anchor.
func (s *Sampler) Anchor() mgl64.Vec3 { return s.anchor }

// Tick advances the rope by one frame. Integration happens strictly before
// sampling, so the wave amplitude of a frame reflects that frame's spring
// value.
func (s *Sampler) Tick(dt float64) {
	if !s.src.IsActive() {
		s.drop()
		return
	}
	if !s.active {
		s.attach()
	}
	s.advance(dt)
}

// drop is the Active -> Idle transition. It is idempotent: dropping an
// already idle rope leaves the same rest state.
func (s *Sampler) drop() {
	s.active = false
	s.anchor = s.src.OriginPoint()
	s.spring.Reset()
	s.points = s.points[:0]
}

// attach is the Idle -> Active transition. The impulse is applied only when
// the point buffer is genuinely empty; re-entering active with a live buffer
// keeps the spring state so rapid flicker does not snap. The latch is this
// explicit size check.
func (s *Sampler) attach() {
	s.active = true
	s.anchor = s.src.OriginPoint()
	if len(s.points) == 0 {
		s.spring.SetVelocity(s.Impulse)
		n := s.SampleCount
		if n < 0 {
			n = 0
		}
		s.points = make([]mgl64.Vec3, n+1)
	}
}

func (s *Sampler) advance(dt float64) {
	s.spring.SetDamper(s.Damper)
	s.spring.SetStrength(s.Strength)
	s.spring.Step(dt)

	grapple := s.src.GrapplePoint()
	origin := s.src.OriginPoint()

	// Undefined when the anchors coincide; callers must guard that case.
	up := perpendicularUp(grapple.Sub(origin).Normalize())

	s.anchor = lerp(s.anchor, grapple, dt*anchorRate)

	value := s.spring.Value()
	segs := len(s.points) - 1
	for i := range s.points {
		u := 0.0
		if segs > 0 {
			u = float64(i) / float64(segs)
		}
		offset := up.Mul(s.WaveHeight * math.Sin(u*s.WaveCount*math.Pi) * value * s.Falloff(u))
		s.points[i] = lerp(origin, s.anchor, u).Add(offset)
	}
}

var worldUp = mgl64.Vec3{0, 1, 0}

// perpendicularUp rotates the world up vector into the look frame of dir:
// the component of world up orthogonal to dir, renormalized. For a vertical
// dir there is no such component and the world forward axis is used, signed
// to keep the frame right-handed.
func perpendicularUp(dir mgl64.Vec3) mgl64.Vec3 {
	flat := worldUp.Sub(dir.Mul(worldUp.Dot(dir)))
	if flat.Len() < 1e-9 {
		return mgl64.Vec3{0, 0, -math.Copysign(1, dir.Y())}
	}
	return flat.Normalize()
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Deflection returns the maximum distance of any sample from the chord
// between the path endpoints. Zero for fewer than three points.
func Deflection(points []mgl64.Vec3) float64 {
	if len(points) < 3 {
		return 0
	}
	a := points[0]
	chord := points[len(points)-1].Sub(a)
	length := chord.Len()

	max := 0.0
	for _, p := range points[1 : len(points)-1] {
		v := p.Sub(a)
		var d float64
		if length < 1e-12 {
			d = v.Len()
		} else {
			d = v.Cross(chord).Len() / length
		}
		if d > max {
			max = d
		}
	}
	return max
}

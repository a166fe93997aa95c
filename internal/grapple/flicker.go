package grapple

import "github.com/go-gl/mathgl/mgl64"

// Flicker wraps a scenario and toggles its active flag on a fixed duty
// cycle, starting attached. Useful for exercising attach/detach handling.
type Flicker struct {
	inner   Scenario
	onTime  float64
	offTime float64

	clock float64
}

func NewFlicker(inner Scenario, onTime, offTime float64) *Flicker {
	return &Flicker{inner: inner, onTime: onTime, offTime: offTime}
}

func (f *Flicker) Advance(dt float64) {
	f.clock += dt
	f.inner.Advance(dt)
}

func (f *Flicker) IsActive() bool {
	period := f.onTime + f.offTime
	if period <= 0 {
		return f.inner.IsActive()
	}
	phase := f.clock - float64(int(f.clock/period))*period
	return phase < f.onTime && f.inner.IsActive()
}

func (f *Flicker) GrapplePoint() mgl64.Vec3 { return f.inner.GrapplePoint() }
func (f *Flicker) OriginPoint() mgl64.Vec3  { return f.inner.OriginPoint() }

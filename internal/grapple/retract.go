package grapple

import "github.com/go-gl/mathgl/mgl64"

// Retract reels the origin toward the grapple point at constant speed,
// stopping at a minimum separation (a winch pulling the player in).
type Retract struct {
	origin      mgl64.Vec3
	grapple     mgl64.Vec3
	speed       float64
	minDistance float64
}

func NewRetract(origin, grapple mgl64.Vec3, speed, minDistance float64) *Retract {
	return &Retract{origin: origin, grapple: grapple, speed: speed, minDistance: minDistance}
}

func (r *Retract) Advance(dt float64) {
	delta := r.grapple.Sub(r.origin)
	dist := delta.Len()
	if dist <= r.minDistance {
		return
	}
	step := r.speed * dt
	if step > dist-r.minDistance {
		step = dist - r.minDistance
	}
	r.origin = r.origin.Add(delta.Mul(step / dist))
}

func (r *Retract) IsActive() bool           { return true }
func (r *Retract) GrapplePoint() mgl64.Vec3 { return r.grapple }
func (r *Retract) OriginPoint() mgl64.Vec3  { return r.origin }

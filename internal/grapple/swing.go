package grapple

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Swing moves the origin as a damped pendulum bob hanging below a fixed
// grapple point, swinging in the XY plane. The rope length is the initial
// distance between the two anchors.
type Swing struct {
	grapple mgl64.Vec3
	length  float64
	gravity float64
	damping float64

	theta float64 // angle from vertical
	omega float64
}

func NewSwing(grapple, origin mgl64.Vec3, theta, gravity, damping float64) *Swing {
	length := grapple.Sub(origin).Len()
	if length == 0 {
		length = 1
	}
	return &Swing{
		grapple: grapple,
		length:  length,
		gravity: gravity,
		damping: damping,
		theta:   theta,
	}
}

func (s *Swing) Advance(dt float64) {
	accel := -(s.gravity/s.length)*math.Sin(s.theta) - s.damping*s.omega
	s.omega += accel * dt
	s.theta += s.omega * dt
}

func (s *Swing) IsActive() bool           { return true }
func (s *Swing) GrapplePoint() mgl64.Vec3 { return s.grapple }

func (s *Swing) OriginPoint() mgl64.Vec3 {
	return s.grapple.Add(mgl64.Vec3{
		s.length * math.Sin(s.theta),
		-s.length * math.Cos(s.theta),
		0,
	})
}

// Theta returns the current swing angle from vertical.
func (s *Swing) Theta() float64 { return s.theta }

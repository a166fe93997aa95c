// Package grapple provides scripted grapple sources: small kinematic
// scenarios that move the rope's anchor points over time so a rope can be
// simulated without a host game.
package grapple

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/ropesim/internal/rope"
)

// Scenario is a grapple source that also advances its own motion. Advance
// must be called once per frame, before the rope samples it.
type Scenario interface {
	rope.GrappleSource
	Advance(dt float64)
}

// Params configures a scenario by name. Unused fields are ignored by
// scenarios that do not need them.
type Params struct {
	Origin  mgl64.Vec3
	Grapple mgl64.Vec3

	// swing
	Gravity float64
	Damping float64
	Theta   float64 // initial swing angle from vertical, radians

	// retract
	Speed       float64
	MinDistance float64

	// flicker
	OnTime  float64
	OffTime float64
}

func DefaultParams() Params {
	return Params{
		Origin:      mgl64.Vec3{0, 2, 0},
		Grapple:     mgl64.Vec3{0, 10, 0},
		Gravity:     9.81,
		Damping:     0.3,
		Theta:       0.9,
		Speed:       2.0,
		MinDistance: 1.0,
		OnTime:      0.8,
		OffTime:     0.4,
	}
}

var builders = map[string]func(Params) Scenario{
	"static":  func(p Params) Scenario { return NewStatic(p.Origin, p.Grapple) },
	"swing":   func(p Params) Scenario { return NewSwing(p.Grapple, p.Origin, p.Theta, p.Gravity, p.Damping) },
	"retract": func(p Params) Scenario { return NewRetract(p.Origin, p.Grapple, p.Speed, p.MinDistance) },
	"flicker": func(p Params) Scenario {
		return NewFlicker(NewSwing(p.Grapple, p.Origin, p.Theta, p.Gravity, p.Damping), p.OnTime, p.OffTime)
	},
}

// Build constructs a scenario by name.
func Build(name string, p Params) (Scenario, error) {
	fn, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(p), nil
}

// Names lists the registered scenario names.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	return names
}

// Static holds both anchors fixed with the rope attached.
type Static struct {
	origin  mgl64.Vec3
	grapple mgl64.Vec3
}

func NewStatic(origin, grapple mgl64.Vec3) *Static {
	return &Static{origin: origin, grapple: grapple}
}

func (s *Static) Advance(dt float64)       {}
func (s *Static) IsActive() bool           { return true }
func (s *Static) GrapplePoint() mgl64.Vec3 { return s.grapple }
func (s *Static) OriginPoint() mgl64.Vec3  { return s.origin }

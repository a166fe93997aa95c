package rope

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// stubSource is a hand-driven grapple source for tests.
type stubSource struct {
	active  bool
	grapple mgl64.Vec3
	origin  mgl64.Vec3
}

func (s *stubSource) IsActive() bool           { return s.active }
func (s *stubSource) GrapplePoint() mgl64.Vec3 { return s.grapple }
func (s *stubSource) OriginPoint() mgl64.Vec3  { return s.origin }

func almostEqual(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestMidpointWaveOffset(t *testing.T) {
	src := &stubSource{active: true, origin: mgl64.Vec3{0, 0, 0}, grapple: mgl64.Vec3{0, 0, 4}}
	s := NewSampler(src, Config{
		SampleCount: 4,
		WaveCount:   1,
		WaveHeight:  1,
		Falloff:     FalloffLinear,
	})

	// Attach with a zero-length frame, then hold the spring at 1 while the
	// anchor snaps onto the grapple point (dt*12 == 1).
	s.Tick(0)
	s.Spring().SetValue(1)
	s.Tick(1.0 / 12.0)

	pts := s.Points()
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}

	// Up frame for a +Z rope is world up, so the midpoint offset is
	// up * 1 * sin(0.5*pi) * 1 * falloff(0.5) = (0, 0.5, 0).
	want := mgl64.Vec3{0, 0.5, 2}
	if !almostEqual(pts[2], want, 1e-9) {
		t.Errorf("midpoint: got %v, want %v", pts[2], want)
	}
}

func TestEndpointsStayOnChord(t *testing.T) {
	src := &stubSource{active: true, origin: mgl64.Vec3{1, 2, 3}, grapple: mgl64.Vec3{7, 2, 3}}
	s := NewSampler(src, Config{
		SampleCount: 8,
		Strength:    400,
		Damper:      10,
		Impulse:     20,
		WaveCount:   2, // integer wave count pins both endpoints
		WaveHeight:  1.5,
		Falloff:     FalloffFlat,
	})

	for i := 0; i < 30; i++ {
		s.Tick(1.0 / 60.0)
	}

	pts := s.Points()
	if !almostEqual(pts[0], src.origin, 1e-9) {
		t.Errorf("origin endpoint drifted: %v", pts[0])
	}
	chordEnd := s.Anchor()
	if !almostEqual(pts[len(pts)-1], chordEnd, 1e-9) {
		t.Errorf("grapple endpoint off the chord: %v vs %v", pts[len(pts)-1], chordEnd)
	}
}

func TestOriginSampleExactWhenSpringAtRest(t *testing.T) {
	src := &stubSource{active: true, origin: mgl64.Vec3{0, 5, 0}, grapple: mgl64.Vec3{3, 5, 0}}
	s := NewSampler(src, Config{SampleCount: 4, WaveCount: 1, WaveHeight: 2, Falloff: FalloffLinear})

	s.Tick(0) // spring value still 0

	if got := s.Points()[0]; got != src.origin {
		t.Errorf("expected origin sample %v, got %v", src.origin, got)
	}
}

func TestDegenerateSampleCount(t *testing.T) {
	src := &stubSource{active: true, grapple: mgl64.Vec3{0, 0, 1}}

	for _, count := range []int{0, -3} {
		s := NewSampler(src, Config{SampleCount: count, WaveCount: 1, Falloff: FalloffFlat})
		s.Tick(1.0 / 60.0)
		if len(s.Points()) != 1 {
			t.Errorf("count %d: expected single trivial point, got %d", count, len(s.Points()))
		}
	}
}

func TestAnchorSmoothingOvershootsAtLargeDt(t *testing.T) {
	src := &stubSource{active: true, origin: mgl64.Vec3{}, grapple: mgl64.Vec3{10, 0, 0}}
	s := NewSampler(src, DefaultConfig())

	s.Tick(0)
	s.Tick(0.25) // dt*12 = 3, unclamped lerp overshoots past the target

	if s.Anchor().X() <= 10 {
		t.Errorf("expected overshoot past grapple point, anchor at %v", s.Anchor())
	}
}

func TestPerpendicularUp(t *testing.T) {
	tests := []struct {
		dir  mgl64.Vec3
		want mgl64.Vec3
	}{
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1}}, // vertical fallback
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		got := perpendicularUp(tt.dir)
		if !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("perpendicularUp(%v) = %v, want %v", tt.dir, got, tt.want)
		}
		if math.Abs(got.Dot(tt.dir)) > 1e-9 {
			t.Errorf("up %v not perpendicular to %v", got, tt.dir)
		}
	}
}

func TestDeflection(t *testing.T) {
	straight := []mgl64.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 0, 2}}
	if d := Deflection(straight); d != 0 {
		t.Errorf("straight path deflection %f, want 0", d)
	}

	bowed := []mgl64.Vec3{{0, 0, 0}, {0, 1.5, 1}, {0, 0, 2}}
	if d := Deflection(bowed); math.Abs(d-1.5) > 1e-9 {
		t.Errorf("bowed path deflection %f, want 1.5", d)
	}

	if d := Deflection(nil); d != 0 {
		t.Errorf("empty path deflection %f, want 0", d)
	}
}

func TestFalloffNamed(t *testing.T) {
	for _, name := range []string{"linear", "flat", "smooth", "taper"} {
		f, ok := FalloffNamed(name)
		if !ok {
			t.Fatalf("missing falloff %q", name)
		}
		if v := f(0.5); v < 0 || v > 1 {
			t.Errorf("%s(0.5) = %f out of range", name, v)
		}
	}
	if _, ok := FalloffNamed("bogus"); ok {
		t.Error("expected lookup failure for unknown curve")
	}
}

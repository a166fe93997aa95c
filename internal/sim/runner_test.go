package sim

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/ropesim/internal/grapple"
	"github.com/san-kum/ropesim/internal/rope"
)

func newTestRunner() *Runner {
	sc := grapple.NewStatic(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 6})
	s := rope.NewSampler(sc, rope.DefaultConfig())
	return New(sc, s)
}

func TestRunProducesFrames(t *testing.T) {
	r := newTestRunner()

	result, err := r.Run(context.Background(), Config{Dt: 1.0 / 64.0, Duration: 1.0})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Frames) != 64 {
		t.Errorf("expected 64 frames, got %d", len(result.Frames))
	}
	for _, f := range result.Frames {
		if !f.Active {
			t.Fatal("static scenario should keep the rope attached")
		}
		if len(f.Points) != 17 {
			t.Fatalf("expected 17 points per frame, got %d", len(f.Points))
		}
	}
}

func TestRunValidatesConfig(t *testing.T) {
	r := newTestRunner()

	if _, err := r.Run(context.Background(), Config{Dt: 0, Duration: 1}); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := r.Run(context.Background(), Config{Dt: 0.01, Duration: -1}); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestRunHonorsContext(t *testing.T) {
	r := newTestRunner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, Config{Dt: 0.01, Duration: 10})
	if err == nil {
		t.Error("expected context error")
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	r := newTestRunner()

	frames := 0
	err := r.RunWithCallback(context.Background(), Config{Dt: 0.01, Duration: 10}, func(f Frame) bool {
		frames++
		return frames < 5
	})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 5 {
		t.Errorf("expected 5 frames, got %d", frames)
	}
}

func TestFramesAreSnapshots(t *testing.T) {
	r := newTestRunner()

	result, err := r.Run(context.Background(), Config{Dt: 1.0 / 60.0, Duration: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	// Each frame's points must not alias the live sampler buffer.
	first := result.Frames[0].Points
	last := result.Frames[len(result.Frames)-1].Points
	if &first[0] == &last[0] {
		t.Error("frames share a point buffer")
	}
}

func TestSpringTraceAndLastActive(t *testing.T) {
	sc, err := grapple.Build("flicker", grapple.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	r := New(sc, rope.NewSampler(sc, rope.DefaultConfig()))

	result, err := r.Run(context.Background(), Config{Dt: 1.0 / 60.0, Duration: 2.0})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.SpringTrace()) != len(result.Frames) {
		t.Error("trace length mismatch")
	}

	f, ok := result.LastActive()
	if !ok {
		t.Fatal("flicker scenario never attached")
	}
	if len(f.Points) == 0 {
		t.Error("last active frame has no points")
	}
}

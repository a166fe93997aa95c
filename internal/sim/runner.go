package sim

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/ropesim/internal/grapple"
	"github.com/san-kum/ropesim/internal/rope"
)

// Runner drives one scenario/sampler pair through a fixed-step frame loop.
// It is single-threaded: the sampler and scenario are owned exclusively by
// the runner for the duration of a Run.
type Runner struct {
	scenario  grapple.Scenario
	sampler   *rope.Sampler
	metrics   []Metric
	observers []Observer
}

func New(scenario grapple.Scenario, sampler *rope.Sampler) *Runner {
	return &Runner{
		scenario: scenario,
		sampler:  sampler,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps the scenario and rope for the configured duration, capturing a
// frame per step. The scenario always advances before the rope samples it,
// and the rope integrates before it samples.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		frame := r.step(t, cfg.Dt)
		t = frame.Time

		for _, m := range r.metrics {
			m.Observe(frame)
		}
		for _, obs := range r.observers {
			obs.OnFrame(frame)
		}
		result.Frames = append(result.Frames, frame)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until the duration elapses or the callback returns
// false. Used by paced consumers such as the live view.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame := r.step(t, cfg.Dt)
		t = frame.Time

		if !callback(frame) {
			return nil
		}
	}

	return nil
}

func (r *Runner) step(t, dt float64) Frame {
	r.scenario.Advance(dt)
	r.sampler.Tick(dt)

	points := make([]mgl64.Vec3, len(r.sampler.Points()))
	copy(points, r.sampler.Points())

	return Frame{
		Time:   t + dt,
		Spring: r.sampler.Spring().Value(),
		Active: r.sampler.Active(),
		Points: points,
	}
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

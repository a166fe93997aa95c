package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ropesim/internal/grapple"
	"github.com/san-kum/ropesim/internal/rope"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 6.0
)

type Config struct {
	Scenario string      `yaml:"scenario"`
	Dt       float64     `yaml:"dt"`
	Duration float64     `yaml:"duration"`
	Rope     RopeConfig  `yaml:"rope"`
	Scene    SceneConfig `yaml:"scene"`
}

type RopeConfig struct {
	Samples    int     `yaml:"samples"`
	Strength   float64 `yaml:"strength"`
	Damper     float64 `yaml:"damper"`
	Impulse    float64 `yaml:"impulse"`
	WaveCount  float64 `yaml:"wave_count"`
	WaveHeight float64 `yaml:"wave_height"`
	Falloff    string  `yaml:"falloff"`
}

type SceneConfig struct {
	Origin      [3]float64 `yaml:"origin"`
	Grapple     [3]float64 `yaml:"grapple"`
	Gravity     float64    `yaml:"gravity"`
	Damping     float64    `yaml:"damping"`
	Theta       float64    `yaml:"theta"`
	Speed       float64    `yaml:"speed"`
	MinDistance float64    `yaml:"min_distance"`
	OnTime      float64    `yaml:"on_time"`
	OffTime     float64    `yaml:"off_time"`
}

func DefaultConfig() *Config {
	p := grapple.DefaultParams()
	return &Config{
		Scenario: "swing",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Rope: RopeConfig{
			Samples:    16,
			Strength:   800,
			Damper:     14,
			Impulse:    15,
			WaveCount:  3,
			WaveHeight: 1,
			Falloff:    "linear",
		},
		Scene: SceneConfig{
			Origin:      vecToArray(p.Origin),
			Grapple:     vecToArray(p.Grapple),
			Gravity:     p.Gravity,
			Damping:     p.Damping,
			Theta:       p.Theta,
			Speed:       p.Speed,
			MinDistance: p.MinDistance,
			OnTime:      p.OnTime,
			OffTime:     p.OffTime,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RopeConfig converts the YAML rope section into sampler configuration,
// resolving the falloff curve by name.
func (c *Config) RopeConfig() (rope.Config, error) {
	falloff, ok := rope.FalloffNamed(c.Rope.Falloff)
	if !ok {
		return rope.Config{}, fmt.Errorf("unknown falloff curve: %s (available: %v)",
			c.Rope.Falloff, rope.FalloffNames())
	}
	return rope.Config{
		SampleCount: c.Rope.Samples,
		Strength:    c.Rope.Strength,
		Damper:      c.Rope.Damper,
		Impulse:     c.Rope.Impulse,
		WaveCount:   c.Rope.WaveCount,
		WaveHeight:  c.Rope.WaveHeight,
		Falloff:     falloff,
	}, nil
}

// ScenarioParams converts the YAML scene section into scenario parameters.
func (c *Config) ScenarioParams() grapple.Params {
	return grapple.Params{
		Origin:      arrayToVec(c.Scene.Origin),
		Grapple:     arrayToVec(c.Scene.Grapple),
		Gravity:     c.Scene.Gravity,
		Damping:     c.Scene.Damping,
		Theta:       c.Scene.Theta,
		Speed:       c.Scene.Speed,
		MinDistance: c.Scene.MinDistance,
		OnTime:      c.Scene.OnTime,
		OffTime:     c.Scene.OffTime,
	}
}

// BuildScenario constructs the configured scenario.
func (c *Config) BuildScenario() (grapple.Scenario, error) {
	return grapple.Build(c.Scenario, c.ScenarioParams())
}

func vecToArray(v mgl64.Vec3) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}

func arrayToVec(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}

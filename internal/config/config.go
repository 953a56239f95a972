package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/collide/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth             = 700.0
	DefaultHeight            = 700.0
	DefaultBodies            = 3
	DefaultRadius            = 10.0
	DefaultMass              = 1.0
	DefaultRestitution       = 1.0
	DefaultMinSpeed          = 50
	DefaultMaxSpeed          = 100
	DefaultGravity           = 100.0
	DefaultDrag              = physics.DefaultDrag
	DefaultHighlightDuration = 1.0
	DefaultDt                = 1.0 / 60
	DefaultFrames            = 600
	DefaultFPS               = 60
)

type Config struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Bodies  BodiesConfig  `yaml:"bodies"`
	Physics PhysicsConfig `yaml:"physics"`
	Run     RunConfig     `yaml:"run"`
}

type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type BodiesConfig struct {
	Count             int     `yaml:"count"`
	Radius            float64 `yaml:"radius"`
	Mass              float64 `yaml:"mass"`
	Restitution       float64 `yaml:"restitution"`
	MinSpeed          int     `yaml:"min_speed"`
	MaxSpeed          int     `yaml:"max_speed"`
	HighlightDuration float64 `yaml:"highlight_duration"`
}

type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	Drag       float64 `yaml:"drag"`
	Highlight  string  `yaml:"highlight"`
	NormalAxis string  `yaml:"normal_axis"`
}

// RunConfig drives headless runs. ActivateAt is the first frame with the
// activation signal asserted; a negative value never activates.
type RunConfig struct {
	Dt         float64 `yaml:"dt"`
	Frames     int     `yaml:"frames"`
	ActivateAt int     `yaml:"activate_at"`
	Seed       int64   `yaml:"seed"`
	FPS        int     `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Arena: ArenaConfig{Width: DefaultWidth, Height: DefaultHeight},
		Bodies: BodiesConfig{
			Count:             DefaultBodies,
			Radius:            DefaultRadius,
			Mass:              DefaultMass,
			Restitution:       DefaultRestitution,
			MinSpeed:          DefaultMinSpeed,
			MaxSpeed:          DefaultMaxSpeed,
			HighlightDuration: DefaultHighlightDuration,
		},
		Physics: PhysicsConfig{
			Gravity:    DefaultGravity,
			Drag:       DefaultDrag,
			Highlight:  physics.HighlightCandidates.String(),
			NormalAxis: physics.AxisRelativeVelocity.String(),
		},
		Run: RunConfig{
			Dt:         DefaultDt,
			Frames:     DefaultFrames,
			ActivateAt: 0,
			FPS:        DefaultFPS,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// base's values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// finitePositive is false for NaN and +Inf as well as for x <= 0.
func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func (c *Config) Validate() error {
	if err := c.ArenaBounds().Validate(); err != nil {
		return err
	}
	b := c.Bodies
	if b.Count < 0 {
		return fmt.Errorf("bodies.count must not be negative, got %d", b.Count)
	}
	if !finitePositive(b.Radius) {
		return fmt.Errorf("bodies.radius: %w", physics.ErrInvalidRadius)
	}
	if !finitePositive(b.Mass) {
		return fmt.Errorf("bodies.mass: %w", physics.ErrInvalidMass)
	}
	if !(b.Restitution >= 0 && b.Restitution <= 1) {
		return fmt.Errorf("bodies.restitution: %w", physics.ErrInvalidRestitution)
	}
	if b.MinSpeed > b.MaxSpeed {
		return fmt.Errorf("bodies.min_speed %d exceeds max_speed %d", b.MinSpeed, b.MaxSpeed)
	}
	if 2*b.Radius > c.Arena.Width || 2*b.Radius > c.Arena.Height {
		return fmt.Errorf("bodies of radius %v do not fit a %vx%v arena", b.Radius, c.Arena.Width, c.Arena.Height)
	}
	if !(b.HighlightDuration >= 0) || math.IsInf(b.HighlightDuration, 1) {
		return fmt.Errorf("bodies.highlight_duration: %w (got %v)", physics.ErrInvalidHighlight, b.HighlightDuration)
	}
	if math.IsNaN(c.Physics.Gravity) || math.IsInf(c.Physics.Gravity, 0) {
		return fmt.Errorf("physics.gravity must be finite, got %v", c.Physics.Gravity)
	}
	if !(c.Physics.Drag >= 0) || math.IsInf(c.Physics.Drag, 1) {
		return fmt.Errorf("physics.drag must not be negative, got %v", c.Physics.Drag)
	}
	if _, ok := physics.ParseHighlightPolicy(c.Physics.Highlight); !ok {
		return fmt.Errorf("physics.highlight: unknown policy %q", c.Physics.Highlight)
	}
	if _, ok := physics.ParseNormalAxis(c.Physics.NormalAxis); !ok {
		return fmt.Errorf("physics.normal_axis: unknown axis %q", c.Physics.NormalAxis)
	}
	if !finitePositive(c.Run.Dt) {
		return fmt.Errorf("run.dt must be positive, got %v", c.Run.Dt)
	}
	if c.Run.Frames <= 0 {
		return fmt.Errorf("run.frames must be positive, got %d", c.Run.Frames)
	}
	if c.Run.FPS <= 0 {
		return fmt.Errorf("run.fps must be positive, got %d", c.Run.FPS)
	}
	return nil
}

func (c *Config) ArenaBounds() physics.Arena {
	return physics.Arena{Width: c.Arena.Width, Height: c.Arena.Height}
}

// HighlightPolicy and NormalAxis fall back to the defaults for names that
// Validate would reject.
func (c *Config) HighlightPolicy() physics.HighlightPolicy {
	p, _ := physics.ParseHighlightPolicy(c.Physics.Highlight)
	return p
}

func (c *Config) NormalAxis() physics.NormalAxis {
	a, _ := physics.ParseNormalAxis(c.Physics.NormalAxis)
	return a
}

// Clone returns a deep copy. Config holds only values, so a struct copy is enough.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

package config

import "sort"

// Presets are named starting points layered on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"crowd": func(c *Config) {
		c.Bodies.Count = 40
		c.Bodies.Radius = 12
	},
	"dense": func(c *Config) {
		c.Bodies.Count = 200
		c.Bodies.Radius = 6
		c.Run.Frames = 1200
	},
	"heavy": func(c *Config) {
		c.Bodies.Count = 12
		c.Bodies.Radius = 20
		c.Bodies.Mass = 5
		c.Bodies.Restitution = 0.8
		c.Physics.Gravity = 250
	},
	"contacts": func(c *Config) {
		c.Bodies.Count = 25
		c.Physics.Highlight = "contacts"
		c.Physics.NormalAxis = "center_line"
	},
	"drift": func(c *Config) {
		c.Bodies.Count = 10
		c.Run.ActivateAt = -1
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

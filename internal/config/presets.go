package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Height: 64, Frames: 64, Colors: 16, Saturation: 0.75, Value: 1.0,
		Layer: "trace", Format: "png", Scale: 1,
	},
	"tiny": {
		Height: 8, Frames: 32, Colors: 16, Saturation: 0.75, Value: 1.0,
		Layer: "trace", Format: "png", Scale: 16,
	},
	"state": {
		Height: 64, Frames: 64, Colors: 16, Saturation: 0.75, Value: 1.0,
		Layer: "state", Format: "png", Scale: 4,
	},
	"prime": {
		Height: 64, Frames: 128, Colors: 7, Saturation: 0.75, Value: 1.0,
		Layer: "trace", Format: "png", Scale: 4,
	},
	"pastel": {
		Height: 96, Frames: 96, Colors: 32, Saturation: 0.35, Value: 1.0,
		Layer: "trace", Format: "png", Scale: 2,
	},
	"movie": {
		Height: 128, Frames: 256, Colors: 16, Saturation: 0.75, Value: 1.0,
		Layer: "trace", Format: "jpeg", Scale: 4, Video: "torus.avi", FPS: 24,
	},
	"loop": {
		Height: 32, Frames: 64, Colors: 16, Saturation: 0.75, Value: 1.0,
		Layer: "state", Format: "png", Scale: 8, GIF: "torus.gif", FPS: 12,
	},
}

// GetPreset returns a copy of the named preset filled in with the default
// output locations, or nil if no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.FPS == 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultData
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

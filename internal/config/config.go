// Package config handles tool configuration loading and management.
package config

import "github.com/Faultbox/brickmesh/pkg/brick"

// Config holds all brickmesh settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Palette PaletteConfig `yaml:"palette"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds default export behaviour, overridable per invocation
// by CLI flags.
type ExportConfig struct {
	Format    string `yaml:"format"`     // obj, ply or stl
	Separate  bool   `yaml:"separate"`   // one file per brick
	OnlyFinal bool   `yaml:"only_final"` // export just the final step
	Tolerant  bool   `yaml:"tolerant"`   // skip malformed composite entries
	Workers   int    `yaml:"workers"`    // parallel per-brick meshing, 0 = serial
}

// PaletteConfig holds the round-robin brick palette.
type PaletteConfig struct {
	Colors [][3]uint8 `yaml:"colors"`
}

// BrickColors converts the palette into pipeline colors.
func (p PaletteConfig) BrickColors() []brick.Color {
	out := make([]brick.Color, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = brick.Color(c)
	}
	return out
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values. The palette is
// the classic solid brick colors.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Format:    "obj",
			Separate:  false,
			OnlyFinal: false,
			Tolerant:  false,
			Workers:   0,
		},
		Palette: PaletteConfig{
			Colors: [][3]uint8{
				{201, 26, 9},   // red
				{0, 85, 191},   // blue
				{242, 205, 55}, // yellow
				{35, 120, 65},  // green
				{255, 255, 255},
				{27, 42, 52}, // near-black
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

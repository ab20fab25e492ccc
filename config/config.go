// Package config loads showroom configuration files: the product description
// (parts, groups, materials) and the outline appearance. The YAML layer stays
// free of engine types; cmd glue maps parsed values onto the engine's option
// structs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChannelConfig describes one highlight channel's appearance.
type ChannelConfig struct {
	// Color is the flat outline color as a hex string, "#rrggbb" or "#rrggbbaa".
	Color string `yaml:"color"`

	// Pattern is an optional path to a tileable pattern image scrolled along
	// the outline instead of the flat color.
	Pattern string `yaml:"pattern"`
}

// OutlineConfig mirrors the outline pass options in file form.
type OutlineConfig struct {
	Hover    ChannelConfig `yaml:"hover"`
	Selected ChannelConfig `yaml:"selected"`

	EdgeThickness       int     `yaml:"edgeThickness"`
	EdgeGlow            int     `yaml:"edgeGlow"`
	Downsample          int     `yaml:"downsample"`
	StartU              float32 `yaml:"startU"`
	TileCount           float32 `yaml:"tileCount"`
	AnimateOutline      bool    `yaml:"animateOutline"`
	AnimationIntervalMs int     `yaml:"animationIntervalMs"`

	// OutputMode selects the composite variant: "normal", "mask", or "blur".
	OutputMode string `yaml:"outputMode"`
}

// MaterialConfig describes a part's surface material.
type MaterialConfig struct {
	Name      string  `yaml:"name"`
	Color     string  `yaml:"color"`
	Metallic  float32 `yaml:"metallic"`
	Roughness float32 `yaml:"roughness"`
}

// PartConfig describes one product part.
type PartConfig struct {
	Name  string `yaml:"name"`
	Group string `yaml:"group"`

	// Mesh names a built-in primitive ("cube", "sphere", "cylinder", "plane").
	Mesh string `yaml:"mesh"`

	// Transform is an optional column-major 4x4 matrix as 16 values. Empty
	// means identity.
	Transform []float32 `yaml:"transform"`

	Material MaterialConfig `yaml:"material"`
}

// ProductConfig describes the product on display.
type ProductConfig struct {
	Name  string       `yaml:"name"`
	Parts []PartConfig `yaml:"parts"`
}

// ShowroomConfig is the root of a showroom configuration file.
type ShowroomConfig struct {
	Product ProductConfig `yaml:"product"`
	Outline OutlineConfig `yaml:"outline"`
}

// defaultOutline holds the file-level outline defaults applied to zero fields.
var defaultOutline = OutlineConfig{
	Hover:               ChannelConfig{Color: "#ffb300"},
	Selected:            ChannelConfig{Color: "#2979ff"},
	EdgeThickness:       1,
	EdgeGlow:            4,
	Downsample:          2,
	TileCount:           1,
	AnimationIntervalMs: 1000,
	OutputMode:          "normal",
}

// Load reads and parses a showroom configuration file.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - *ShowroomConfig: the parsed configuration with defaults applied
//   - error: an error if the file cannot be read or parsed
func Load(path string) (*ShowroomConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse parses showroom configuration YAML and applies defaults to any field
// left at its zero value.
//
// Parameters:
//   - data: the raw YAML bytes
//
// Returns:
//   - *ShowroomConfig: the parsed configuration with defaults applied
//   - error: an error if the YAML is malformed or a part is invalid
func Parse(data []byte) (*ShowroomConfig, error) {
	var cfg ShowroomConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyOutlineDefaults(&cfg.Outline)

	for i, part := range cfg.Product.Parts {
		if part.Name == "" {
			return nil, fmt.Errorf("product part %d has no name", i)
		}
		if len(part.Transform) != 0 && len(part.Transform) != 16 {
			return nil, fmt.Errorf("part %q transform needs 16 values, got %d", part.Name, len(part.Transform))
		}
	}
	return &cfg, nil
}

func applyOutlineDefaults(o *OutlineConfig) {
	if o.Hover.Color == "" {
		o.Hover.Color = defaultOutline.Hover.Color
	}
	if o.Selected.Color == "" {
		o.Selected.Color = defaultOutline.Selected.Color
	}
	if o.EdgeThickness < 1 {
		o.EdgeThickness = defaultOutline.EdgeThickness
	}
	if o.EdgeGlow < 1 {
		o.EdgeGlow = defaultOutline.EdgeGlow
	}
	if o.Downsample < 1 {
		o.Downsample = defaultOutline.Downsample
	}
	if o.TileCount == 0 {
		o.TileCount = defaultOutline.TileCount
	}
	if o.AnimationIntervalMs <= 0 {
		o.AnimationIntervalMs = defaultOutline.AnimationIntervalMs
	}
	if o.OutputMode == "" {
		o.OutputMode = defaultOutline.OutputMode
	}
}

// ParseHexColor converts "#rrggbb" or "#rrggbbaa" into normalized RGBA floats.
// Alpha defaults to 1 when omitted.
//
// Parameters:
//   - s: the hex color string, leading '#' optional
//
// Returns:
//   - [4]float32: the normalized RGBA color
//   - error: an error if the string is not a valid hex color
func ParseHexColor(s string) ([4]float32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return [4]float32{}, fmt.Errorf("invalid hex color %q", s)
	}

	var out [4]float32
	out[3] = 1
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return [4]float32{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		out[i] = float32(v) / 255
	}
	return out, nil
}

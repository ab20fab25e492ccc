package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/config"
)

func TestParseAppliesOutlineDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("product:\n  name: demo\n"))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Product.Name)
	assert.Equal(t, 1, cfg.Outline.EdgeThickness)
	assert.Equal(t, 4, cfg.Outline.EdgeGlow)
	assert.Equal(t, 2, cfg.Outline.Downsample)
	assert.Equal(t, float32(1), cfg.Outline.TileCount)
	assert.Equal(t, 1000, cfg.Outline.AnimationIntervalMs)
	assert.Equal(t, "normal", cfg.Outline.OutputMode)
	assert.NotEmpty(t, cfg.Outline.Hover.Color)
	assert.NotEmpty(t, cfg.Outline.Selected.Color)
}

func TestParseFullConfig(t *testing.T) {
	src := `
product:
  name: roadster
  parts:
    - name: body
      mesh: cube
      material:
        name: paint
        color: "#aa0000"
        metallic: 0.8
        roughness: 0.3
    - name: wheel-fl
      group: wheels
      mesh: cylinder
outline:
  hover:
    color: "#ffb300"
  selected:
    color: "#2979ff"
    pattern: patterns/stripes.png
  edgeThickness: 2
  edgeGlow: 6
  tileCount: 4
  animateOutline: true
  animationIntervalMs: 1500
  outputMode: mask
`
	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)

	require.Len(t, cfg.Product.Parts, 2)
	assert.Equal(t, "body", cfg.Product.Parts[0].Name)
	assert.Equal(t, "wheels", cfg.Product.Parts[1].Group)
	assert.Equal(t, float32(0.8), cfg.Product.Parts[0].Material.Metallic)

	assert.Equal(t, 2, cfg.Outline.EdgeThickness)
	assert.Equal(t, 6, cfg.Outline.EdgeGlow)
	assert.Equal(t, "patterns/stripes.png", cfg.Outline.Selected.Pattern)
	assert.True(t, cfg.Outline.AnimateOutline)
	assert.Equal(t, "mask", cfg.Outline.OutputMode)
}

func TestParseRejectsUnnamedPart(t *testing.T) {
	_, err := config.Parse([]byte("product:\n  parts:\n    - mesh: cube\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestParseRejectsShortTransform(t *testing.T) {
	src := "product:\n  parts:\n    - name: body\n      transform: [1, 0, 0]\n"
	_, err := config.Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform")
}

func TestParseHexColor(t *testing.T) {
	c, err := config.ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c[0], 1e-3)
	assert.InDelta(t, 0.502, c[1], 1e-3)
	assert.Zero(t, c[2])
	assert.Equal(t, float32(1), c[3])

	c, err = config.ParseHexColor("00ff0080")
	require.NoError(t, err)
	assert.InDelta(t, 0.502, c[3], 1e-3)

	_, err = config.ParseHexColor("#abc")
	assert.Error(t, err)

	_, err = config.ParseHexColor("#zzzzzz")
	assert.Error(t, err)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := config.Parse([]byte("product: [unclosed"))
	assert.Error(t, err)
}

package scene

import (
	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/mesh"
	"github.com/prismatik/showroom/engine/renderer/material"
)

type PartBuilderOption func(*part)

// WithMesh sets the mesh rendered for this part.
//
// Parameters:
//   - m: the mesh to render
//
// Returns:
//   - PartBuilderOption: the option function to apply to the part
func WithMesh(m mesh.Mesh) PartBuilderOption {
	return func(p *part) {
		p.msh = m
	}
}

// WithMaterial sets the surface material for this part.
//
// Parameters:
//   - m: the material to use
//
// Returns:
//   - PartBuilderOption: the option function to apply to the part
func WithMaterial(m material.Material) PartBuilderOption {
	return func(p *part) {
		p.mat = m
	}
}

// WithGroup sets the highlight group id for this part. Parts sharing a
// non-empty group id highlight together.
//
// Parameters:
//   - group: the group id
//
// Returns:
//   - PartBuilderOption: the option function to apply to the part
func WithGroup(group string) PartBuilderOption {
	return func(p *part) {
		p.group = group
	}
}

// WithTransform sets the initial model-to-world matrix for this part.
//
// Parameters:
//   - transform: the model matrix (column-major)
//
// Returns:
//   - PartBuilderOption: the option function to apply to the part
func WithTransform(transform [16]float32) PartBuilderOption {
	return func(p *part) {
		p.transform = transform
	}
}

// WithLayers sets the initial layer membership bitset for this part.
//
// Parameters:
//   - layers: the layer bitset
//
// Returns:
//   - PartBuilderOption: the option function to apply to the part
func WithLayers(layers common.Layers) PartBuilderOption {
	return func(p *part) {
		p.layers = layers
	}
}

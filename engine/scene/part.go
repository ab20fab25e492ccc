package scene

import (
	"sync"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/mesh"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/material"
)

// part is the implementation of the Part interface.
type part struct {
	mu *sync.RWMutex

	id    uint64 // assigned by the scene on registration, 0 until then
	name  string
	group string

	msh mesh.Mesh
	mat material.Material

	layers    common.Layers
	transform [16]float32

	modelProvider bind_group_provider.BindGroupProvider
}

// Part is a selectable sub-part of the configured product: one mesh, one
// material, a model transform, and a layer bitset that highlight passes match
// against. Parts sharing a non-empty group id are highlighted together.
type Part interface {
	// ID retrieves the scene-assigned identifier for this part.
	// Returns 0 until the part has been added to a scene.
	//
	// Returns:
	//   - uint64: the part identifier
	ID() uint64

	// Name retrieves the human-readable part name.
	//
	// Returns:
	//   - string: the part name
	Name() string

	// Group retrieves the highlight group id this part belongs to.
	// An empty string means the part highlights alone.
	//
	// Returns:
	//   - string: the group id, or ""
	Group() string

	// Mesh retrieves the mesh rendered for this part.
	//
	// Returns:
	//   - mesh.Mesh: the part's mesh
	Mesh() mesh.Mesh

	// Material retrieves the surface material for this part.
	//
	// Returns:
	//   - material.Material: the part's material, or nil
	Material() material.Material

	// SetMaterial swaps the surface material, e.g. when the user picks a
	// different finish. The new material must already have GPU resources
	// initialized if the part is in an active scene.
	//
	// Parameters:
	//   - mat: the material to use
	SetMaterial(mat material.Material)

	// Layers retrieves the part's layer membership bitset.
	//
	// Returns:
	//   - common.Layers: the current layer bitset
	Layers() common.Layers

	// SetLayers replaces the part's layer membership bitset.
	//
	// Parameters:
	//   - layers: the new bitset
	SetLayers(layers common.Layers)

	// EnableLayer sets a single layer bit on the part.
	//
	// Parameters:
	//   - index: the layer index to enable
	EnableLayer(index int)

	// DisableLayer clears a single layer bit on the part.
	//
	// Parameters:
	//   - index: the layer index to disable
	DisableLayer(index int)

	// Transform retrieves the part's model-to-world matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the model matrix
	Transform() [16]float32

	// SetTransform replaces the part's model-to-world matrix.
	//
	// Parameters:
	//   - transform: the new model matrix (column-major)
	SetTransform(transform [16]float32)

	// ModelProvider retrieves the bind group provider holding the part's model
	// uniform buffer, or nil before scene registration.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the model uniform provider
	ModelProvider() bind_group_provider.BindGroupProvider

	// SetModelProvider sets the bind group provider for the part's model uniform.
	//
	// Parameters:
	//   - provider: the provider to attach
	SetModelProvider(provider bind_group_provider.BindGroupProvider)

	// setID assigns the scene identifier. Unexported — only the owning scene
	// assigns IDs.
	setID(id uint64)
}

var _ Part = &part{}

// NewPart creates a new Part configured with the provided options. Parts start
// on the default layer with an identity transform.
//
// Parameters:
//   - name: the human-readable part name
//   - options: variadic list of PartBuilderOption functions to configure the part
//
// Returns:
//   - Part: a new Part instance
func NewPart(name string, options ...PartBuilderOption) Part {
	p := &part{
		mu:     &sync.RWMutex{},
		name:   name,
		layers: common.LayerMask(common.LayerDefault),
		transform: [16]float32{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *part) ID() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.id
}

func (p *part) Name() string {
	return p.name
}

func (p *part) Group() string {
	return p.group
}

func (p *part) Mesh() mesh.Mesh {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.msh
}

func (p *part) Material() material.Material {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mat
}

func (p *part) SetMaterial(mat material.Material) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mat = mat
}

func (p *part) Layers() common.Layers {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.layers
}

func (p *part) SetLayers(layers common.Layers) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.layers = layers
}

func (p *part) EnableLayer(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.layers.Enable(index)
}

func (p *part) DisableLayer(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.layers.Disable(index)
}

func (p *part) Transform() [16]float32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.transform
}

func (p *part) SetTransform(transform [16]float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transform = transform
}

func (p *part) ModelProvider() bind_group_provider.BindGroupProvider {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modelProvider
}

func (p *part) SetModelProvider(provider bind_group_provider.BindGroupProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modelProvider = provider
}

func (p *part) setID(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
}

package material

import (
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
)

// maskMaterial is the implementation of the MaskMaterial interface.
type maskMaterial struct {
	name              string
	maskColor         [4]float32
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// MaskMaterial is a flat-color override material used by the highlight mask pass.
// It replaces every part's surface material for one draw pass so hovered and selected
// geometry land in separate color channels of the mask target. Like Material, the
// GPU references are mutable so initialization can happen after construction.
type MaskMaterial interface {
	// Name retrieves the mask material identifier.
	//
	// Returns:
	//   - string: the name of the mask material
	Name() string

	// MaskColor retrieves the flat RGBA color this mask writes. Each highlight
	// channel claims one color component of the mask target.
	//
	// Returns:
	//   - [4]float32: the mask color as RGBA values
	MaskColor() [4]float32

	// PipelineKey retrieves the key identifying the render pipeline this mask uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding the mask color uniform.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey sets the render pipeline key for this mask material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this mask material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this mask material.
	//
	// Parameters:
	//   - provider: the bind group provider containing the mask color uniform
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ MaskMaterial = &maskMaterial{}

// NewMaskMaterial creates a new MaskMaterial writing the given flat color.
//
// Parameters:
//   - name: the mask material identifier
//   - maskColor: the flat RGBA color the mask pass writes
//
// Returns:
//   - MaskMaterial: a new MaskMaterial instance
func NewMaskMaterial(name string, maskColor [4]float32) MaskMaterial {
	return &maskMaterial{
		name:      name,
		maskColor: maskColor,
	}
}

func (m *maskMaterial) Name() string {
	return m.name
}

func (m *maskMaterial) MaskColor() [4]float32 {
	return m.maskColor
}

func (m *maskMaterial) PipelineKey() string {
	return m.pipelineKey
}

func (m *maskMaterial) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *maskMaterial) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *maskMaterial) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}

package material

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// ChannelKind identifies where a highlight channel's pattern texture comes from.
type ChannelKind int

const (
	// ChannelStatic samples an uploaded pattern strip owned by the channel.
	ChannelStatic ChannelKind = iota

	// ChannelDynamic samples another pass's render target directly.
	ChannelDynamic
)

// ChannelGPU is the subset of renderer operations a ChannelTexture needs to manage
// its bind group. The full Renderer satisfies it.
type ChannelGPU interface {
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
}

// channelTexture is the implementation of the ChannelTexture interface.
type channelTexture struct {
	mu sync.Mutex

	label  string
	gpu    ChannelGPU
	layout wgpu.BindGroupLayoutDescriptor

	textureBinding int
	samplerBinding int

	kind     ChannelKind
	provider bind_group_provider.BindGroupProvider
}

// ChannelTexture owns the pattern texture bind group for one highlight channel
// (hover or selected). A channel starts with a neutral placeholder strip so
// flat-color outlines work without any pattern configured. SetStatic swaps in a
// decoded pattern strip; SetDynamic repoints the channel at a render target so
// live pass output can be scrolled along the outline.
type ChannelTexture interface {
	// Label retrieves the channel identifier used for GPU debug labels.
	//
	// Returns:
	//   - string: the channel label
	Label() string

	// Kind reports whether the channel currently samples an uploaded strip or a
	// render target.
	//
	// Returns:
	//   - ChannelKind: the current source kind
	Kind() ChannelKind

	// BindGroupProvider retrieves the bind group provider holding the channel's
	// texture and sampler bindings.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the channel's bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetStatic decodes a pattern image, resamples it to the fixed strip size, and
	// uploads it as the channel's texture. On decode failure the previous binding
	// stays in place and the error is returned.
	//
	// Parameters:
	//   - tex: the pattern image source
	//
	// Returns:
	//   - error: an error if decoding or the GPU upload fails
	SetStatic(tex *common.ImportedTexture) error

	// SetStaticStrip uploads an already decoded strip as the channel's texture,
	// for callers that decode off the render thread with a PatternDecoder.
	//
	// Parameters:
	//   - staging: the resampled RGBA strip to upload
	//
	// Returns:
	//   - error: an error if the GPU upload fails
	SetStaticStrip(staging common.TextureStagingData) error

	// SetDynamic points the channel at a render target's texture view. The target
	// must be initialized. After the target is resized its view is recreated, so
	// the caller must call SetDynamic again to rebind.
	//
	// Parameters:
	//   - target: the render target to sample from
	//
	// Returns:
	//   - error: an error if the target has no view or the bind group rebuild fails
	SetDynamic(target render_target.RenderTarget) error
}

var _ ChannelTexture = &channelTexture{}

// NewChannelTexture creates a ChannelTexture bound through the given layout, which
// must contain exactly one texture entry and one sampler entry (the pattern bindings
// of the composite shader). The channel is initialized with a 1x1 white strip.
//
// Parameters:
//   - label: the channel identifier, used for GPU debug labels
//   - gpu: the renderer operations used to build GPU resources
//   - layout: the bind group layout holding the pattern texture and sampler entries
//
// Returns:
//   - ChannelTexture: a ready-to-bind channel
//   - error: an error if the layout is missing entries or GPU setup fails
func NewChannelTexture(label string, gpu ChannelGPU, layout wgpu.BindGroupLayoutDescriptor) (ChannelTexture, error) {
	c := &channelTexture{
		label:          label,
		gpu:            gpu,
		layout:         layout,
		textureBinding: -1,
		samplerBinding: -1,
	}
	for _, entry := range layout.Entries {
		if entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined {
			c.textureBinding = int(entry.Binding)
		} else if entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined {
			c.samplerBinding = int(entry.Binding)
		}
	}
	if c.textureBinding < 0 || c.samplerBinding < 0 {
		return nil, fmt.Errorf("channel %s layout needs a texture and a sampler entry", label)
	}

	c.provider = bind_group_provider.NewBindGroupProvider(label + " Channel")
	if err := gpu.InitTextureView(c.provider, c.textureBinding, placeholderStrip()); err != nil {
		return nil, fmt.Errorf("failed to create channel %s placeholder: %w", label, err)
	}
	if err := gpu.InitSampler(c.provider, c.samplerBinding, common.SamplerStagingData{}); err != nil {
		return nil, fmt.Errorf("failed to create channel %s sampler: %w", label, err)
	}
	if err := gpu.InitBindGroup(c.provider, layout, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to bind channel %s: %w", label, err)
	}
	return c, nil
}

// placeholderStrip is a 1x1 opaque white texture. Sampling it multiplies through
// as identity, so a channel with no pattern behaves like a flat-color outline.
func placeholderStrip() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
		Width:  1,
		Height: 1,
	}
}

func (c *channelTexture) Label() string {
	return c.label
}

func (c *channelTexture) Kind() ChannelKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *channelTexture) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

func (c *channelTexture) SetStatic(tex *common.ImportedTexture) error {
	staging, err := DecodePatternStrip(tex)
	if err != nil {
		return err
	}
	return c.SetStaticStrip(staging)
}

func (c *channelTexture) SetStaticStrip(staging common.TextureStagingData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.gpu.InitTextureView(c.provider, c.textureBinding, staging); err != nil {
		return fmt.Errorf("failed to upload channel %s pattern: %w", c.label, err)
	}
	if err := c.gpu.InitBindGroup(c.provider, c.layout, nil, nil); err != nil {
		return fmt.Errorf("failed to rebind channel %s: %w", c.label, err)
	}
	c.kind = ChannelStatic
	return nil
}

func (c *channelTexture) SetDynamic(target render_target.RenderTarget) error {
	if target == nil || target.View() == nil {
		return fmt.Errorf("channel %s dynamic source has no texture view", c.label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider.SetTextureView(c.textureBinding, target.View())
	if err := c.gpu.InitBindGroup(c.provider, c.layout, nil, nil); err != nil {
		return fmt.Errorf("failed to rebind channel %s: %w", c.label, err)
	}
	c.kind = ChannelDynamic
	return nil
}

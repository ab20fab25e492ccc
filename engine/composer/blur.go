package composer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/material"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// BlurKernel computes normalized one-sided Gaussian weights for a separable blur.
// Index 0 is the center tap; the shader mirrors indices 1..radius to both sides.
// Radius is clamped to [1, MaxBlurTaps-1]. The weights are normalized so that
// center + 2*sum(sides) == 1, keeping blurred silhouettes at full intensity.
//
// Parameters:
//   - radius: the requested number of taps on each side of center
//
// Returns:
//   - [material.MaxBlurTaps]float32: the normalized weights, center first
//   - uint32: the clamped radius actually used
func BlurKernel(radius int) ([material.MaxBlurTaps]float32, uint32) {
	if radius < 1 {
		radius = 1
	}
	if radius > material.MaxBlurTaps-1 {
		radius = material.MaxBlurTaps - 1
	}

	// Sigma scales with the radius so wider kernels spread instead of just
	// sampling further into the tail. The floor keeps a radius-1 kernel from
	// degenerating into a near-passthrough.
	sigma := float32(radius) / 2
	if sigma < 0.8 {
		sigma = 0.8
	}

	var weights [material.MaxBlurTaps]float32
	for i := 0; i <= radius; i++ {
		x := float32(i)
		weights[i] = math32.Exp(-(x * x) / (2 * sigma * sigma))
	}

	total := weights[0]
	for i := 1; i <= radius; i++ {
		total += 2 * weights[i]
	}
	for i := 0; i <= radius; i++ {
		weights[i] /= total
	}
	return weights, uint32(radius)
}

// blurLeg is one direction of a separable Gaussian blur: a bind group holding
// the blur uniform plus the source texture, and the target it renders into.
// Both directions of both blur resolutions share a single blur pipeline; only
// the uniform contents and bindings differ per leg.
type blurLeg struct {
	label string
	gpu   renderer.Renderer

	layout         wgpu.BindGroupLayoutDescriptor
	uniformBinding int
	textureBinding int
	samplerBinding int

	provider bind_group_provider.BindGroupProvider
	params   material.GPUBlurParams

	source render_target.RenderTarget
	dest   render_target.RenderTarget
}

// newBlurLeg builds the bind group for one blur direction. The kernel is
// computed once here; the uniform is written on the first rebind.
//
// Parameters:
//   - gpu: the renderer used for GPU setup
//   - layout: the blur shader's bind group layout (uniform, texture, sampler)
//   - label: a debug label for the leg's provider
//   - source: the target this leg samples from
//   - dest: the target this leg renders into
//   - direction: the blur axis, (1,0) for horizontal or (0,1) for vertical
//   - radius: the kernel radius before clamping
//
// Returns:
//   - *blurLeg: the configured leg with its bind group built
//   - error: an error if GPU setup fails
func newBlurLeg(gpu renderer.Renderer, layout wgpu.BindGroupLayoutDescriptor, label string, source, dest render_target.RenderTarget, direction [2]float32, radius int) (*blurLeg, error) {
	l := &blurLeg{
		label:          label,
		gpu:            gpu,
		layout:         layout,
		uniformBinding: -1,
		textureBinding: -1,
		samplerBinding: -1,
		source:         source,
		dest:           dest,
	}
	for _, entry := range layout.Entries {
		if entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined {
			l.textureBinding = int(entry.Binding)
		} else if entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined {
			l.samplerBinding = int(entry.Binding)
		} else if l.uniformBinding < 0 {
			l.uniformBinding = int(entry.Binding)
		}
	}
	if l.uniformBinding < 0 || l.textureBinding < 0 || l.samplerBinding < 0 {
		return nil, fmt.Errorf("blur layout for %s needs a uniform, a texture, and a sampler entry", label)
	}

	weights, clamped := BlurKernel(radius)
	l.params = material.GPUBlurParams{
		Direction:    direction,
		KernelRadius: clamped,
		Weights:      weights,
	}

	l.provider = bind_group_provider.NewBindGroupProvider(label)
	if err := gpu.InitSampler(l.provider, l.samplerBinding, common.SamplerStagingData{}); err != nil {
		return nil, fmt.Errorf("failed to create %s sampler: %w", label, err)
	}
	if err := l.rebind(); err != nil {
		return nil, err
	}
	return l, nil
}

// rebind repoints the leg at its source's current view, rebuilds the bind group,
// and rewrites the uniform with the source's current texel size. Called at
// construction and after every resize.
func (l *blurLeg) rebind() error {
	view := l.source.View()
	if view == nil {
		return fmt.Errorf("%s source %s has no texture view", l.label, l.source.Label())
	}
	l.provider.SetTextureView(l.textureBinding, view)
	if err := l.gpu.InitBindGroup(l.provider, l.layout, nil, nil); err != nil {
		return fmt.Errorf("failed to bind %s: %w", l.label, err)
	}

	l.params.TexelSize = [2]float32{
		1 / float32(l.source.Width()),
		1 / float32(l.source.Height()),
	}
	l.gpu.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: l.provider,
		Binding:  l.uniformBinding,
		Data:     l.params.Marshal(),
	}})
	return nil
}

// render encodes the leg's fullscreen blur draw into its destination target.
func (l *blurLeg) render(pipelineKey string) error {
	l.gpu.BeginTargetPass(l.dest, transparent, false)
	err := l.gpu.BlitCall(pipelineKey, []bind_group_provider.BindGroupProvider{l.provider})
	l.gpu.EndTargetPass()
	if err != nil {
		return fmt.Errorf("%s blit failed: %w", l.label, err)
	}
	return nil
}

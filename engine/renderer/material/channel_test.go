package material_test

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/material"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// fakeChannelGPU hands each uploaded strip a fresh texture view and records
// what the channel asked for, so a test can tell which source ends up bound.
type fakeChannelGPU struct {
	uploads   []common.TextureStagingData
	rebinds   int
	uploadErr error
}

func (g *fakeChannelGPU) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor, _ map[int]wgpu.BufferUsage, _ map[int]uint64) error {
	g.rebinds++
	provider.SetBindGroup(&wgpu.BindGroup{})
	return nil
}

func (g *fakeChannelGPU) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	if g.uploadErr != nil {
		return g.uploadErr
	}
	g.uploads = append(g.uploads, stagingData)
	provider.SetTextureView(bindingKey, &wgpu.TextureView{})
	return nil
}

func (g *fakeChannelGPU) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, _ common.SamplerStagingData) error {
	provider.SetSampler(bindingKey, &wgpu.Sampler{})
	return nil
}

func channelLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat}},
			{Binding: 1, Sampler: wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}},
		},
	}
}

func strip(fill byte) common.TextureStagingData {
	pixels := make([]byte, material.PatternStripWidth*material.PatternStripHeight*4)
	for i := range pixels {
		pixels[i] = fill
	}
	return common.TextureStagingData{
		Pixels: pixels,
		Width:  material.PatternStripWidth,
		Height: material.PatternStripHeight,
	}
}

func TestChannelTextureStartsStaticWithPlaceholder(t *testing.T) {
	gpu := &fakeChannelGPU{}
	ch, err := material.NewChannelTexture("Hover", gpu, channelLayout())
	require.NoError(t, err)

	assert.Equal(t, material.ChannelStatic, ch.Kind())
	require.Len(t, gpu.uploads, 1)
	assert.Equal(t, uint32(1), gpu.uploads[0].Width, "placeholder is a 1x1 strip")
	assert.NotNil(t, ch.BindGroupProvider().TextureView(0))
}

func TestChannelTextureRejectsLayoutWithoutSampler(t *testing.T) {
	layout := wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat}},
		},
	}
	_, err := material.NewChannelTexture("Hover", &fakeChannelGPU{}, layout)
	assert.Error(t, err)
}

func TestChannelTextureSwitchSequenceBindsLatestSource(t *testing.T) {
	gpu := &fakeChannelGPU{}
	ch, err := material.NewChannelTexture("Selected", gpu, channelLayout())
	require.NoError(t, err)
	provider := ch.BindGroupProvider()

	// Static strip upload replaces the placeholder view.
	placeholderView := provider.TextureView(0)
	require.NoError(t, ch.SetStaticStrip(strip(0x10)))
	assert.Equal(t, material.ChannelStatic, ch.Kind())
	staticView := provider.TextureView(0)
	assert.NotSame(t, placeholderView, staticView)

	// Switching to a live render target points the binding at that target's view.
	rt := render_target.NewRenderTarget("Glow Feed")
	rt.SetView(&wgpu.TextureView{})
	require.NoError(t, ch.SetDynamic(rt))
	assert.Equal(t, material.ChannelDynamic, ch.Kind())
	assert.Same(t, rt.View(), provider.TextureView(0))

	// Switching back to an image must shed the render-target view entirely.
	require.NoError(t, ch.SetStaticStrip(strip(0x80)))
	assert.Equal(t, material.ChannelStatic, ch.Kind())
	assert.NotSame(t, rt.View(), provider.TextureView(0))
	assert.Equal(t, byte(0x80), gpu.uploads[len(gpu.uploads)-1].Pixels[0], "latest strip is the one uploaded")

	// Every switch rebuilt the bind group: construction plus three switches.
	assert.Equal(t, 4, gpu.rebinds)
}

func TestChannelTextureUploadFailureKeepsPreviousBinding(t *testing.T) {
	gpu := &fakeChannelGPU{}
	ch, err := material.NewChannelTexture("Hover", gpu, channelLayout())
	require.NoError(t, err)
	provider := ch.BindGroupProvider()

	rt := render_target.NewRenderTarget("Glow Feed")
	rt.SetView(&wgpu.TextureView{})
	require.NoError(t, ch.SetDynamic(rt))

	gpu.uploadErr = errors.New("device lost")
	err = ch.SetStaticStrip(strip(0xFF))
	require.Error(t, err)

	assert.Equal(t, material.ChannelDynamic, ch.Kind(), "failed upload must not flip the kind")
	assert.Same(t, rt.View(), provider.TextureView(0), "failed upload must not touch the bound view")
}

func TestChannelTextureRejectsUninitializedDynamicSource(t *testing.T) {
	gpu := &fakeChannelGPU{}
	ch, err := material.NewChannelTexture("Hover", gpu, channelLayout())
	require.NoError(t, err)

	err = ch.SetDynamic(render_target.NewRenderTarget("Unready"))
	assert.Error(t, err)
	assert.Equal(t, material.ChannelStatic, ch.Kind())
}

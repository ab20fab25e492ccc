package composer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// sourceBindings caches a bind group provider per render target for fullscreen
// passes that sample a target's texture. The composer ping-pongs its buffers, so
// a pass can see either buffer as its read source from frame to frame; caching
// per target avoids rebuilding bind groups every frame. The cache must be
// invalidated whenever targets are resized, since resizing recreates their views.
type sourceBindings struct {
	mu sync.Mutex

	gpu            renderer.Renderer
	layout         wgpu.BindGroupLayoutDescriptor
	textureBinding int
	samplerBinding int

	cache map[render_target.RenderTarget]bind_group_provider.BindGroupProvider
}

// newSourceBindings creates a cache keyed by render target for the given layout,
// which must contain one texture entry and one sampler entry.
func newSourceBindings(gpu renderer.Renderer, layout wgpu.BindGroupLayoutDescriptor) (*sourceBindings, error) {
	s := &sourceBindings{
		gpu:            gpu,
		layout:         layout,
		textureBinding: -1,
		samplerBinding: -1,
		cache:          make(map[render_target.RenderTarget]bind_group_provider.BindGroupProvider),
	}
	for _, entry := range layout.Entries {
		if entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined {
			s.textureBinding = int(entry.Binding)
		} else if entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined {
			s.samplerBinding = int(entry.Binding)
		}
	}
	if s.textureBinding < 0 || s.samplerBinding < 0 {
		return nil, fmt.Errorf("source layout needs a texture and a sampler entry")
	}
	return s, nil
}

// provider returns the cached bind group provider for the target, building one
// on first use.
func (s *sourceBindings) provider(target render_target.RenderTarget) (bind_group_provider.BindGroupProvider, error) {
	if target == nil || target.View() == nil {
		return nil, fmt.Errorf("source target has no texture view")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.cache[target]; ok {
		return p, nil
	}

	p := bind_group_provider.NewBindGroupProvider(target.Label() + " Source")
	p.SetTextureView(s.textureBinding, target.View())
	if err := s.gpu.InitSampler(p, s.samplerBinding, common.SamplerStagingData{}); err != nil {
		return nil, fmt.Errorf("failed to create source sampler for %s: %w", target.Label(), err)
	}
	if err := s.gpu.InitBindGroup(p, s.layout, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to bind source %s: %w", target.Label(), err)
	}
	s.cache[target] = p
	return p, nil
}

// invalidate drops every cached provider. Call after any resize that recreates
// target views.
func (s *sourceBindings) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.cache)
}

package scene_test

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/pipeline"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// drawRecord captures one TargetDrawCall for assertions.
type drawRecord struct {
	key    string
	groups int
}

// fakeRenderer satisfies renderer.Renderer without a GPU, recording draw calls
// and buffer writes so scene tests can assert what was submitted.
type fakeRenderer struct {
	mu sync.Mutex

	pipelines map[string]pipeline.Pipeline
	draws     []drawRecord
	writes    []int
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: make(map[string]pipeline.Pipeline)}
}

func (f *fakeRenderer) recordedDraws() []drawRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]drawRecord, len(f.draws))
	copy(out, f.draws)
	return out
}

func (f *fakeRenderer) recordedWrites() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.writes))
	copy(out, f.writes)
	return out
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pipelines[key]
}

func (f *fakeRenderer) Pipelines() map[string]pipeline.Pipeline {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pipelines
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range pipelines {
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) SetPipeline(key string, p pipeline.Pipeline) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pipelines[key] = p
}

func (f *fakeRenderer) SetPipelines(pipelines map[string]pipeline.Pipeline) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pipelines = pipelines
}

func (f *fakeRenderer) Resize(width, height int) {}

func (f *fakeRenderer) SurfaceFormat() wgpu.TextureFormat {
	return wgpu.TextureFormatBGRA8Unorm
}

func (f *fakeRenderer) ClearColor() wgpu.Color { return wgpu.Color{} }

func (f *fakeRenderer) SetClearColor(color wgpu.Color) {}

func (f *fakeRenderer) SaveState() renderer.RenderState { return renderer.RenderState{} }

func (f *fakeRenderer) RestoreState(state renderer.RenderState) {}

func (f *fakeRenderer) InitRenderTarget(target render_target.RenderTarget) error {
	target.SetView(&wgpu.TextureView{})
	return nil
}

func (f *fakeRenderer) ResizeRenderTarget(target render_target.RenderTarget, width, height int) error {
	target.SetSize(uint32(width), uint32(height))
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return nil
}

func (f *fakeRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, len(writes))
}

func (f *fakeRenderer) BeginFrame() error { return nil }

func (f *fakeRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	return nil
}

func (f *fakeRenderer) BlitCall(pipelineKey string, bindGroups []bind_group_provider.BindGroupProvider) error {
	return nil
}

func (f *fakeRenderer) EndFrame() {}

func (f *fakeRenderer) Present() {}

func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}

func (f *fakeRenderer) BeginPassFrame() error { return nil }

func (f *fakeRenderer) BeginTargetPass(target render_target.RenderTarget, clearColor wgpu.Color, loadPrevious bool) {
}

func (f *fakeRenderer) TargetDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draws = append(f.draws, drawRecord{key: pipelineKey, groups: len(bindGroups)})
	return nil
}

func (f *fakeRenderer) EndTargetPass() {}

func (f *fakeRenderer) EndPassFrame() {}

package composer_test

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/pipeline"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// fakeRenderer records renderer calls so tests can assert pass behavior without
// a GPU. Render targets get a placeholder view so source bindings resolve.
type fakeRenderer struct {
	mu    sync.Mutex
	calls []string

	clearColor wgpu.Color
	pipelines  map[string]pipeline.Pipeline

	beginPassFrameErr error
	beginFrameErr     error
	resizeErr         error
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: make(map[string]pipeline.Pipeline)}
}

func (f *fakeRenderer) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRenderer) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeRenderer) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeRenderer) count(call string) int {
	n := 0
	for _, c := range f.recorded() {
		if c == call {
			n++
		}
	}
	return n
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

func (f *fakeRenderer) Resize(width, height int) {
	f.record(fmt.Sprintf("Resize %dx%d", width, height))
}

func (f *fakeRenderer) SurfaceFormat() wgpu.TextureFormat {
	return wgpu.TextureFormatBGRA8Unorm
}

func (f *fakeRenderer) ClearColor() wgpu.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clearColor
}

func (f *fakeRenderer) SetClearColor(color wgpu.Color) {
	f.mu.Lock()
	f.clearColor = color
	f.mu.Unlock()
	f.record("SetClearColor")
}

func (f *fakeRenderer) SaveState() renderer.RenderState {
	f.record("SaveState")
	f.mu.Lock()
	defer f.mu.Unlock()
	return renderer.RenderState{ClearColor: f.clearColor}
}

func (f *fakeRenderer) RestoreState(state renderer.RenderState) {
	f.record("RestoreState")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearColor = state.ClearColor
}

func (f *fakeRenderer) InitRenderTarget(target render_target.RenderTarget) error {
	target.SetView(&wgpu.TextureView{})
	f.record("InitRenderTarget " + target.Label())
	return nil
}

func (f *fakeRenderer) ResizeRenderTarget(target render_target.RenderTarget, width, height int) error {
	if f.resizeErr != nil {
		return f.resizeErr
	}
	target.SetSize(uint32(width), uint32(height))
	target.SetView(&wgpu.TextureView{})
	f.record(fmt.Sprintf("ResizeRenderTarget %s %dx%d", target.Label(), width, height))
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	f.record("InitBindGroup " + provider.Label())
	return nil
}

func (f *fakeRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.record(fmt.Sprintf("WriteBuffers %d", len(writes)))
}

func (f *fakeRenderer) BeginFrame() error {
	if f.beginFrameErr != nil {
		return f.beginFrameErr
	}
	f.record("BeginFrame")
	return nil
}

func (f *fakeRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.record("DrawCall " + pipelineKey)
	return nil
}

func (f *fakeRenderer) BlitCall(pipelineKey string, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.record("BlitCall " + pipelineKey)
	return nil
}

func (f *fakeRenderer) EndFrame() {
	f.record("EndFrame")
}

func (f *fakeRenderer) Present() {
	f.record("Present")
}

func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}

func (f *fakeRenderer) BeginPassFrame() error {
	if f.beginPassFrameErr != nil {
		return f.beginPassFrameErr
	}
	f.record("BeginPassFrame")
	return nil
}

func (f *fakeRenderer) BeginTargetPass(target render_target.RenderTarget, clearColor wgpu.Color, loadPrevious bool) {
	f.record("BeginTargetPass " + target.Label())
}

func (f *fakeRenderer) TargetDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.record("TargetDrawCall " + pipelineKey)
	return nil
}

func (f *fakeRenderer) EndTargetPass() {
	f.record("EndTargetPass")
}

func (f *fakeRenderer) EndPassFrame() {
	f.record("EndPassFrame")
}

package composer

import (
	"fmt"

	"github.com/prismatik/showroom/assets"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/pipeline"
	"github.com/prismatik/showroom/engine/renderer/render_target"
	"github.com/prismatik/showroom/engine/renderer/shader"
)

const screenCopyPipelineKey = "screen_copy"

// copyPass is the terminal pass: a fullscreen copy of the read buffer onto the
// main surface. It always runs render-to-screen, so the composer hands it a nil
// write buffer and an open surface pass.
type copyPass struct {
	passState

	r       renderer.Renderer
	sources *sourceBindings
}

var _ Pass = &copyPass{}

// NewCopyPass creates the pass that puts the composed frame on screen. Panics
// if its surface pipeline cannot be created.
//
// Parameters:
//   - r: the renderer used for all GPU work
//
// Returns:
//   - Pass: the copy pass, enabled and routed to the surface by default
func NewCopyPass(r renderer.Renderer) Pass {
	if r == nil {
		panic("copy pass: renderer must not be nil")
	}

	p := &copyPass{
		passState: passState{label: "CopyPass", enabled: true, renderToScreen: true},
		r:         r,
	}

	fullscreenVert := shader.NewShaderFromSource("fullscreen_vert", shader.ShaderTypeVertex, assets.FullscreenVertSource)
	copyFrag := shader.NewShaderFromSource("copy_frag", shader.ShaderTypeFragment, assets.CopyFragSource)
	err := r.RegisterPipelines(pipeline.NewPipeline(screenCopyPipelineKey,
		pipeline.WithVertexShader(fullscreenVert),
		pipeline.WithFragmentShader(copyFrag),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(false),
	))
	if err != nil {
		panic(fmt.Sprintf("copy pass: failed to register pipeline: %v", err))
	}

	p.sources, err = newSourceBindings(r, copyFrag.BindGroupLayoutDescriptor(0))
	if err != nil {
		panic(fmt.Sprintf("copy pass: %v", err))
	}
	return p
}

func (p *copyPass) Render(_, read render_target.RenderTarget, _ float32) error {
	src, err := p.sources.provider(read)
	if err != nil {
		return err
	}
	return p.r.BlitCall(screenCopyPipelineKey, []bind_group_provider.BindGroupProvider{src})
}

func (p *copyPass) SetSize(int, int) {
	p.sources.invalidate()
}

package composer

import (
	"fmt"
	"log"

	"github.com/prismatik/showroom/assets"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/pipeline"
	"github.com/prismatik/showroom/engine/renderer/render_target"
	"github.com/prismatik/showroom/engine/renderer/shader"
	"github.com/prismatik/showroom/engine/scene"
)

const sceneCopyPipelineKey = "scene_copy"

// scenePass renders the product scene into its own depth-enabled color buffer
// and copies the result into the composer's write buffer. Rendering through an
// intermediate target keeps depth testing off the shared ping-pong buffers.
type scenePass struct {
	passState

	r   renderer.Renderer
	scn scene.Scene

	target  render_target.RenderTarget
	sources *sourceBindings
}

var _ Pass = &scenePass{}

// NewScenePass creates the pass that draws the product scene at the head of the
// chain. Panics if its color buffer or copy pipeline cannot be created.
//
// Parameters:
//   - r: the renderer used for all GPU work
//   - scn: the scene to draw each frame
//   - width, height: the initial surface size in pixels
//
// Returns:
//   - Pass: the scene pass, enabled by default
func NewScenePass(r renderer.Renderer, scn scene.Scene, width, height int) Pass {
	if r == nil || scn == nil {
		panic("scene pass: renderer and scene must not be nil")
	}

	p := &scenePass{
		passState: passState{label: "ScenePass", enabled: true},
		r:         r,
		scn:       scn,
	}

	p.target = render_target.NewRenderTarget("Scene Color", render_target.WithDepth())
	p.target.SetSize(uint32(max(width, 1)), uint32(max(height, 1)))
	if err := r.InitRenderTarget(p.target); err != nil {
		panic(fmt.Sprintf("scene pass: failed to create color buffer: %v", err))
	}

	fullscreenVert := shader.NewShaderFromSource("fullscreen_vert", shader.ShaderTypeVertex, assets.FullscreenVertSource)
	copyFrag := shader.NewShaderFromSource("copy_frag", shader.ShaderTypeFragment, assets.CopyFragSource)
	err := r.RegisterPipelines(pipeline.NewPipeline(sceneCopyPipelineKey,
		pipeline.WithVertexShader(fullscreenVert),
		pipeline.WithFragmentShader(copyFrag),
		pipeline.WithColorFormat(p.target.Format()),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(false),
	))
	if err != nil {
		panic(fmt.Sprintf("scene pass: failed to register copy pipeline: %v", err))
	}

	p.sources, err = newSourceBindings(r, copyFrag.BindGroupLayoutDescriptor(0))
	if err != nil {
		panic(fmt.Sprintf("scene pass: %v", err))
	}
	return p
}

func (p *scenePass) Render(write, _ render_target.RenderTarget, _ float32) error {
	p.setNeedsSwap(false)

	p.scn.Prepare()

	// The camera's mask decides which part layers reach the main color buffer.
	p.r.BeginTargetPass(p.target, p.r.ClearColor(), false)
	drawErr := p.scn.DrawParts("", p.scn.Camera().LayerMask())
	p.r.EndTargetPass()
	if drawErr != nil {
		return drawErr
	}

	src, err := p.sources.provider(p.target)
	if err != nil {
		return err
	}
	p.r.BeginTargetPass(write, transparent, false)
	blitErr := p.r.BlitCall(sceneCopyPipelineKey, []bind_group_provider.BindGroupProvider{src})
	p.r.EndTargetPass()
	if blitErr != nil {
		return blitErr
	}

	p.setNeedsSwap(true)
	return nil
}

func (p *scenePass) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if err := p.r.ResizeRenderTarget(p.target, width, height); err != nil {
		log.Printf("[ScenePass] failed to resize color buffer: %v", err)
		return
	}
	p.sources.invalidate()
}

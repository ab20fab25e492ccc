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

const colorCorrectionPipelineKey = "color_correction"

// colorCorrectionPass applies the linear-to-sRGB transfer curve as a fullscreen
// blit from the read buffer into the write buffer. Runs on the scene color
// before the outline pass so the overlay's configured colors land on screen
// exactly as given rather than being re-curved.
type colorCorrectionPass struct {
	passState

	r       renderer.Renderer
	sources *sourceBindings
}

var _ Pass = &colorCorrectionPass{}

// NewColorCorrectionPass creates the gamma correction pass. Panics if its
// pipeline cannot be created.
//
// Parameters:
//   - r: the renderer used for all GPU work
//
// Returns:
//   - Pass: the color correction pass, enabled by default
func NewColorCorrectionPass(r renderer.Renderer) Pass {
	if r == nil {
		panic("color correction pass: renderer must not be nil")
	}

	p := &colorCorrectionPass{
		passState: passState{label: "ColorCorrectionPass", enabled: true},
		r:         r,
	}

	fullscreenVert := shader.NewShaderFromSource("fullscreen_vert", shader.ShaderTypeVertex, assets.FullscreenVertSource)
	correctionFrag := shader.NewShaderFromSource("color_correction_frag", shader.ShaderTypeFragment, assets.ColorCorrectionFragSource)
	err := r.RegisterPipelines(pipeline.NewPipeline(colorCorrectionPipelineKey,
		pipeline.WithVertexShader(fullscreenVert),
		pipeline.WithFragmentShader(correctionFrag),
		pipeline.WithColorFormat(targetFormat),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(false),
	))
	if err != nil {
		panic(fmt.Sprintf("color correction pass: failed to register pipeline: %v", err))
	}

	p.sources, err = newSourceBindings(r, correctionFrag.BindGroupLayoutDescriptor(0))
	if err != nil {
		panic(fmt.Sprintf("color correction pass: %v", err))
	}
	return p
}

func (p *colorCorrectionPass) Render(write, read render_target.RenderTarget, _ float32) error {
	p.setNeedsSwap(false)

	src, err := p.sources.provider(read)
	if err != nil {
		return err
	}
	p.r.BeginTargetPass(write, transparent, false)
	blitErr := p.r.BlitCall(colorCorrectionPipelineKey, []bind_group_provider.BindGroupProvider{src})
	p.r.EndTargetPass()
	if blitErr != nil {
		return blitErr
	}

	p.setNeedsSwap(true)
	return nil
}

func (p *colorCorrectionPass) SetSize(int, int) {
	// The composer resizes the ping-pong buffers; only the cached source bind
	// groups reference their old views.
	p.sources.invalidate()
}

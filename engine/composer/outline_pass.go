package composer

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/assets"
	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/highlight"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/material"
	"github.com/prismatik/showroom/engine/renderer/pipeline"
	"github.com/prismatik/showroom/engine/renderer/render_target"
	"github.com/prismatik/showroom/engine/renderer/shader"
	"github.com/prismatik/showroom/engine/scene"
)

const (
	outlineMaskPipelineKey  = "outline_mask"
	outlineBlurPipelineKey  = "outline_blur"
	outlineCopyPipelineKey  = "outline_copy"
	compositeNormalKey      = "outline_composite"
	compositeMaskOnlyKey    = "outline_composite_mask"
	compositeBlurOnlyKey    = "outline_composite_blur"
)

// doubleVerticalBlur re-runs the vertical full-res blur a second time, reading
// the vertical result back into the horizontal target. Vertically pointed
// silhouette features (spoiler tips, antenna masts) leave stair-step artifacts
// after a single vertical pass; the second pass smooths them at the cost of one
// extra fullscreen blur per frame.
const doubleVerticalBlur = true

// OutputMode selects what the composite stage draws: the finished outline, the
// raw mask channels, or the soft blur texture. The debug modes skip the
// edge-difference blend entirely.
type OutputMode int

const (
	OutputNormal OutputMode = iota
	OutputMaskOnly
	OutputBlurOnly
)

// HighlightChannel identifies one of the two outline channels.
type HighlightChannel int

const (
	ChannelHover HighlightChannel = iota
	ChannelSelected
)

// ChannelStyle describes one highlight channel's appearance: a flat RGBA color
// and an optional pattern image scrolled along the outline instead.
type ChannelStyle struct {
	Color   [4]float32
	Pattern *common.ImportedTexture
}

// OutlineOptions configures the outline pass. Zero values fall back to the
// defaults from DefaultOutlineOptions.
type OutlineOptions struct {
	// EdgeThickness is the full-res blur kernel radius controlling how far the
	// sharp edge extends from the silhouette.
	EdgeThickness int

	// EdgeGlow is the half-res blur kernel radius controlling the soft falloff.
	EdgeGlow int

	// Downsample divides the viewport size when allocating the blur targets.
	Downsample int

	// StartU is the pattern scroll offset when animation is disabled or at the
	// start of each animation cycle.
	StartU float32

	// TileCount is how many times the pattern strip repeats across the screen.
	TileCount float32

	// Animate scrolls the pattern over time when true.
	Animate bool

	// AnimationInterval is the duration of one full scroll cycle.
	AnimationInterval time.Duration
}

// DefaultOutlineOptions returns the options the outline pass uses for any zero
// field: thin sharp edge, wide glow, half-resolution blur targets.
//
// Returns:
//   - OutlineOptions: the default configuration
func DefaultOutlineOptions() OutlineOptions {
	return OutlineOptions{
		EdgeThickness:     1,
		EdgeGlow:          4,
		Downsample:        2,
		TileCount:         1,
		AnimationInterval: time.Second,
	}
}

func (o OutlineOptions) withDefaults() OutlineOptions {
	def := DefaultOutlineOptions()
	if o.EdgeThickness < 1 {
		o.EdgeThickness = def.EdgeThickness
	}
	if o.EdgeGlow < 1 {
		o.EdgeGlow = def.EdgeGlow
	}
	if o.Downsample < 1 {
		o.Downsample = def.Downsample
	}
	if o.TileCount < 1 {
		o.TileCount = def.TileCount
	}
	if o.AnimationInterval <= 0 {
		o.AnimationInterval = def.AnimationInterval
	}
	return o
}

// outlinePass is the implementation of the OutlinePass interface.
type outlinePass struct {
	passState
	mu sync.Mutex

	r       renderer.Renderer
	scn     scene.Scene
	tracker highlight.Tracker

	opts OutlineOptions
	mode OutputMode

	// compositeKey selects which composite pipeline variant draws the overlay.
	compositeKey string

	maskTarget render_target.RenderTarget
	edgeH      render_target.RenderTarget
	edgeV      render_target.RenderTarget
	glowH      render_target.RenderTarget
	glowV      render_target.RenderTarget

	legs       []*blurLeg
	edgeResult render_target.RenderTarget

	hoverMask    material.MaskMaterial
	selectedMask material.MaskMaterial

	hoverChannel    material.ChannelTexture
	selectedChannel material.ChannelTexture
	hoverStyle      ChannelStyle
	selectedStyle   ChannelStyle
	decoder         material.PatternDecoder

	outlineProvider bind_group_provider.BindGroupProvider
	outlineLayout   wgpu.BindGroupLayoutDescriptor
	bindParams      int
	bindMask        int
	bindEdge        int
	bindGlow        int
	bindSampler     int

	params  material.GPUOutlineParams
	elapsed float32

	sources *sourceBindings
}

// OutlinePass draws colored, optionally animated outlines around highlighted
// parts: a two-channel silhouette mask, a sharp and a soft separable blur of
// it, and a composite overlay on top of the scene. When nothing is highlighted
// the pass is a pass-through and performs no GPU work.
type OutlinePass interface {
	Pass

	// ShouldRenderOutline reports whether the pass will do any work this frame.
	//
	// Returns:
	//   - bool: true if the pass is enabled and something is highlighted
	ShouldRenderOutline() bool

	// OutputMode returns the current composite mode.
	//
	// Returns:
	//   - OutputMode: the active mode
	OutputMode() OutputMode

	// SetOutputMode switches the composite pipeline variant. Setting the current
	// mode again is a no-op.
	//
	// Parameters:
	//   - mode: the mode to switch to
	SetOutputMode(mode OutputMode)

	// Options returns the current outline configuration.
	//
	// Returns:
	//   - OutlineOptions: the active options
	Options() OutlineOptions

	// SetOptions updates the scroll and animation configuration. EdgeThickness,
	// EdgeGlow, and Downsample are baked into the blur bind groups and targets at
	// construction and are NOT re-applied here; recreate the pass to change them.
	//
	// Parameters:
	//   - opts: the new options, zero fields falling back to defaults
	SetOptions(opts OutlineOptions)

	// SetColors assigns each channel's flat color and optional pattern. A pattern
	// decode failure leaves that channel's previous texture bound and is returned;
	// the other channel is still applied.
	//
	// Parameters:
	//   - hover: the hover channel style
	//   - selected: the selected channel style
	//
	// Returns:
	//   - error: the first pattern decode or upload failure, if any
	SetColors(hover, selected ChannelStyle) error

	// UpdateTexture re-decodes and re-uploads a channel's configured pattern, for
	// callers that mutated the underlying image source.
	//
	// Parameters:
	//   - channel: the channel to refresh
	//
	// Returns:
	//   - error: an error if the channel has no pattern or the upload fails
	UpdateTexture(channel HighlightChannel) error

	// Channel exposes a channel's texture for advanced wiring such as binding a
	// live render target with SetDynamic.
	//
	// Parameters:
	//   - channel: the channel to access
	//
	// Returns:
	//   - material.ChannelTexture: the channel's texture holder
	Channel(channel HighlightChannel) material.ChannelTexture
}

var _ OutlinePass = &outlinePass{}

// NewOutlinePass creates the outline pass with all five intermediate targets,
// the blur legs, and the mask/composite pipelines. Panics if GPU setup fails,
// consistent with the other pass constructors.
//
// Parameters:
//   - r: the renderer used for all GPU work
//   - scn: the scene whose parts are masked and outlined
//   - tracker: the highlight tracker consulted for the idle short-circuit
//   - width, height: the initial surface size in pixels
//   - opts: the outline configuration, zero fields falling back to defaults
//
// Returns:
//   - OutlinePass: the outline pass, enabled by default
func NewOutlinePass(r renderer.Renderer, scn scene.Scene, tracker highlight.Tracker, width, height int, opts OutlineOptions) OutlinePass {
	if r == nil || scn == nil || tracker == nil {
		panic("outline pass: renderer, scene, and tracker must not be nil")
	}

	p := &outlinePass{
		passState:    passState{label: "OutlinePass", enabled: true},
		r:            r,
		scn:          scn,
		tracker:      tracker,
		opts:         opts.withDefaults(),
		compositeKey: compositeNormalKey,
		decoder:      material.NewPatternDecoder(2),
	}
	p.params.HoverColor = [4]float32{1, 1, 1, 1}
	p.params.SelectedColor = [4]float32{1, 1, 1, 1}
	p.params.Scroll = [2]float32{p.opts.StartU, p.opts.TileCount}

	maskVert := shader.NewShaderFromSource("surface_vert", shader.ShaderTypeVertex, assets.SurfaceVertSource)
	maskFrag := shader.NewShaderFromSource("mask_frag", shader.ShaderTypeFragment, assets.MaskFragSource)
	fullscreenVert := shader.NewShaderFromSource("fullscreen_vert", shader.ShaderTypeVertex, assets.FullscreenVertSource)
	blurFrag := shader.NewShaderFromSource("blur_frag", shader.ShaderTypeFragment, assets.BlurFragSource)
	copyFrag := shader.NewShaderFromSource("copy_frag", shader.ShaderTypeFragment, assets.CopyFragSource)
	outlineFrag := shader.NewShaderFromSource("outline_frag", shader.ShaderTypeFragment, assets.OutlineFragSource)
	outlineMaskFrag := shader.NewShaderFromSource("outline_mask_frag", shader.ShaderTypeFragment, assets.OutlineMaskFragSource)
	outlineBlurFrag := shader.NewShaderFromSource("outline_blur_frag", shader.ShaderTypeFragment, assets.OutlineBlurFragSource)

	p.registerPipelines(maskVert, maskFrag, fullscreenVert, blurFrag, copyFrag, outlineFrag, outlineMaskFrag, outlineBlurFrag)

	p.createTargets(width, height)
	p.createBlurLegs(blurFrag.BindGroupLayoutDescriptor(0))
	p.createMaskMaterials(maskFrag)
	p.createComposite(outlineFrag)

	var err error
	p.sources, err = newSourceBindings(r, copyFrag.BindGroupLayoutDescriptor(0))
	if err != nil {
		panic(fmt.Sprintf("outline pass: %v", err))
	}

	p.hoverChannel, err = material.NewChannelTexture("Hover", r, outlineFrag.BindGroupLayoutDescriptor(1))
	if err != nil {
		panic(fmt.Sprintf("outline pass: %v", err))
	}
	p.selectedChannel, err = material.NewChannelTexture("Selected", r, outlineFrag.BindGroupLayoutDescriptor(2))
	if err != nil {
		panic(fmt.Sprintf("outline pass: %v", err))
	}

	p.writeParams()
	return p
}

func (p *outlinePass) registerPipelines(maskVert, maskFrag, fullscreenVert, blurFrag, copyFrag, outlineFrag, outlineMaskFrag, outlineBlurFrag shader.Shader) {
	// Mask draws accumulate: a part in both highlight layers lands in both
	// color channels.
	additive := &wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
	}
	// The composite emits premultiplied alpha so it overlays the copied scene.
	premultiplied := &wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha, Operation: wgpu.BlendOperationAdd},
	}

	composite := func(key string, frag shader.Shader) pipeline.Pipeline {
		return pipeline.NewPipeline(key,
			pipeline.WithVertexShader(fullscreenVert),
			pipeline.WithFragmentShader(frag),
			pipeline.WithColorFormat(targetFormat),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendEnabled(true),
			pipeline.WithBlendState(premultiplied),
		)
	}

	err := p.r.RegisterPipelines(
		pipeline.NewPipeline(outlineMaskPipelineKey,
			pipeline.WithVertexShader(maskVert),
			pipeline.WithFragmentShader(maskFrag),
			pipeline.WithColorFormat(targetFormat),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendEnabled(true),
			pipeline.WithBlendState(additive),
		),
		pipeline.NewPipeline(outlineBlurPipelineKey,
			pipeline.WithVertexShader(fullscreenVert),
			pipeline.WithFragmentShader(blurFrag),
			pipeline.WithColorFormat(targetFormat),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendEnabled(false),
		),
		pipeline.NewPipeline(outlineCopyPipelineKey,
			pipeline.WithVertexShader(fullscreenVert),
			pipeline.WithFragmentShader(copyFrag),
			pipeline.WithColorFormat(targetFormat),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendEnabled(false),
		),
		composite(compositeNormalKey, outlineFrag),
		composite(compositeMaskOnlyKey, outlineMaskFrag),
		composite(compositeBlurOnlyKey, outlineBlurFrag),
	)
	if err != nil {
		panic(fmt.Sprintf("outline pass: failed to register pipelines: %v", err))
	}
}

// scaledDim applies a downsample divisor with rounding, clamped to at least one texel.
func scaledDim(dim, divisor int) int {
	v := (dim + divisor/2) / divisor
	if v < 1 {
		v = 1
	}
	return v
}

func (p *outlinePass) createTargets(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	edgeW, edgeH := scaledDim(width, p.opts.Downsample), scaledDim(height, p.opts.Downsample)
	glowW, glowH := scaledDim(edgeW, 2), scaledDim(edgeH, 2)

	create := func(label string, w, h int) render_target.RenderTarget {
		t := render_target.NewRenderTarget(label)
		t.SetSize(uint32(w), uint32(h))
		if err := p.r.InitRenderTarget(t); err != nil {
			panic(fmt.Sprintf("outline pass: failed to create %s: %v", label, err))
		}
		return t
	}
	p.maskTarget = create("Outline Mask", width, height)
	p.edgeH = create("Outline Edge H", edgeW, edgeH)
	p.edgeV = create("Outline Edge V", edgeW, edgeH)
	p.glowH = create("Outline Glow H", glowW, glowH)
	p.glowV = create("Outline Glow V", glowW, glowH)
}

func (p *outlinePass) createBlurLegs(layout wgpu.BindGroupLayoutDescriptor) {
	horizontal := [2]float32{1, 0}
	vertical := [2]float32{0, 1}

	type legSpec struct {
		label        string
		source, dest render_target.RenderTarget
		direction    [2]float32
		radius       int
	}
	specs := []legSpec{
		{"Outline Blur Edge H", p.maskTarget, p.edgeH, horizontal, p.opts.EdgeThickness},
		{"Outline Blur Edge V", p.edgeH, p.edgeV, vertical, p.opts.EdgeThickness},
	}
	p.edgeResult = p.edgeV
	if doubleVerticalBlur {
		specs = append(specs, legSpec{"Outline Blur Edge V2", p.edgeV, p.edgeH, vertical, p.opts.EdgeThickness})
		p.edgeResult = p.edgeH
	}
	specs = append(specs,
		legSpec{"Outline Blur Glow H", p.maskTarget, p.glowH, horizontal, p.opts.EdgeGlow},
		legSpec{"Outline Blur Glow V", p.glowH, p.glowV, vertical, p.opts.EdgeGlow},
	)

	for _, spec := range specs {
		leg, err := newBlurLeg(p.r, layout, spec.label, spec.source, spec.dest, spec.direction, spec.radius)
		if err != nil {
			panic(fmt.Sprintf("outline pass: %v", err))
		}
		p.legs = append(p.legs, leg)
	}
}

func (p *outlinePass) createMaskMaterials(maskFrag shader.Shader) {
	// The mask fragment shader declares a single group: the mask color uniform.
	var layout wgpu.BindGroupLayoutDescriptor
	for _, d := range maskFrag.BindGroupLayoutDescriptors() {
		layout = d
	}
	uniformBinding := 0
	for _, entry := range layout.Entries {
		if entry.Texture.SampleType == wgpu.TextureSampleTypeUndefined && entry.Sampler.Type == wgpu.SamplerBindingTypeUndefined {
			uniformBinding = int(entry.Binding)
			break
		}
	}

	build := func(name string, color [4]float32) material.MaskMaterial {
		m := material.NewMaskMaterial(name, color)
		m.SetPipelineKey(outlineMaskPipelineKey)
		bgp := bind_group_provider.NewBindGroupProvider(name + " Mask")
		if err := p.r.InitBindGroup(bgp, layout, nil, nil); err != nil {
			panic(fmt.Sprintf("outline pass: failed to bind %s mask: %v", name, err))
		}
		params := material.GPUMaskParams{MaskColor: color}
		p.r.WriteBuffers([]bind_group_provider.BufferWrite{{
			Provider: bgp,
			Binding:  uniformBinding,
			Data:     params.Marshal(),
		}})
		m.SetBindGroupProvider(bgp)
		return m
	}
	p.hoverMask = build("Hover", [4]float32{1, 0, 0, 1})
	p.selectedMask = build("Selected", [4]float32{0, 1, 0, 1})
}

func (p *outlinePass) createComposite(outlineFrag shader.Shader) {
	p.outlineLayout = outlineFrag.BindGroupLayoutDescriptor(0)
	names := outlineFrag.BindGroupVarNames()[0]
	for _, entry := range p.outlineLayout.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			name := names[binding]
			switch {
			case strings.Contains(name, "mask"):
				p.bindMask = binding
			case strings.Contains(name, "edge"):
				p.bindEdge = binding
			case strings.Contains(name, "glow"):
				p.bindGlow = binding
			}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			p.bindSampler = binding
		default:
			p.bindParams = binding
		}
	}

	p.outlineProvider = bind_group_provider.NewBindGroupProvider("Outline Composite")
	if err := p.r.InitSampler(p.outlineProvider, p.bindSampler, common.SamplerStagingData{}); err != nil {
		panic(fmt.Sprintf("outline pass: failed to create composite sampler: %v", err))
	}
	if err := p.rebindComposite(); err != nil {
		panic(fmt.Sprintf("outline pass: %v", err))
	}
}

// rebindComposite repoints the composite bind group at the current target views.
// Called at construction and after every resize.
func (p *outlinePass) rebindComposite() error {
	p.outlineProvider.SetTextureView(p.bindMask, p.maskTarget.View())
	p.outlineProvider.SetTextureView(p.bindEdge, p.edgeResult.View())
	p.outlineProvider.SetTextureView(p.bindGlow, p.glowV.View())
	if err := p.r.InitBindGroup(p.outlineProvider, p.outlineLayout, nil, nil); err != nil {
		return fmt.Errorf("failed to bind composite: %w", err)
	}
	return nil
}

func (p *outlinePass) writeParams() {
	p.r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: p.outlineProvider,
		Binding:  p.bindParams,
		Data:     p.params.Marshal(),
	}})
}

func (p *outlinePass) ShouldRenderOutline() bool {
	return p.Enabled() && p.tracker.IsAnyHighlighted()
}

func (p *outlinePass) OutputMode() OutputMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *outlinePass) SetOutputMode(mode OutputMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if mode == p.mode {
		return
	}
	p.mode = mode
	switch mode {
	case OutputMaskOnly:
		p.compositeKey = compositeMaskOnlyKey
	case OutputBlurOnly:
		p.compositeKey = compositeBlurOnlyKey
	default:
		p.compositeKey = compositeNormalKey
	}
}

func (p *outlinePass) Options() OutlineOptions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts
}

func (p *outlinePass) SetOptions(opts OutlineOptions) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts = opts.withDefaults()
	p.params.Scroll = [2]float32{p.opts.StartU, p.opts.TileCount}
	if !p.opts.Animate {
		p.elapsed = 0
	}
}

func (p *outlinePass) SetColors(hover, selected ChannelStyle) error {
	// Decode both patterns on the worker pool before taking the lock; only the
	// GPU uploads run frame-synchronously.
	type decoded struct {
		staging common.TextureStagingData
		err     error
	}
	results := make([]decoded, 2)
	var wg sync.WaitGroup
	for i, style := range []ChannelStyle{hover, selected} {
		if style.Pattern == nil {
			continue
		}
		wg.Add(1)
		p.decoder.SubmitDecode(style.Pattern, func(staging common.TextureStagingData, err error) {
			results[i] = decoded{staging: staging, err: err}
			wg.Done()
		})
	}
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.params.HoverColor = hover.Color
	p.params.SelectedColor = selected.Color
	p.hoverStyle = hover
	p.selectedStyle = selected

	var firstErr error
	apply := func(style ChannelStyle, res decoded, channel material.ChannelTexture, usePattern *float32) {
		if style.Pattern == nil {
			*usePattern = 0
			return
		}
		err := res.err
		if err == nil {
			err = channel.SetStaticStrip(res.staging)
		}
		if err != nil {
			// Previous binding and pattern flag stay in place.
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		*usePattern = 1
	}
	apply(hover, results[0], p.hoverChannel, &p.params.UsePattern[0])
	apply(selected, results[1], p.selectedChannel, &p.params.UsePattern[1])

	p.writeParams()
	return firstErr
}

func (p *outlinePass) UpdateTexture(channel HighlightChannel) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var style ChannelStyle
	var tex material.ChannelTexture
	switch channel {
	case ChannelHover:
		style, tex = p.hoverStyle, p.hoverChannel
	case ChannelSelected:
		style, tex = p.selectedStyle, p.selectedChannel
	default:
		return fmt.Errorf("unknown highlight channel %d", channel)
	}
	if style.Pattern == nil {
		return fmt.Errorf("channel %d has no pattern configured", channel)
	}
	return tex.SetStatic(style.Pattern)
}

func (p *outlinePass) Channel(channel HighlightChannel) material.ChannelTexture {
	if channel == ChannelSelected {
		return p.selectedChannel
	}
	return p.hoverChannel
}

// advanceScroll steps the animation clock. Elapsed time wraps at the interval
// and is held at zero while animation is disabled so the pattern sits at StartU.
func (p *outlinePass) advanceScroll(deltaTime float32) {
	if !p.opts.Animate {
		p.elapsed = 0
		p.params.Scroll[0] = p.opts.StartU
		return
	}
	interval := float32(p.opts.AnimationInterval.Seconds())
	p.elapsed = math32.Mod(p.elapsed+deltaTime, interval)
	p.params.Scroll[0] = p.opts.StartU + p.opts.TileCount*(p.elapsed/interval)
}

func (p *outlinePass) Render(write, read render_target.RenderTarget, deltaTime float32) error {
	p.setNeedsSwap(false)

	// Idle short-circuit — the read buffer already holds the finished frame.
	if !p.ShouldRenderOutline() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	state := p.r.SaveState()
	defer p.r.RestoreState(state)

	p.advanceScroll(deltaTime)
	p.writeParams()

	// Mask pass: hovered silhouettes in red, selected in green, accumulating
	// additively so a part in both layers lands in both channels.
	p.r.BeginTargetPass(p.maskTarget, transparent, false)
	maskErr := p.scn.DrawParts(outlineMaskPipelineKey, common.LayerMask(common.LayerHover), p.hoverMask.BindGroupProvider())
	if err := p.scn.DrawParts(outlineMaskPipelineKey, common.LayerMask(common.LayerSelected), p.selectedMask.BindGroupProvider()); err != nil && maskErr == nil {
		maskErr = err
	}
	p.r.EndTargetPass()
	if maskErr != nil {
		return maskErr
	}

	for _, leg := range p.legs {
		if err := leg.render(outlineBlurPipelineKey); err != nil {
			return err
		}
	}

	// Copy the scene from the read buffer, then overlay the composite in the
	// same pass so blending handles the highlight on top.
	src, err := p.sources.provider(read)
	if err != nil {
		return err
	}
	p.r.BeginTargetPass(write, transparent, false)
	blitErr := p.r.BlitCall(outlineCopyPipelineKey, []bind_group_provider.BindGroupProvider{src})
	if blitErr == nil {
		blitErr = p.r.BlitCall(p.compositeKey, []bind_group_provider.BindGroupProvider{
			p.outlineProvider,
			p.hoverChannel.BindGroupProvider(),
			p.selectedChannel.BindGroupProvider(),
		})
	}
	p.r.EndTargetPass()
	if blitErr != nil {
		return blitErr
	}

	p.setNeedsSwap(true)
	return nil
}

func (p *outlinePass) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	edgeW, edgeH := scaledDim(width, p.opts.Downsample), scaledDim(height, p.opts.Downsample)
	glowW, glowH := scaledDim(edgeW, 2), scaledDim(edgeH, 2)

	resize := func(t render_target.RenderTarget, w, h int) bool {
		if err := p.r.ResizeRenderTarget(t, w, h); err != nil {
			log.Printf("[OutlinePass] failed to resize %s: %v", t.Label(), err)
			return false
		}
		return true
	}
	ok := resize(p.maskTarget, width, height)
	ok = resize(p.edgeH, edgeW, edgeH) && ok
	ok = resize(p.edgeV, edgeW, edgeH) && ok
	ok = resize(p.glowH, glowW, glowH) && ok
	ok = resize(p.glowV, glowW, glowH) && ok
	if !ok {
		return
	}

	for _, leg := range p.legs {
		if err := leg.rebind(); err != nil {
			log.Printf("[OutlinePass] %v", err)
		}
	}
	if err := p.rebindComposite(); err != nil {
		log.Printf("[OutlinePass] %v", err)
	}
	p.sources.invalidate()
}

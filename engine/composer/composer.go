// Package composer chains post-processing passes over a pair of ping-pong color
// buffers. Each frame the composer runs its passes in order: a pass reads the
// previous pass's output from the read buffer and renders into the write buffer,
// then the buffers swap if the pass produced new content. Terminal passes flagged
// render-to-screen run on the main surface pass instead and present the frame.
package composer

import (
	"fmt"
	"log"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// Pass is a single stage of the post-processing chain. Render receives the
// current write and read buffers; a pass samples read and draws into write.
// Passes flagged render-to-screen receive a nil write buffer and draw on the
// main surface pass instead.
type Pass interface {
	// Label returns the pass name used for logging.
	//
	// Returns:
	//   - string: the pass name
	Label() string

	// Render executes the pass for one frame.
	//
	// Parameters:
	//   - write: the buffer to render into, nil for render-to-screen passes
	//   - read: the previous pass's output
	//   - deltaTime: seconds elapsed since the previous frame
	//
	// Returns:
	//   - error: an error if the pass could not encode its work
	Render(write, read render_target.RenderTarget, deltaTime float32) error

	// SetSize notifies the pass that the drawing surface changed size so it can
	// resize any targets it owns. Zero or negative dimensions are ignored.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	SetSize(width, height int)

	// Enabled reports whether the composer should run this pass.
	//
	// Returns:
	//   - bool: true if the pass participates in the frame
	Enabled() bool

	// SetEnabled toggles the pass on or off.
	//
	// Parameters:
	//   - enabled: whether the pass should run
	SetEnabled(enabled bool)

	// NeedsSwap reports whether the pass wrote new content into the write buffer
	// during the last Render, requiring a read/write swap. Passes that skipped
	// their work return false so the read buffer stays current.
	//
	// Returns:
	//   - bool: true if the buffers must swap after this pass
	NeedsSwap() bool

	// RenderToScreen reports whether this pass draws on the main surface instead
	// of the offscreen buffers.
	//
	// Returns:
	//   - bool: true for terminal screen passes
	RenderToScreen() bool

	// SetRenderToScreen switches the pass between offscreen and surface output.
	//
	// Parameters:
	//   - enabled: true to draw on the main surface
	SetRenderToScreen(enabled bool)
}

// composerImpl is the implementation of the Composer interface.
type composerImpl struct {
	mu sync.Mutex

	r      renderer.Renderer
	passes []Pass

	read  render_target.RenderTarget
	write render_target.RenderTarget
}

// Composer owns the post-processing chain and its ping-pong buffers. A pass
// error is logged and that pass's contribution skipped; the frame never aborts.
type Composer interface {
	// AddPass appends a pass to the end of the chain.
	//
	// Parameters:
	//   - p: the pass to append
	AddPass(p Pass)

	// Passes returns the chain in execution order.
	//
	// Returns:
	//   - []Pass: the registered passes
	Passes() []Pass

	// ReadTarget returns the buffer holding the most recent completed pass output.
	//
	// Returns:
	//   - render_target.RenderTarget: the current read buffer
	ReadTarget() render_target.RenderTarget

	// Render executes the full chain for one frame: offscreen passes inside a
	// batched pass frame, then any render-to-screen passes on the surface pass,
	// ending with a present.
	//
	// Parameters:
	//   - deltaTime: seconds elapsed since the previous frame
	//
	// Returns:
	//   - error: an error if a frame could not be started
	Render(deltaTime float32) error

	// SetSize resizes the ping-pong buffers and notifies every pass. Zero or
	// negative dimensions are ignored.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	SetSize(width, height int)
}

var _ Composer = &composerImpl{}

// NewComposer creates a Composer with two initialized ping-pong buffers at the
// given size. Panics if the buffers cannot be created, consistent with the other
// GPU-backed constructors.
//
// Parameters:
//   - r: the renderer used for all GPU work
//   - width, height: the initial surface size in pixels
//
// Returns:
//   - Composer: a ready-to-use composer with an empty pass chain
func NewComposer(r renderer.Renderer, width, height int) Composer {
	if r == nil {
		panic("composer: renderer must not be nil")
	}
	c := &composerImpl{
		r:     r,
		read:  newBuffer(r, "Composer Buffer A", width, height),
		write: newBuffer(r, "Composer Buffer B", width, height),
	}
	return c
}

func newBuffer(r renderer.Renderer, label string, width, height int) render_target.RenderTarget {
	t := render_target.NewRenderTarget(label)
	t.SetSize(uint32(max(width, 1)), uint32(max(height, 1)))
	if err := r.InitRenderTarget(t); err != nil {
		panic(fmt.Sprintf("composer: failed to create %s: %v", label, err))
	}
	return t
}

func (c *composerImpl) AddPass(p Pass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passes = append(c.passes, p)
}

func (c *composerImpl) Passes() []Pass {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Pass, len(c.passes))
	copy(out, c.passes)
	return out
}

func (c *composerImpl) ReadTarget() render_target.RenderTarget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read
}

func (c *composerImpl) Render(deltaTime float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.r.BeginPassFrame(); err != nil {
		return err
	}

	var screenPasses []Pass
	for _, p := range c.passes {
		if !p.Enabled() {
			continue
		}
		if p.RenderToScreen() {
			screenPasses = append(screenPasses, p)
			continue
		}
		if err := p.Render(c.write, c.read, deltaTime); err != nil {
			log.Printf("[Composer] pass %s failed: %v", p.Label(), err)
			continue
		}
		if p.NeedsSwap() {
			c.read, c.write = c.write, c.read
		}
	}
	c.r.EndPassFrame()

	if len(screenPasses) == 0 {
		return nil
	}
	if err := c.r.BeginFrame(); err != nil {
		return err
	}
	for _, p := range screenPasses {
		if err := p.Render(nil, c.read, deltaTime); err != nil {
			log.Printf("[Composer] pass %s failed: %v", p.Label(), err)
		}
	}
	c.r.EndFrame()
	c.r.Present()
	return nil
}

func (c *composerImpl) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.r.ResizeRenderTarget(c.read, width, height); err != nil {
		log.Printf("[Composer] failed to resize %s: %v", c.read.Label(), err)
	}
	if err := c.r.ResizeRenderTarget(c.write, width, height); err != nil {
		log.Printf("[Composer] failed to resize %s: %v", c.write.Label(), err)
	}
	for _, p := range c.passes {
		p.SetSize(width, height)
	}
}

// targetFormat is the color format shared by every offscreen buffer in the chain.
const targetFormat = wgpu.TextureFormatRGBA8Unorm

// transparent is the clear color for intermediate targets. Alpha zero keeps
// overlay blends from picking up uncovered texels.
var transparent = wgpu.Color{R: 0, G: 0, B: 0, A: 0}

// Package render_target provides offscreen color attachments for the multi-pass
// compositing pipeline. A RenderTarget is the CPU-side holder for a GPU texture that
// passes render into and later sample from: the mask target, the blur ping-pong
// targets, and the composer's color buffers are all RenderTargets.
//
// Like BindGroupProvider, a RenderTarget is created empty and populated by the
// Renderer: InitRenderTarget creates the texture and view for the current size,
// ResizeRenderTarget recreates them when the drawing surface changes.
package render_target

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// renderTarget is the unexported implementation of RenderTarget.
type renderTarget struct {
	// label is a debug label used for the GPU texture and error reporting.
	label string

	// width and height are the current texture dimensions in pixels.
	width, height uint32

	// format is the color format of the texture.
	format wgpu.TextureFormat

	// depth enables an accompanying depth texture for targets that render 3D
	// geometry (the scene color buffer). Post-process targets leave it off.
	depth bool

	// texture and view are GPU resources populated by the Renderer, nil until initialized.
	texture *wgpu.Texture
	view    *wgpu.TextureView

	// depthTexture and depthView are only populated when depth is enabled.
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
}

// RenderTarget defines the interface for an offscreen color attachment. Passes render
// into the target's view and downstream passes sample from it through a bind group.
type RenderTarget interface {
	// Label returns the debug label for this target.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Width returns the current texture width in pixels.
	//
	// Returns:
	//   - uint32: the width in pixels
	Width() uint32

	// Height returns the current texture height in pixels.
	//
	// Returns:
	//   - uint32: the height in pixels
	Height() uint32

	// Format returns the color format of the target's texture.
	//
	// Returns:
	//   - wgpu.TextureFormat: the texture format
	Format() wgpu.TextureFormat

	// Texture returns the GPU texture, or nil if the target has not been initialized.
	//
	// Returns:
	//   - *wgpu.Texture: the texture or nil
	Texture() *wgpu.Texture

	// View returns the GPU texture view, or nil if the target has not been initialized.
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	View() *wgpu.TextureView

	// DepthEnabled reports whether this target carries a depth attachment.
	//
	// Returns:
	//   - bool: true if a depth texture accompanies the color texture
	DepthEnabled() bool

	// DepthView returns the depth texture view, or nil if depth is disabled or the
	// target has not been initialized.
	//
	// Returns:
	//   - *wgpu.TextureView: the depth texture view or nil
	DepthView() *wgpu.TextureView

	// SetSize records new texture dimensions. Called by the Renderer before recreating
	// the GPU texture during a resize; does not touch GPU resources itself.
	//
	// Parameters:
	//   - width, height: the new dimensions in pixels
	SetSize(width, height uint32)

	// SetTexture stores the GPU texture after creation by the Renderer.
	//
	// Parameters:
	//   - t: the created texture
	SetTexture(t *wgpu.Texture)

	// SetView stores the GPU texture view after creation by the Renderer.
	//
	// Parameters:
	//   - v: the created texture view
	SetView(v *wgpu.TextureView)

	// SetDepthTexture stores the depth texture after creation by the Renderer.
	//
	// Parameters:
	//   - t: the created depth texture
	SetDepthTexture(t *wgpu.Texture)

	// SetDepthView stores the depth texture view after creation by the Renderer.
	//
	// Parameters:
	//   - v: the created depth texture view
	SetDepthView(v *wgpu.TextureView)

	// Release releases the GPU texture and view held by this target.
	Release()
}

var _ RenderTarget = &renderTarget{}

// NewRenderTarget creates a new RenderTarget with the provided options. The target
// holds no GPU resources until initialized via Renderer.InitRenderTarget.
//
// Parameters:
//   - label: a debug label for this target
//   - options: a variadic list of options to configure the target
//
// Returns:
//   - RenderTarget: a new RenderTarget configured with the provided options
func NewRenderTarget(label string, options ...RenderTargetOption) RenderTarget {
	t := &renderTarget{
		label:  label,
		format: wgpu.TextureFormatRGBA8Unorm,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *renderTarget) Label() string {
	return t.label
}

func (t *renderTarget) Width() uint32 {
	return t.width
}

func (t *renderTarget) Height() uint32 {
	return t.height
}

func (t *renderTarget) Format() wgpu.TextureFormat {
	return t.format
}

func (t *renderTarget) Texture() *wgpu.Texture {
	return t.texture
}

func (t *renderTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *renderTarget) DepthEnabled() bool {
	return t.depth
}

func (t *renderTarget) DepthView() *wgpu.TextureView {
	return t.depthView
}

func (t *renderTarget) SetSize(width, height uint32) {
	t.width = width
	t.height = height
}

func (t *renderTarget) SetTexture(tex *wgpu.Texture) {
	t.texture = tex
}

func (t *renderTarget) SetView(v *wgpu.TextureView) {
	t.view = v
}

func (t *renderTarget) SetDepthTexture(tex *wgpu.Texture) {
	t.depthTexture = tex
}

func (t *renderTarget) SetDepthView(v *wgpu.TextureView) {
	t.depthView = v
}

func (t *renderTarget) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
	if t.depthView != nil {
		t.depthView.Release()
		t.depthView = nil
	}
	if t.depthTexture != nil {
		t.depthTexture.Release()
		t.depthTexture = nil
	}
}

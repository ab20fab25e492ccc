package render_target

import "github.com/cogentcore/webgpu/wgpu"

// RenderTargetOption is a functional option used to configure a RenderTarget during construction.
type RenderTargetOption func(*renderTarget)

// WithFormat sets the color format for this target.
//
// Parameters:
//   - format: the texture format to use
//
// Returns:
//   - RenderTargetOption: a function that sets the format for this target
func WithFormat(format wgpu.TextureFormat) RenderTargetOption {
	return func(t *renderTarget) {
		t.format = format
	}
}

// WithDepth enables a depth attachment for this target. Targets that render 3D
// geometry need one for correct occlusion; post-process targets do not.
//
// Returns:
//   - RenderTargetOption: a function that enables depth for this target
func WithDepth() RenderTargetOption {
	return func(t *renderTarget) {
		t.depth = true
	}
}

// WithSize sets the initial texture dimensions for this target.
//
// Parameters:
//   - width, height: the dimensions in pixels
//
// Returns:
//   - RenderTargetOption: a function that sets the size for this target
func WithSize(width, height uint32) RenderTargetOption {
	return func(t *renderTarget) {
		t.width = width
		t.height = height
	}
}

package scene

import (
	"github.com/prismatik/showroom/engine/renderer/shader"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithParts registers the given parts with the scene at construction time.
// GPU resources for each part are initialized during NewScene; a failure
// panics the way other construction-time GPU failures do.
//
// Parameters:
//   - parts: the parts to register
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParts(parts ...Part) SceneBuilderOption {
	return func(s *scene) {
		s.pendingParts = append(s.pendingParts, parts...)
	}
}

// WithSurfaceFragmentShader sets the fragment shader whose surface parameter
// group layout is used to initialize material bind groups during part
// registration. Without it, materials must arrive with bind groups already
// initialized.
//
// Parameters:
//   - frag: the product surface fragment shader
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSurfaceFragmentShader(frag shader.Shader) SceneBuilderOption {
	return func(s *scene) {
		s.surfaceFragmentShader = frag
	}
}

// WithCullingDisabled disables frustum culling for the scene. Parts are drawn
// whenever their layers match, regardless of camera visibility.
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled() SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = true
	}
}

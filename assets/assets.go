// Package assets embeds the WGSL shader sources for the showroom's render and
// post-process pipelines. Sources carry @sr: annotations and are handed to
// shader.NewShaderFromSource at startup.
package assets

import _ "embed"

// SurfaceVertSource is the product surface vertex stage, shared by the scene
// pass and the silhouette mask pass.
//
//go:embed shaders/surface_vert.wgsl
var SurfaceVertSource string

// SurfaceFragSource is the product surface fragment stage.
//
//go:embed shaders/surface_frag.wgsl
var SurfaceFragSource string

// MaskFragSource is the silhouette mask fragment stage used by the outline
// pass's mask sub-pass.
//
//go:embed shaders/mask_frag.wgsl
var MaskFragSource string

// FullscreenVertSource is the shared fullscreen-triangle vertex stage for all
// post-process pipelines.
//
//go:embed shaders/fullscreen_vert.wgsl
var FullscreenVertSource string

// BlurFragSource is the separable Gaussian blur fragment stage.
//
//go:embed shaders/blur_frag.wgsl
var BlurFragSource string

// OutlineFragSource is the outline composite fragment stage (normal output mode).
//
//go:embed shaders/outline_frag.wgsl
var OutlineFragSource string

// OutlineMaskFragSource is the outline composite debug stage showing the raw
// silhouette mask.
//
//go:embed shaders/outline_mask_frag.wgsl
var OutlineMaskFragSource string

// OutlineBlurFragSource is the outline composite debug stage showing the
// combined blurred silhouettes.
//
//go:embed shaders/outline_blur_frag.wgsl
var OutlineBlurFragSource string

// CopyFragSource is the plain texture copy fragment stage.
//
//go:embed shaders/copy_frag.wgsl
var CopyFragSource string

// ColorCorrectionFragSource is the linear-to-sRGB color correction fragment stage.
//
//go:embed shaders/color_correction_frag.wgsl
var ColorCorrectionFragSource string

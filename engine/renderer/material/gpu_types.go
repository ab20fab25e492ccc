package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUSurfaceParamsSource is the canonical WGSL definition of the SurfaceParams struct.
// Matches GPUSurfaceParams layout exactly (32 bytes, std430 aligned).
//
//go:embed assets/surface_params.wgsl
var GPUSurfaceParamsSource string

// GPUSurfaceParams is the GPU-aligned uniform for the product surface fragment shader.
// Matches the WGSL SurfaceParams struct layout exactly (see GPUSurfaceParamsSource).
// Size: 32 bytes (two vec4<f32>, std430 aligned).
type GPUSurfaceParams struct {
	BaseColor [4]float32 // offset  0: RGBA albedo color (16 bytes)
	Surface   [4]float32 // offset 16: x = metallic, y = roughness, z/w unused (16 bytes)
}

// Size returns the size of the GPUSurfaceParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUSurfaceParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSurfaceParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUSurfaceParams) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Surface[i]))
	}
	return buf
}

// GPUMaskParamsSource is the canonical WGSL definition of the MaskParams struct.
// Matches GPUMaskParams layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/mask_params.wgsl
var GPUMaskParamsSource string

// GPUMaskParams is the GPU-aligned uniform for the silhouette mask fragment shader.
// Every fragment of a masked part is written with this flat color.
// Matches the WGSL MaskParams struct layout exactly (see GPUMaskParamsSource).
// Size: 16 bytes (one vec4<f32>, std430 aligned).
type GPUMaskParams struct {
	MaskColor [4]float32 // offset 0: RGBA mask color written to all fragments (16 bytes)
}

// Size returns the size of the GPUMaskParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaskParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaskParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUMaskParams) Marshal() []byte {
	buf := make([]byte, 16)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.MaskColor[i]))
	}
	return buf
}

// GPUBlurParamsSource is the canonical WGSL definition of the BlurParams struct.
// Matches GPUBlurParams layout exactly (96 bytes, std430 aligned).
//
//go:embed assets/blur_params.wgsl
var GPUBlurParamsSource string

// MaxBlurTaps is the maximum number of kernel taps a single separable blur pass
// supports. The WGSL weights array is sized to hold exactly this many weights
// packed four to a vec4.
const MaxBlurTaps = 16

// GPUBlurParams is the GPU-aligned uniform for the separable blur fragment shader.
// Direction selects the blur axis for the pass: (1, 0) for horizontal, (0, 1) for
// vertical. Weights holds the normalized one-sided Gaussian kernel packed as
// array<vec4<f32>, 4> on the WGSL side; only the first KernelRadius+1 entries are read.
// Matches the WGSL BlurParams struct layout exactly (see GPUBlurParamsSource).
// Size: 96 bytes (std430 aligned).
type GPUBlurParams struct {
	TexelSize    [2]float32             // offset  0: 1/width, 1/height of the source texture (8 bytes)
	Direction    [2]float32             // offset  8: blur axis, (1,0) or (0,1) (8 bytes)
	KernelRadius uint32                 // offset 16: number of taps on each side of center (4 bytes)
	_pad         [3]uint32              // offset 20: padding to align weights at 32 (12 bytes)
	Weights      [MaxBlurTaps]float32   // offset 32: one-sided kernel weights, center first (64 bytes)
}

// Size returns the size of the GPUBlurParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUBlurParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUBlurParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUBlurParams) Marshal() []byte {
	buf := make([]byte, 96)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Direction[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Direction[1]))
	binary.LittleEndian.PutUint32(buf[16:20], g.KernelRadius)
	for i := range MaxBlurTaps {
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(g.Weights[i]))
	}
	return buf
}

// GPUOutlineParamsSource is the canonical WGSL definition of the OutlineParams struct.
// Matches GPUOutlineParams layout exactly (48 bytes, std430 aligned).
//
//go:embed assets/outline_params.wgsl
var GPUOutlineParamsSource string

// GPUOutlineParams is the GPU-aligned uniform for the outline composite fragment shader.
// Scroll packs the pattern scroll state: x is the current U offset, y is the pattern
// tile count across the outline. UsePattern packs per-channel pattern enables as
// 0.0/1.0 floats: x for the hover channel, y for the selected channel.
// Matches the WGSL OutlineParams struct layout exactly (see GPUOutlineParamsSource).
// Size: 48 bytes (std430 aligned).
type GPUOutlineParams struct {
	HoverColor    [4]float32 // offset  0: RGBA outline color for the hover channel (16 bytes)
	SelectedColor [4]float32 // offset 16: RGBA outline color for the selected channel (16 bytes)
	Scroll        [2]float32 // offset 32: x = scroll U offset, y = pattern tile count (8 bytes)
	UsePattern    [2]float32 // offset 40: x = hover pattern enabled, y = selected pattern enabled (8 bytes)
}

// Size returns the size of the GPUOutlineParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUOutlineParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUOutlineParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUOutlineParams) Marshal() []byte {
	buf := make([]byte, 48)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.HoverColor[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.SelectedColor[i]))
	}
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Scroll[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Scroll[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.UsePattern[0]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.UsePattern[1]))
	return buf
}

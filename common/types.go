// Package common holds the plain data types shared across the showroom engine:
// layer bitsets, GPU staging payloads, image sources, and small matrix helpers.
// Nothing here wraps an interface; these are passed by value between packages.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU
// upload, such as a decoded pattern strip or a material texture.
type TextureStagingData struct {
	// Pixels is the raw pixel data in RGBA order, 4 bytes per pixel.
	Pixels []byte

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU
// creation. Zero values fall back to linear filtering with repeat addressing,
// which is what the outline pattern sampler wants.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW control texture coordinate
	// wrapping outside [0, 1] per dimension.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode

	// MagFilter and MinFilter control magnification and minification filtering.
	MagFilter, MinFilter wgpu.FilterMode

	// MipmapFilter controls mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode

	// LodMinClamp and LodMaxClamp bound the level of detail for mipmapping.
	LodMinClamp, LodMaxClamp float32

	// Compare is the comparison function for comparison samplers.
	Compare wgpu.CompareFunction

	// MaxAnisotropy caps anisotropic filtering.
	MaxAnisotropy uint16
}

// ImportedTexture is a user-supplied image source: a pattern strip for the
// outline pass or a material texture. Either the raw bytes are embedded in
// Data or the image is read from Path at decode time.
type ImportedTexture struct {
	// Name identifies the texture in errors and debug labels.
	Name string

	// Path is the image file path. Ignored when Data is set.
	Path string

	// Data holds raw PNG or JPEG bytes.
	Data []byte

	// Width is the image width in pixels, populated after Decode.
	Width int

	// Height is the image height in pixels, populated after Decode.
	Height int
}

// Decode decodes the image to raw RGBA pixel data, reading from Data when
// present and from Path otherwise. PNG and JPEG are supported.
//
// Returns:
//   - []byte: raw RGBA pixel data, 4 bytes per pixel, row-major
//   - uint32: image width in pixels
//   - uint32: image height in pixels
//   - error: an error if no source is set or decoding fails
func (t *ImportedTexture) Decode() ([]byte, uint32, uint32, error) {
	if t == nil {
		return nil, 0, 0, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	case t.Path != "":
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return nil, 0, 0, fmt.Errorf("texture has neither data nor path")
	}

	bounds := img.Bounds()
	t.Width = bounds.Dx()
	t.Height = bounds.Dy()

	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return rgba.Pix, uint32(t.Width), uint32(t.Height), nil
}

package material_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/renderer/material"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePatternStripResamplesToFixedSize(t *testing.T) {
	tex := &common.ImportedTexture{
		Name: "dashes",
		Data: solidPNG(t, 8, 4, color.RGBA{R: 255, A: 255}),
	}

	staging, err := material.DecodePatternStrip(tex)
	require.NoError(t, err)

	assert.Equal(t, uint32(material.PatternStripWidth), staging.Width)
	assert.Equal(t, uint32(material.PatternStripHeight), staging.Height)
	assert.Len(t, staging.Pixels, material.PatternStripWidth*material.PatternStripHeight*4)

	// A solid source stays solid through the resample.
	assert.Equal(t, uint8(255), staging.Pixels[0], "red channel")
	assert.Equal(t, uint8(0), staging.Pixels[1], "green channel")
	assert.Equal(t, uint8(255), staging.Pixels[3], "alpha channel")
}

func TestDecodePatternStripRejectsGarbage(t *testing.T) {
	tex := &common.ImportedTexture{Name: "broken", Data: []byte("not an image")}

	_, err := material.DecodePatternStrip(tex)
	assert.Error(t, err)
}

func TestDecodePatternStripRejectsMissingSource(t *testing.T) {
	_, err := material.DecodePatternStrip(&common.ImportedTexture{Name: "empty"})
	assert.Error(t, err)
}

func TestPatternDecoderDeliversResultOffThread(t *testing.T) {
	dec := material.NewPatternDecoder(1)
	tex := &common.ImportedTexture{
		Name: "stripes",
		Data: solidPNG(t, 16, 8, color.RGBA{B: 255, A: 255}),
	}

	type result struct {
		staging common.TextureStagingData
		err     error
	}
	done := make(chan result, 1)
	dec.SubmitDecode(tex, func(staging common.TextureStagingData, err error) {
		done <- result{staging, err}
	})

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, uint32(material.PatternStripWidth), res.staging.Width)
		assert.Equal(t, uint32(material.PatternStripHeight), res.staging.Height)
	case <-time.After(5 * time.Second):
		t.Fatal("decode callback never fired")
	}
}

func TestPatternDecoderReportsDecodeError(t *testing.T) {
	dec := material.NewPatternDecoder(1)

	done := make(chan error, 1)
	dec.SubmitDecode(&common.ImportedTexture{Name: "bad", Data: []byte{0x00}}, func(_ common.TextureStagingData, err error) {
		done <- err
	})

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("decode callback never fired")
	}
}

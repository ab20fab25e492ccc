// pattern.go handles outline pattern strips: small tileable textures scrolled along
// the outline by the composite shader. User-supplied images are decoded and resampled
// to a fixed strip size so the scroll math in the shader stays resolution-independent.
package material

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	xdraw "golang.org/x/image/draw"

	"github.com/prismatik/showroom/common"
)

// Pattern strips are always resampled to this fixed size. The width gives enough
// horizontal resolution for one tile; the composite shader repeats it along the
// outline by tile count.
const (
	PatternStripWidth  = 256
	PatternStripHeight = 16
)

// DecodePatternStrip decodes a pattern image and resamples it to the fixed
// PatternStripWidth x PatternStripHeight RGBA strip. Resampling uses Catmull-Rom
// interpolation so thin pattern features survive the downscale.
//
// Parameters:
//   - tex: the pattern image source (embedded bytes or file path)
//
// Returns:
//   - common.TextureStagingData: the resampled RGBA strip ready for GPU upload
//   - error: an error if the image cannot be decoded
func DecodePatternStrip(tex *common.ImportedTexture) (common.TextureStagingData, error) {
	pixels, width, height, err := tex.Decode()
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode pattern image: %w", err)
	}

	src := &image.RGBA{
		Pix:    pixels,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	dst := image.NewRGBA(image.Rect(0, 0, PatternStripWidth, PatternStripHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return common.TextureStagingData{
		Pixels: dst.Pix,
		Width:  PatternStripWidth,
		Height: PatternStripHeight,
	}, nil
}

// patternDecoder is the implementation of the PatternDecoder interface.
type patternDecoder struct {
	pool   worker.DynamicWorkerPool
	taskID atomic.Int64
}

// PatternDecoder decodes pattern strips on a bounded worker pool so large user images
// never stall the render thread. Completion callbacks run on a worker goroutine; the
// caller is responsible for handing results back to the render thread.
type PatternDecoder interface {
	// SubmitDecode queues a pattern image for decoding. The done callback receives
	// the resampled strip, or the decode error with a zero staging value. It is
	// invoked from a worker goroutine.
	//
	// Parameters:
	//   - tex: the pattern image source to decode
	//   - done: callback receiving the decoded strip or the error
	SubmitDecode(tex *common.ImportedTexture, done func(common.TextureStagingData, error))
}

var _ PatternDecoder = &patternDecoder{}

// NewPatternDecoder creates a PatternDecoder backed by a dynamic worker pool.
// Pattern updates are rare relative to frames, so the pool sizes small and lets
// idle workers exit.
//
// Parameters:
//   - workers: the maximum number of concurrent decode workers (minimum 1)
//
// Returns:
//   - PatternDecoder: a ready-to-use decoder
func NewPatternDecoder(workers int) PatternDecoder {
	if workers < 1 {
		workers = 1
	}
	return &patternDecoder{
		pool: worker.NewDynamicWorkerPool(workers, 16, 1*time.Second),
	}
}

func (d *patternDecoder) SubmitDecode(tex *common.ImportedTexture, done func(common.TextureStagingData, error)) {
	id := d.taskID.Add(1)
	d.pool.SubmitTask(worker.Task{
		ID: int(id),
		Do: func() (any, error) {
			staging, err := DecodePatternStrip(tex)
			done(staging, err)
			return nil, nil
		},
	})
}

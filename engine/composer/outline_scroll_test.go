package composer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// scrollFixture builds a bare pass with just the state advanceScroll touches.
func scrollFixture(opts OutlineOptions) *outlinePass {
	p := &outlinePass{opts: opts.withDefaults()}
	p.params.Scroll = [2]float32{p.opts.StartU, p.opts.TileCount}
	return p
}

func TestAdvanceScrollHalfCycle(t *testing.T) {
	p := scrollFixture(OutlineOptions{
		Animate:           true,
		TileCount:         2,
		AnimationInterval: 60 * time.Second,
	})

	p.advanceScroll(30)

	assert.InDelta(t, 1.0, p.params.Scroll[0], 1e-5, "half the interval scrolls half the tiles")
}

func TestAdvanceScrollWrapsAtInterval(t *testing.T) {
	p := scrollFixture(OutlineOptions{
		Animate:           true,
		TileCount:         2,
		AnimationInterval: 60 * time.Second,
	})

	p.advanceScroll(30)
	p.advanceScroll(30)

	assert.InDelta(t, 0, p.elapsed, 1e-5)
	assert.InDelta(t, 0, p.params.Scroll[0], 1e-5, "a full interval wraps back to the start")
}

func TestAdvanceScrollOffsetsFromStartU(t *testing.T) {
	p := scrollFixture(OutlineOptions{
		Animate:           true,
		StartU:            0.25,
		TileCount:         2,
		AnimationInterval: 60 * time.Second,
	})

	p.advanceScroll(15)

	assert.InDelta(t, 0.75, p.params.Scroll[0], 1e-5)
}

func TestAdvanceScrollDisabledHoldsStartU(t *testing.T) {
	p := scrollFixture(OutlineOptions{
		StartU:            0.4,
		TileCount:         2,
		AnimationInterval: 60 * time.Second,
	})
	// Stale clock state from a previous animated stretch.
	p.elapsed = 10
	p.params.Scroll[0] = 0.9

	p.advanceScroll(5)

	assert.Zero(t, p.elapsed)
	assert.InDelta(t, 0.4, p.params.Scroll[0], 1e-5, "disabled animation pins the pattern at StartU")
}

func TestOutlineOptionsClampTileCount(t *testing.T) {
	opts := OutlineOptions{TileCount: -3}.withDefaults()
	assert.Equal(t, float32(1), opts.TileCount, "negative tile counts fall back to the default")

	opts = OutlineOptions{TileCount: 0.25}.withDefaults()
	assert.Equal(t, float32(1), opts.TileCount, "tile counts below one fall back to the default")

	opts = OutlineOptions{TileCount: 3}.withDefaults()
	assert.Equal(t, float32(3), opts.TileCount)
}

package composer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/engine/composer"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

// fakePass records the buffers it was handed each frame.
type fakePass struct {
	label          string
	enabled        bool
	renderToScreen bool
	needsSwap      bool
	renderErr      error

	writes []string
	reads  []string
}

var _ composer.Pass = &fakePass{}

func newFakePass(label string) *fakePass {
	return &fakePass{label: label, enabled: true, needsSwap: true}
}

func (p *fakePass) Label() string { return p.label }

func (p *fakePass) Render(write, read render_target.RenderTarget, _ float32) error {
	if write != nil {
		p.writes = append(p.writes, write.Label())
	} else {
		p.writes = append(p.writes, "<screen>")
	}
	if read != nil {
		p.reads = append(p.reads, read.Label())
	}
	return p.renderErr
}

func (p *fakePass) SetSize(width, height int)     {}
func (p *fakePass) Enabled() bool                 { return p.enabled }
func (p *fakePass) SetEnabled(enabled bool)       { p.enabled = enabled }
func (p *fakePass) NeedsSwap() bool               { return p.needsSwap }
func (p *fakePass) RenderToScreen() bool          { return p.renderToScreen }
func (p *fakePass) SetRenderToScreen(enabled bool) { p.renderToScreen = enabled }

func TestComposerSwapsBuffersAfterProducingPass(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)

	first := newFakePass("first")
	second := newFakePass("second")
	c.AddPass(first)
	c.AddPass(second)

	require.NoError(t, c.Render(0.016))

	// The first pass writes into B while A is read; after the swap the second
	// pass reads the first pass's output.
	require.Len(t, first.writes, 1)
	require.Len(t, second.writes, 1)
	assert.Equal(t, "Composer Buffer B", first.writes[0])
	assert.Equal(t, "Composer Buffer A", first.reads[0])
	assert.Equal(t, "Composer Buffer A", second.writes[0])
	assert.Equal(t, "Composer Buffer B", second.reads[0])
	assert.Equal(t, "Composer Buffer A", c.ReadTarget().Label())
}

func TestComposerThreadsPassOutputsInChainOrder(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)

	// The canonical chain: scene, color correction, outline, screen copy. Each
	// producing pass must read exactly what the previous pass wrote.
	sceneStage := newFakePass("scene")
	correction := newFakePass("correction")
	outline := newFakePass("outline")
	screenCopy := newFakePass("copy")
	screenCopy.SetRenderToScreen(true)
	c.AddPass(sceneStage)
	c.AddPass(correction)
	c.AddPass(outline)
	c.AddPass(screenCopy)

	require.NoError(t, c.Render(0.016))

	assert.Equal(t, sceneStage.writes[0], correction.reads[0], "correction reads the scene output")
	assert.Equal(t, correction.writes[0], outline.reads[0], "outline reads the corrected scene")
	assert.Equal(t, outline.writes[0], screenCopy.reads[0], "screen copy reads the outlined frame")
}

func TestComposerPassErrorSkipsSwap(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)

	failing := newFakePass("failing")
	failing.renderErr = errors.New("encode failed")
	after := newFakePass("after")
	c.AddPass(failing)
	c.AddPass(after)

	require.NoError(t, c.Render(0.016))

	// The failing pass's output is discarded: the next pass still reads A.
	assert.Equal(t, "Composer Buffer A", after.reads[0])
	assert.Equal(t, "Composer Buffer B", after.writes[0])
}

func TestComposerSkipsDisabledPass(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)

	disabled := newFakePass("disabled")
	disabled.SetEnabled(false)
	c.AddPass(disabled)

	require.NoError(t, c.Render(0.016))
	assert.Empty(t, disabled.writes)
}

func TestComposerScreenPassRunsOnSurface(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)

	offscreen := newFakePass("offscreen")
	screen := newFakePass("screen")
	screen.SetRenderToScreen(true)
	c.AddPass(offscreen)
	c.AddPass(screen)

	require.NoError(t, c.Render(0.016))

	// The screen pass gets no write buffer and sees the final read buffer.
	require.Len(t, screen.writes, 1)
	assert.Equal(t, "<screen>", screen.writes[0])
	assert.Equal(t, "Composer Buffer B", screen.reads[0])

	assert.Equal(t, 1, r.count("BeginFrame"))
	assert.Equal(t, 1, r.count("EndFrame"))
	assert.Equal(t, 1, r.count("Present"))
}

func TestComposerWithoutScreenPassSkipsSurfaceFrame(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)
	c.AddPass(newFakePass("offscreen"))

	require.NoError(t, c.Render(0.016))

	assert.Equal(t, 0, r.count("BeginFrame"))
	assert.Equal(t, 0, r.count("Present"))
	assert.Equal(t, 1, r.count("BeginPassFrame"))
	assert.Equal(t, 1, r.count("EndPassFrame"))
}

func TestComposerSetSizeIgnoresZeroDimensions(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)
	r.resetCalls()

	c.SetSize(0, 480)
	c.SetSize(640, -1)

	for _, call := range r.recorded() {
		assert.NotContains(t, call, "ResizeRenderTarget")
	}
}

func TestComposerSetSizeResizesBuffersAndPasses(t *testing.T) {
	r := newFakeRenderer()
	c := composer.NewComposer(r, 640, 480)
	c.AddPass(newFakePass("pass"))
	r.resetCalls()

	c.SetSize(800, 600)

	assert.Contains(t, r.recorded(), "ResizeRenderTarget Composer Buffer A 800x600")
	assert.Contains(t, r.recorded(), "ResizeRenderTarget Composer Buffer B 800x600")
}

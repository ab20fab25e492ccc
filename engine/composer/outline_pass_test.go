package composer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/camera"
	"github.com/prismatik/showroom/engine/composer"
	"github.com/prismatik/showroom/engine/highlight"
	"github.com/prismatik/showroom/engine/renderer"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/render_target"
	"github.com/prismatik/showroom/engine/scene"
)

type sceneDraw struct {
	key       string
	mask      common.Layers
	overrides int
}

// fakeScene satisfies scene.Scene and records DrawParts invocations.
type fakeScene struct {
	cam      camera.Camera
	draws    []sceneDraw
	drawErr  error
	prepared int
}

var _ scene.Scene = &fakeScene{}

func (s *fakeScene) Name() string                               { return "fake" }
func (s *fakeScene) SetName(string)                             {}
func (s *fakeScene) Active() bool                               { return true }
func (s *fakeScene) SetActive(bool)                             {}
func (s *fakeScene) Camera() camera.Camera                      { return s.cam }
func (s *fakeScene) SetCamera(camera.Camera)                    {}
func (s *fakeScene) Renderer() renderer.Renderer                { return nil }
func (s *fakeScene) SetRenderer(renderer.Renderer)              {}
func (s *fakeScene) CullingDisabled() bool                      { return false }
func (s *fakeScene) SetCullingDisabled(bool)                    {}
func (s *fakeScene) AddPart(p scene.Part) (uint64, error)       { return 0, nil }
func (s *fakeScene) Part(uint64) scene.Part                     { return nil }
func (s *fakeScene) Parts() []scene.Part                        { return nil }
func (s *fakeScene) RemovePart(uint64)                          {}
func (s *fakeScene) SetProduct([]scene.Part) error              { return nil }
func (s *fakeScene) GroupParts(string) []scene.Part             { return nil }
func (s *fakeScene) SetGroupLayer(group string, index int, enabled bool) {}
func (s *fakeScene) SetPartLayer(uint64, int, bool)             {}
func (s *fakeScene) Prepare()                                   { s.prepared++ }

func (s *fakeScene) DrawParts(key string, mask common.Layers, overrides ...bind_group_provider.BindGroupProvider) error {
	s.draws = append(s.draws, sceneDraw{key: key, mask: mask, overrides: len(overrides)})
	return s.drawErr
}

func newOutlineFixture(t *testing.T) (*fakeRenderer, *fakeScene, highlight.Tracker, composer.OutlinePass, render_target.RenderTarget, render_target.RenderTarget) {
	t.Helper()
	r := newFakeRenderer()
	scn := &fakeScene{}
	tracker := highlight.NewTracker(scn)
	pass := composer.NewOutlinePass(r, scn, tracker, 640, 480, composer.DefaultOutlineOptions())

	read := render_target.NewRenderTarget("Read")
	read.SetSize(640, 480)
	require.NoError(t, r.InitRenderTarget(read))
	write := render_target.NewRenderTarget("Write")
	write.SetSize(640, 480)
	require.NoError(t, r.InitRenderTarget(write))

	r.resetCalls()
	return r, scn, tracker, pass, write, read
}

func TestOutlinePassIdleSkipsAllWork(t *testing.T) {
	r, scn, _, pass, write, read := newOutlineFixture(t)

	assert.False(t, pass.ShouldRenderOutline())
	require.NoError(t, pass.Render(write, read, 0.016))

	assert.False(t, pass.NeedsSwap())
	assert.Empty(t, scn.draws)
	for _, call := range r.recorded() {
		assert.NotContains(t, call, "BeginTargetPass")
	}
}

func TestOutlinePassActiveRendersMaskBlurAndComposite(t *testing.T) {
	r, scn, tracker, pass, write, read := newOutlineFixture(t)

	tracker.OnSelect(scene.NewPart("body"))
	assert.True(t, pass.ShouldRenderOutline())

	require.NoError(t, pass.Render(write, read, 0.016))
	assert.True(t, pass.NeedsSwap())

	// One mask draw per highlight channel, each with an override material.
	require.Len(t, scn.draws, 2)
	assert.Equal(t, common.LayerMask(common.LayerHover), scn.draws[0].mask)
	assert.Equal(t, common.LayerMask(common.LayerSelected), scn.draws[1].mask)
	assert.Equal(t, 1, scn.draws[0].overrides)

	calls := r.recorded()
	assert.Contains(t, calls, "BeginTargetPass Outline Mask")
	assert.Contains(t, calls, "BeginTargetPass Outline Edge H")
	assert.Contains(t, calls, "BeginTargetPass Outline Glow V")
	assert.Contains(t, calls, "BeginTargetPass Write")
	assert.Contains(t, calls, "BlitCall outline_composite")
}

func TestOutlinePassRestoresStateAroundRender(t *testing.T) {
	r, _, tracker, pass, write, read := newOutlineFixture(t)
	tracker.OnSelect(scene.NewPart("body"))

	require.NoError(t, pass.Render(write, read, 0.016))

	assert.Equal(t, 1, r.count("SaveState"))
	assert.Equal(t, 1, r.count("RestoreState"))
}

func TestOutlinePassRestoresStateAfterDrawError(t *testing.T) {
	r, scn, tracker, pass, write, read := newOutlineFixture(t)
	tracker.OnSelect(scene.NewPart("body"))
	scn.drawErr = errors.New("draw failed")

	err := pass.Render(write, read, 0.016)
	require.Error(t, err)
	assert.False(t, pass.NeedsSwap())
	assert.Equal(t, 1, r.count("RestoreState"))
}

func TestOutlinePassOutputModeSwitchesCompositePipeline(t *testing.T) {
	r, _, tracker, pass, write, read := newOutlineFixture(t)
	tracker.OnSelect(scene.NewPart("body"))

	pass.SetOutputMode(composer.OutputMaskOnly)
	assert.Equal(t, composer.OutputMaskOnly, pass.OutputMode())

	// Setting the same mode again is a no-op.
	pass.SetOutputMode(composer.OutputMaskOnly)
	assert.Equal(t, composer.OutputMaskOnly, pass.OutputMode())

	require.NoError(t, pass.Render(write, read, 0.016))
	assert.Contains(t, r.recorded(), "BlitCall outline_composite_mask")

	pass.SetOutputMode(composer.OutputNormal)
	r.resetCalls()
	require.NoError(t, pass.Render(write, read, 0.016))
	assert.Contains(t, r.recorded(), "BlitCall outline_composite")
}

func TestOutlinePassSetSizeScalesTargets(t *testing.T) {
	r, _, _, pass, _, _ := newOutlineFixture(t)

	pass.SetSize(800, 600)

	calls := r.recorded()
	assert.Contains(t, calls, "ResizeRenderTarget Outline Mask 800x600")
	assert.Contains(t, calls, "ResizeRenderTarget Outline Edge H 400x300")
	assert.Contains(t, calls, "ResizeRenderTarget Outline Edge V 400x300")
	assert.Contains(t, calls, "ResizeRenderTarget Outline Glow H 200x150")
	assert.Contains(t, calls, "ResizeRenderTarget Outline Glow V 200x150")
}

func TestOutlinePassSetSizeRejectsZero(t *testing.T) {
	r, _, _, pass, _, _ := newOutlineFixture(t)

	pass.SetSize(0, 600)
	pass.SetSize(800, -10)

	for _, call := range r.recorded() {
		assert.NotContains(t, call, "ResizeRenderTarget")
	}
}

func TestOutlinePassSetColorsFlat(t *testing.T) {
	_, _, _, pass, _, _ := newOutlineFixture(t)

	err := pass.SetColors(
		composer.ChannelStyle{Color: [4]float32{1, 0.5, 0, 1}},
		composer.ChannelStyle{Color: [4]float32{0, 0.5, 1, 1}},
	)
	require.NoError(t, err)
}

func TestDefaultOutlineOptions(t *testing.T) {
	opts := composer.DefaultOutlineOptions()
	assert.Equal(t, 1, opts.EdgeThickness)
	assert.Equal(t, 4, opts.EdgeGlow)
	assert.Equal(t, 2, opts.Downsample)
	assert.Equal(t, float32(1), opts.TileCount)
	assert.False(t, opts.Animate)
}

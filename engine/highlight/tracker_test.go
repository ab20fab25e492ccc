package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/highlight"
	"github.com/prismatik/showroom/engine/scene"
)

// fakeToggler flips group layers across a fixed set of parts, standing in for
// the scene's atomic group toggle.
type fakeToggler struct {
	parts []scene.Part
}

func (f *fakeToggler) SetGroupLayer(group string, index int, enabled bool) {
	for _, p := range f.parts {
		if p.Group() != group {
			continue
		}
		if enabled {
			p.EnableLayer(index)
		} else {
			p.DisableLayer(index)
		}
	}
}

func TestTrackerHoverTogglesHoverLayer(t *testing.T) {
	p := scene.NewPart("body")
	tr := highlight.NewTracker(&fakeToggler{})

	tr.OnPointerEnter(p)
	assert.True(t, p.Layers().Test(common.LayerHover))
	assert.True(t, tr.IsAnyHighlighted())

	tr.OnPointerLeave(p)
	assert.False(t, p.Layers().Test(common.LayerHover))
	assert.False(t, tr.IsAnyHighlighted())
}

func TestTrackerHoverAppliesToGroupSiblings(t *testing.T) {
	left := scene.NewPart("wheel-left", scene.WithGroup("wheels"))
	right := scene.NewPart("wheel-right", scene.WithGroup("wheels"))
	other := scene.NewPart("body")
	tr := highlight.NewTracker(&fakeToggler{parts: []scene.Part{left, right, other}})

	tr.OnPointerEnter(left)
	assert.True(t, left.Layers().Test(common.LayerHover))
	assert.True(t, right.Layers().Test(common.LayerHover), "group sibling should hover too")
	assert.False(t, other.Layers().Test(common.LayerHover))

	tr.OnPointerLeave(left)
	assert.False(t, left.Layers().Test(common.LayerHover))
	assert.False(t, right.Layers().Test(common.LayerHover))
}

func TestTrackerSelectSuppressesHover(t *testing.T) {
	p := scene.NewPart("body")
	tr := highlight.NewTracker(&fakeToggler{})

	tr.OnPointerEnter(p)
	tr.OnSelect(p)

	assert.True(t, p.Layers().Test(common.LayerSelected))
	assert.False(t, p.Layers().Test(common.LayerHover), "selection should suppress the hover layer")
	require.NotNil(t, tr.Hovered(), "hover reference survives suppression")

	tr.OnDeselect()
	assert.False(t, p.Layers().Test(common.LayerSelected))
	assert.True(t, p.Layers().Test(common.LayerHover), "deselect should restore the hover layer")
}

func TestTrackerHoverWhileSelectedAppliesNoLayer(t *testing.T) {
	p := scene.NewPart("body")
	tr := highlight.NewTracker(&fakeToggler{})

	tr.OnSelect(p)
	tr.OnPointerEnter(p)

	assert.False(t, p.Layers().Test(common.LayerHover))
	assert.Equal(t, p, tr.Hovered())
}

func TestTrackerSelectingNewPartReleasesPrevious(t *testing.T) {
	a := scene.NewPart("seat")
	b := scene.NewPart("frame")
	tr := highlight.NewTracker(&fakeToggler{})

	tr.OnSelect(a)
	tr.OnSelect(b)

	assert.False(t, a.Layers().Test(common.LayerSelected))
	assert.True(t, b.Layers().Test(common.LayerSelected))
	assert.Equal(t, b, tr.Selected())
}

func TestTrackerReselectRestoresHoverOnPrevious(t *testing.T) {
	a := scene.NewPart("seat")
	b := scene.NewPart("frame")
	tr := highlight.NewTracker(&fakeToggler{})

	// Hover a, select it (hover suppressed), then select b: a should get its
	// hover layer back since the pointer is still over it.
	tr.OnPointerEnter(a)
	tr.OnSelect(a)
	tr.OnSelect(b)

	assert.True(t, a.Layers().Test(common.LayerHover))
	assert.False(t, a.Layers().Test(common.LayerSelected))
	assert.True(t, b.Layers().Test(common.LayerSelected))
}

func TestTrackerGroupOverlapSuppressesHover(t *testing.T) {
	left := scene.NewPart("wheel-left", scene.WithGroup("wheels"))
	right := scene.NewPart("wheel-right", scene.WithGroup("wheels"))
	tr := highlight.NewTracker(&fakeToggler{parts: []scene.Part{left, right}})

	// Hovering one wheel and selecting the other overlaps through the group.
	tr.OnPointerEnter(left)
	tr.OnSelect(right)

	assert.True(t, left.Layers().Test(common.LayerSelected))
	assert.True(t, right.Layers().Test(common.LayerSelected))
	assert.False(t, left.Layers().Test(common.LayerHover), "group overlap should suppress hover")
	assert.False(t, right.Layers().Test(common.LayerHover))
}

func TestTrackerDeselectWithoutSelectionIsNoOp(t *testing.T) {
	tr := highlight.NewTracker(&fakeToggler{})
	tr.OnDeselect()
	assert.False(t, tr.IsAnyHighlighted())
}

func TestTrackerReset(t *testing.T) {
	a := scene.NewPart("seat")
	b := scene.NewPart("frame")
	tr := highlight.NewTracker(&fakeToggler{})

	tr.OnPointerEnter(a)
	tr.OnSelect(b)
	tr.Reset()

	assert.False(t, a.Layers().Test(common.LayerHover))
	assert.False(t, b.Layers().Test(common.LayerSelected))
	assert.False(t, tr.IsAnyHighlighted())
	assert.Nil(t, tr.Hovered())
	assert.Nil(t, tr.Selected())
}

func TestTrackerPointerLeaveOtherPartKeepsHover(t *testing.T) {
	a := scene.NewPart("seat")
	b := scene.NewPart("frame")
	tr := highlight.NewTracker(&fakeToggler{})

	tr.OnPointerEnter(a)
	tr.OnPointerLeave(b)

	assert.True(t, a.Layers().Test(common.LayerHover))
	assert.Equal(t, a, tr.Hovered())
}

// Package highlight tracks pointer hover and selection state over scene parts
// and drives their highlight layer bits. Layer 1 carries hover, layer 2
// carries selection, and selection always wins when both land on the same
// part or highlight group.
package highlight

import (
	"sync"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/scene"
)

// LayerToggler flips a highlight layer bit on every member of a highlight
// group as one atomic unit. scene.Scene satisfies it; tests substitute fakes.
type LayerToggler interface {
	// SetGroupLayer toggles a layer bit on every part in the given highlight group.
	//
	// Parameters:
	//   - group: the highlight group id
	//   - index: the layer index to toggle
	//   - enabled: true to enable the layer, false to disable
	SetGroupLayer(group string, index int, enabled bool)
}

// tracker is the implementation of the Tracker interface.
type tracker struct {
	mu *sync.Mutex

	layers LayerToggler

	hovered  scene.Part
	selected scene.Part
}

// Tracker maintains the hovered and selected part references and keeps their
// highlight layers consistent. A part and its group siblings highlight as a
// unit; selecting a part suppresses its hover highlight until deselection.
type Tracker interface {
	// OnPointerEnter records the part as hovered and enables the hover layer
	// on it and its group siblings, unless the part overlaps the current
	// selection — then the hover reference is recorded but no hover layer is
	// applied.
	//
	// Parameters:
	//   - p: the part the pointer entered
	OnPointerEnter(p scene.Part)

	// OnPointerLeave disables the hover layer on the part and its group
	// siblings and clears the hovered reference when it overlaps the part.
	//
	// Parameters:
	//   - p: the part the pointer left
	OnPointerLeave(p scene.Part)

	// OnSelect makes the part the current selection. A previously selected
	// part loses its selection layer first, regaining its hover layer if it is
	// still the hovered part. The new selection gains the selection layer and
	// loses any hover layer it carried.
	//
	// Parameters:
	//   - p: the part to select
	OnSelect(p scene.Part)

	// OnDeselect clears the current selection and its selection layer. If the
	// deselected part overlaps the hovered part, the hover layer is re-enabled.
	OnDeselect()

	// IsAnyHighlighted reports whether anything is hovered or selected. Render
	// passes use this to skip all highlight work on idle frames.
	//
	// Returns:
	//   - bool: true if a hovered or selected part is set
	IsAnyHighlighted() bool

	// Hovered returns the currently hovered part, or nil.
	//
	// Returns:
	//   - scene.Part: the hovered part
	Hovered() scene.Part

	// Selected returns the currently selected part, or nil.
	//
	// Returns:
	//   - scene.Part: the selected part
	Selected() scene.Part

	// Reset clears both highlight layers and drops the hovered and selected
	// references, e.g. when the product is swapped.
	Reset()
}

var _ Tracker = &tracker{}

// NewTracker creates a Tracker that flips highlight layers through the given
// toggler.
//
// Parameters:
//   - layers: the layer toggler, typically the scene holding the parts
//
// Returns:
//   - Tracker: a new Tracker instance
func NewTracker(layers LayerToggler) Tracker {
	return &tracker{
		mu:     &sync.Mutex{},
		layers: layers,
	}
}

// overlaps reports whether two parts highlight as a unit: the same part, or
// members of the same non-empty group. Membership is symmetric and does not
// chase transitive group links.
func overlaps(a, b scene.Part) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	return a.Group() != "" && a.Group() == b.Group()
}

// setLayer toggles a layer on the part and its group siblings as one unit.
// Grouped parts go through the toggler so the group flips atomically against
// in-flight draws; ungrouped parts flip their own bit.
func (t *tracker) setLayer(p scene.Part, index int, enabled bool) {
	if p == nil {
		return
	}
	if group := p.Group(); group != "" && t.layers != nil {
		t.layers.SetGroupLayer(group, index, enabled)
		return
	}
	if enabled {
		p.EnableLayer(index)
	} else {
		p.DisableLayer(index)
	}
}

func (t *tracker) OnPointerEnter(p scene.Part) {
	if p == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hovered = p
	if overlaps(p, t.selected) {
		// Selection wins — record the hover but leave the layer alone.
		return
	}
	t.setLayer(p, common.LayerHover, true)
}

func (t *tracker) OnPointerLeave(p scene.Part) {
	if p == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setLayer(p, common.LayerHover, false)
	if overlaps(p, t.hovered) {
		t.hovered = nil
	}
}

func (t *tracker) OnSelect(p scene.Part) {
	if p == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.selected != nil && t.selected != p {
		t.setLayer(t.selected, common.LayerSelected, false)
		if overlaps(t.selected, t.hovered) {
			t.setLayer(t.hovered, common.LayerHover, true)
		}
	}

	t.selected = p
	t.setLayer(p, common.LayerSelected, true)
	if overlaps(p, t.hovered) {
		// Selection suppresses the hover highlight on the same unit.
		t.setLayer(p, common.LayerHover, false)
	}
}

func (t *tracker) OnDeselect() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.selected == nil {
		return
	}
	t.setLayer(t.selected, common.LayerSelected, false)
	if overlaps(t.selected, t.hovered) {
		t.setLayer(t.hovered, common.LayerHover, true)
	}
	t.selected = nil
}

func (t *tracker) IsAnyHighlighted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hovered != nil || t.selected != nil
}

func (t *tracker) Hovered() scene.Part {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hovered
}

func (t *tracker) Selected() scene.Part {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

func (t *tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setLayer(t.hovered, common.LayerHover, false)
	t.setLayer(t.selected, common.LayerSelected, false)
	t.hovered = nil
	t.selected = nil
}

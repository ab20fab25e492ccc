package common

// Layer indices used by the highlight pipeline. Every part starts on
// LayerDefault; the highlight tracker toggles LayerHover and LayerSelected.
const (
	LayerDefault  = 0
	LayerHover    = 1
	LayerSelected = 2
)

// Layers is a 32-bit layer membership bitset carried by scene parts and
// cameras. A part is drawn by a pass when its Layers intersect the camera's
// layer mask.
type Layers uint32

// LayerMask builds a Layers value with exactly the given layer indices set.
//
// Parameters:
//   - indices: layer indices in [0, 31]
//
// Returns:
//   - Layers: bitset with the given layers enabled
func LayerMask(indices ...int) Layers {
	var l Layers
	for _, i := range indices {
		l |= 1 << uint(i)
	}
	return l
}

// Enable sets the bit for the given layer index.
//
// Parameters:
//   - index: layer index in [0, 31]
func (l *Layers) Enable(index int) {
	*l |= 1 << uint(index)
}

// Disable clears the bit for the given layer index.
//
// Parameters:
//   - index: layer index in [0, 31]
func (l *Layers) Disable(index int) {
	*l &^= 1 << uint(index)
}

// Test reports whether the given layer index is enabled.
//
// Parameters:
//   - index: layer index in [0, 31]
//
// Returns:
//   - bool: true if the layer bit is set
func (l Layers) Test(index int) bool {
	return l&(1<<uint(index)) != 0
}

// Intersects reports whether any layer is enabled in both bitsets.
//
// Parameters:
//   - other: the bitset to intersect with
//
// Returns:
//   - bool: true if the bitsets share at least one layer
func (l Layers) Intersects(other Layers) bool {
	return l&other != 0
}

package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prismatik/showroom/common"
)

func TestLayerMaskSetsExactlyGivenIndices(t *testing.T) {
	m := common.LayerMask(common.LayerHover, common.LayerSelected)

	assert.True(t, m.Test(common.LayerHover))
	assert.True(t, m.Test(common.LayerSelected))
	assert.False(t, m.Test(common.LayerDefault))
}

func TestLayersEnableDisable(t *testing.T) {
	var l common.Layers

	l.Enable(common.LayerDefault)
	l.Enable(common.LayerHover)
	assert.True(t, l.Test(common.LayerDefault))
	assert.True(t, l.Test(common.LayerHover))

	l.Disable(common.LayerHover)
	assert.False(t, l.Test(common.LayerHover))
	assert.True(t, l.Test(common.LayerDefault), "disable only clears its own bit")
}

func TestLayersIntersects(t *testing.T) {
	part := common.LayerMask(common.LayerDefault, common.LayerHover)

	assert.True(t, part.Intersects(common.LayerMask(common.LayerHover)))
	assert.False(t, part.Intersects(common.LayerMask(common.LayerSelected)))
	assert.False(t, part.Intersects(0), "empty mask matches nothing")
}

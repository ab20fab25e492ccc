package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/assets"
	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/camera"
	"github.com/prismatik/showroom/engine/mesh"
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
	"github.com/prismatik/showroom/engine/renderer/material"
	"github.com/prismatik/showroom/engine/renderer/shader"
	"github.com/prismatik/showroom/engine/scene"
)

func newTestScene(t *testing.T) (scene.Scene, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	cam := camera.NewCamera(
		camera.WithAspect(16.0/9.0),
		camera.WithController(camera.NewOrbitController(
			camera.WithRadius(8),
			camera.WithTarget(0, 0, 0),
		)),
	)
	vert := shader.NewShaderFromSource("surface_vert", shader.ShaderTypeVertex, assets.SurfaceVertSource)
	frag := shader.NewShaderFromSource("surface_frag", shader.ShaderTypeFragment, assets.SurfaceFragSource)
	scn := scene.NewScene("test", cam, r, vert,
		scene.WithSurfaceFragmentShader(frag),
		scene.WithActive(true),
	)
	// Draw-call assertions should not depend on camera placement.
	scn.SetCullingDisabled(true)
	return scn, r
}

func testPart(name, group string) scene.Part {
	options := []scene.PartBuilderOption{
		scene.WithMesh(mesh.NewBoxMesh(name, 1, 1, 1)),
		scene.WithMaterial(material.NewMaterial(
			material.WithName(name),
			material.WithBaseColor([4]float32{1, 1, 1, 1}),
			material.WithPipelineKey("surface"),
		)),
	}
	if group != "" {
		options = append(options, scene.WithGroup(group))
	}
	return scene.NewPart(name, options...)
}

func TestDrawPartsUsesMaterialPipelines(t *testing.T) {
	scn, r := newTestScene(t)
	_, err := scn.AddPart(testPart("body", ""))
	require.NoError(t, err)
	_, err = scn.AddPart(testPart("cabin", ""))
	require.NoError(t, err)

	require.NoError(t, scn.DrawParts("", common.LayerMask(common.LayerDefault)))

	draws := r.recordedDraws()
	require.Len(t, draws, 2)
	for _, d := range draws {
		assert.Equal(t, "surface", d.key)
		// camera + model + material bind groups
		assert.Equal(t, 3, d.groups)
	}
}

func TestDrawPartsFiltersByLayerMask(t *testing.T) {
	scn, r := newTestScene(t)
	hoveredID, err := scn.AddPart(testPart("body", ""))
	require.NoError(t, err)
	_, err = scn.AddPart(testPart("cabin", ""))
	require.NoError(t, err)

	scn.SetPartLayer(hoveredID, common.LayerHover, true)

	override := bind_group_provider.NewBindGroupProvider("Hover Mask")
	require.NoError(t, scn.DrawParts("outline_mask", common.LayerMask(common.LayerHover), override))

	draws := r.recordedDraws()
	require.Len(t, draws, 1)
	assert.Equal(t, "outline_mask", draws[0].key)
	// camera + model + override bind groups
	assert.Equal(t, 3, draws[0].groups)
}

func TestDrawPartsEmptyMaskDrawsNothing(t *testing.T) {
	scn, r := newTestScene(t)
	_, err := scn.AddPart(testPart("body", ""))
	require.NoError(t, err)

	require.NoError(t, scn.DrawParts("outline_mask", common.LayerMask(common.LayerSelected)))
	assert.Empty(t, r.recordedDraws())
}

func TestSetProductReplacesParts(t *testing.T) {
	scn, _ := newTestScene(t)
	_, err := scn.AddPart(testPart("old", ""))
	require.NoError(t, err)

	require.NoError(t, scn.SetProduct([]scene.Part{
		testPart("body", ""),
		testPart("wheel-fl", "wheels"),
	}))

	parts := scn.Parts()
	require.Len(t, parts, 2)
	assert.Equal(t, "body", parts[0].Name())
	assert.Equal(t, "wheel-fl", parts[1].Name())
}

func TestSetProductFailureKeepsPreviousProduct(t *testing.T) {
	scn, _ := newTestScene(t)
	require.NoError(t, scn.SetProduct([]scene.Part{testPart("body", "")}))

	// A part without a mesh cannot init its GPU resources.
	broken := scene.NewPart("broken")
	err := scn.SetProduct([]scene.Part{testPart("cabin", ""), broken})
	require.Error(t, err)

	parts := scn.Parts()
	require.Len(t, parts, 1)
	assert.Equal(t, "body", parts[0].Name())
}

func TestSetGroupLayerTogglesAllMembers(t *testing.T) {
	scn, _ := newTestScene(t)
	require.NoError(t, scn.SetProduct([]scene.Part{
		testPart("wheel-fl", "wheels"),
		testPart("wheel-fr", "wheels"),
		testPart("body", ""),
	}))

	scn.SetGroupLayer("wheels", common.LayerHover, true)

	parts := scn.Parts()
	assert.True(t, parts[0].Layers().Test(common.LayerHover))
	assert.True(t, parts[1].Layers().Test(common.LayerHover))
	assert.False(t, parts[2].Layers().Test(common.LayerHover))

	scn.SetGroupLayer("wheels", common.LayerHover, false)
	assert.False(t, parts[0].Layers().Test(common.LayerHover))
	assert.False(t, parts[1].Layers().Test(common.LayerHover))
}

func TestGroupPartsReturnsOnlyMembers(t *testing.T) {
	scn, _ := newTestScene(t)
	require.NoError(t, scn.SetProduct([]scene.Part{
		testPart("wheel-fl", "wheels"),
		testPart("mirror-l", "mirrors"),
		testPart("wheel-fr", "wheels"),
	}))

	wheels := scn.GroupParts("wheels")
	require.Len(t, wheels, 2)
	assert.Equal(t, "wheel-fl", wheels[0].Name())
	assert.Equal(t, "wheel-fr", wheels[1].Name())
}

func TestPrepareUploadsCameraAndModelUniforms(t *testing.T) {
	scn, r := newTestScene(t)
	require.NoError(t, scn.SetProduct([]scene.Part{
		testPart("body", ""),
		testPart("cabin", ""),
	}))

	scn.Prepare()

	writes := r.recordedWrites()
	require.Len(t, writes, 1)
	// camera uniform + one model uniform per part in a single batch
	assert.Equal(t, 3, writes[0])
}

func TestRemovePartDropsItFromDraws(t *testing.T) {
	scn, r := newTestScene(t)
	id, err := scn.AddPart(testPart("body", ""))
	require.NoError(t, err)

	scn.RemovePart(id)

	require.NoError(t, scn.DrawParts("", common.LayerMask(common.LayerDefault)))
	assert.Empty(t, r.recordedDraws())
	assert.Empty(t, scn.Parts())
}

package composer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismatik/showroom/common"
	"github.com/prismatik/showroom/engine/camera"
	"github.com/prismatik/showroom/engine/composer"
	"github.com/prismatik/showroom/engine/renderer/render_target"
)

func newScenePassFixture(t *testing.T) (*fakeRenderer, *fakeScene, composer.Pass, render_target.RenderTarget) {
	t.Helper()
	r := newFakeRenderer()
	scn := &fakeScene{cam: camera.NewCamera()}
	pass := composer.NewScenePass(r, scn, 640, 480)

	write := render_target.NewRenderTarget("Write")
	write.SetSize(640, 480)
	require.NoError(t, r.InitRenderTarget(write))

	r.resetCalls()
	return r, scn, pass, write
}

func TestScenePassDrawsWithCameraLayerMask(t *testing.T) {
	_, scn, pass, write := newScenePassFixture(t)
	scn.cam.SetLayerMask(common.LayerMask(common.LayerDefault, common.LayerSelected))

	require.NoError(t, pass.Render(write, nil, 0.016))

	assert.Equal(t, 1, scn.prepared)
	require.Len(t, scn.draws, 1)
	assert.Equal(t, "", scn.draws[0].key, "materials pick their own pipelines")
	assert.Equal(t, scn.cam.LayerMask(), scn.draws[0].mask)
}

func TestScenePassDefaultCameraMaskDrawsDefaultLayer(t *testing.T) {
	_, scn, pass, write := newScenePassFixture(t)

	require.NoError(t, pass.Render(write, nil, 0.016))

	require.Len(t, scn.draws, 1)
	assert.Equal(t, common.LayerMask(common.LayerDefault), scn.draws[0].mask)
}

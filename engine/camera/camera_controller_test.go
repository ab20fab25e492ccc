package camera_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prismatik/showroom/engine/camera"
)

func TestControllerPositionFromSphericalCoords(t *testing.T) {
	cc := camera.NewOrbitController(
		camera.WithRadius(5),
		camera.WithTarget(0, 1, 0),
		camera.WithAzimuth(0),
		camera.WithElevation(0),
	)

	// Azimuth 0, elevation 0 places the camera straight down the +Z axis.
	x, y, z := cc.Position()
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 1, y, 1e-5)
	assert.InDelta(t, 5, z, 1e-5)
}

func TestControllerZoomClampsToRadiusBounds(t *testing.T) {
	cc := camera.NewOrbitController(
		camera.WithRadius(5),
		camera.WithRadiusBounds(2, 10),
		camera.WithZoomSpeed(1),
	)

	cc.Zoom(100)
	assert.InDelta(t, 2, cc.Radius(), 1e-5, "zooming in stops at min radius")

	cc.Zoom(-100)
	assert.InDelta(t, 10, cc.Radius(), 1e-5, "zooming out stops at max radius")
}

func TestControllerSetElevationClamps(t *testing.T) {
	cc := camera.NewOrbitController(camera.WithElevationBounds(0.1, 1.0))

	cc.SetElevation(5)
	assert.InDelta(t, 1.0, cc.Elevation(), 1e-5)

	cc.SetElevation(-5)
	assert.InDelta(t, 0.1, cc.Elevation(), 1e-5)
}

func TestControllerOrbitStepsAzimuth(t *testing.T) {
	cc := camera.NewOrbitController(camera.WithAzimuth(0), camera.WithOrbitSpeed(0.1))

	cc.OrbitRight()
	assert.InDelta(t, 0.1, cc.Azimuth(), 1e-5)

	cc.OrbitLeft()
	cc.OrbitLeft()
	assert.InDelta(t, -0.1, cc.Azimuth(), 1e-5)
}

func TestControllerOrbitUpClampsToMaxElevation(t *testing.T) {
	cc := camera.NewOrbitController(
		camera.WithElevation(0.4),
		camera.WithElevationBounds(0.1, 0.5),
		camera.WithOrbitSpeed(1),
	)

	cc.OrbitUp()
	assert.InDelta(t, 0.5, cc.Elevation(), 1e-5)

	cc.OrbitDown()
	cc.OrbitDown()
	assert.InDelta(t, 0.1, cc.Elevation(), 1e-5)
}

func TestControllerPanPreservesOrbitOffset(t *testing.T) {
	cc := camera.NewOrbitController(
		camera.WithRadius(4),
		camera.WithAzimuth(0.3),
		camera.WithElevation(0.2),
		camera.WithPanSpeed(1),
	)

	px, py, pz := cc.Position()
	tx, ty, tz := cc.Target()

	cc.PanRight(2)
	cc.PanUp(-1)

	nx, ny, nz := cc.Position()
	ntx, nty, ntz := cc.Target()

	// Panning translates camera and target together, so the orbit offset is intact.
	assert.InDelta(t, px-tx, nx-ntx, 1e-5)
	assert.InDelta(t, py-ty, ny-nty, 1e-5)
	assert.InDelta(t, pz-tz, nz-ntz, 1e-5)
	assert.NotEqual(t, [3]float32{tx, ty, tz}, [3]float32{ntx, nty, ntz}, "target should have moved")
}

func TestControllerSetTargetRecomputesPosition(t *testing.T) {
	cc := camera.NewOrbitController(
		camera.WithRadius(3),
		camera.WithAzimuth(0),
		camera.WithElevation(0),
	)

	cc.SetTarget(1, 2, 3)

	x, y, z := cc.Position()
	assert.InDelta(t, 1, x, 1e-5)
	assert.InDelta(t, 2, y, 1e-5)
	assert.InDelta(t, 6, z, 1e-5)
}

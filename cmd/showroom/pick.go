package main

import (
	"github.com/chewxy/math32"

	"github.com/prismatik/showroom/engine/camera"
	"github.com/prismatik/showroom/engine/scene"
)

// pickPart casts a ray from the cursor through the camera and returns the
// nearest part whose bounding sphere it hits, or nil. Spheres are centered at
// the part transform's translation with the mesh bounding radius scaled by the
// largest transform axis. The floor part is never pickable.
func pickPart(parts []scene.Part, cam camera.Camera, x, y int32, width, height int) scene.Part {
	if width <= 0 || height <= 0 {
		return nil
	}

	origin, dir := cursorRay(cam, x, y, width, height)

	var nearest scene.Part
	nearestT := math32.Inf(1)
	for _, p := range parts {
		if p == nil || p.Mesh() == nil || p.Name() == floorPartName {
			continue
		}

		m := p.Transform()
		center := [3]float32{m[12], m[13], m[14]}
		radius := p.Mesh().BoundingRadius() * maxAxisScale(m)
		if radius <= 0 {
			continue
		}

		t, hit := raySphere(origin, dir, center, radius)
		if hit && t < nearestT {
			nearest = p
			nearestT = t
		}
	}
	return nearest
}

// cursorRay unprojects the cursor position into a world-space ray. The clip
// point is pushed through the inverse projection into view space; the view
// matrix's rotation is orthonormal, so its transpose carries the direction
// back to world space.
func cursorRay(cam camera.Camera, x, y int32, width, height int) (origin, dir [3]float32) {
	ndcX := 2*float32(x)/float32(width) - 1
	ndcY := 1 - 2*float32(y)/float32(height)

	invProj := cam.InverseProjectionMatrix()
	vx := invProj[0]*ndcX + invProj[4]*ndcY + invProj[8]*0.5 + invProj[12]
	vy := invProj[1]*ndcX + invProj[5]*ndcY + invProj[9]*0.5 + invProj[13]
	vz := invProj[2]*ndcX + invProj[6]*ndcY + invProj[10]*0.5 + invProj[14]
	vw := invProj[3]*ndcX + invProj[7]*ndcY + invProj[11]*0.5 + invProj[15]
	if vw != 0 {
		vx, vy, vz = vx/vw, vy/vw, vz/vw
	}
	viewDir := normalize([3]float32{vx, vy, vz})

	view := cam.ViewMatrix()
	dir = normalize([3]float32{
		view[0]*viewDir[0] + view[1]*viewDir[1] + view[2]*viewDir[2],
		view[4]*viewDir[0] + view[5]*viewDir[1] + view[6]*viewDir[2],
		view[8]*viewDir[0] + view[9]*viewDir[1] + view[10]*viewDir[2],
	})

	px, py, pz := cam.Controller().Position()
	return [3]float32{px, py, pz}, dir
}

// raySphere intersects a ray with a sphere, returning the distance to the
// nearest hit in front of the origin.
func raySphere(origin, dir, center [3]float32, radius float32) (float32, bool) {
	oc := [3]float32{center[0] - origin[0], center[1] - origin[1], center[2] - origin[2]}
	tca := oc[0]*dir[0] + oc[1]*dir[1] + oc[2]*dir[2]
	if tca < 0 {
		return 0, false
	}
	d2 := oc[0]*oc[0] + oc[1]*oc[1] + oc[2]*oc[2] - tca*tca
	if d2 > radius*radius {
		return 0, false
	}
	thc := math32.Sqrt(radius*radius - d2)
	t := tca - thc
	if t < 0 {
		t = 0
	}
	return t, true
}

func maxAxisScale(m [16]float32) float32 {
	sx := math32.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	sy := math32.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	sz := math32.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])
	return math32.Max(math32.Max(sx, sy), sz)
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

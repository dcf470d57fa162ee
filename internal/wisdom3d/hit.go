package wisdom3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var centerNDC = mgl64.Vec2{0, 0}

// PointerToNDC maps a mouse or single-touch position in pixels to normalized
// device coordinates: [-1,1] on both axes, origin at the center, y up.
func PointerToNDC(px, py, width, height float64) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		px/width*2 - 1,
		-(py/height)*2 + 1,
	}
}

// HitTest returns the orb nearest along the camera ray through ndc.
// On equal distances the orb earlier in the catalog wins.
func HitTest(ndc mgl64.Vec2, cam *Camera, scene *Scene) (*Orb, bool) {
	if cam == nil || scene.Len() == 0 {
		return nil, false
	}
	O, D := cam.Ray(ndc)
	return nearestHit(scene, O, D, math.Inf(1))
}

func nearestHit(scene *Scene, O, D mgl64.Vec3, tMax float64) (*Orb, bool) {
	var best *Orb
	bestT := tMax
	for _, o := range scene.Orbs {
		C := scene.WorldPosition(o)
		// cheap reject: the closest approach along the ray is already farther than bestT
		if along := C.Sub(O).Dot(D); along-o.Radius > bestT {
			continue
		}
		if t, ok := intersectRaySphere(O, D, C, o.Radius); ok && t < bestT {
			bestT, best = t, o
		}
	}
	return best, best != nil
}

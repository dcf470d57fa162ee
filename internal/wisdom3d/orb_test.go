package wisdom3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIntersectRaySphere_AxisCase(t *testing.T) {
	// Unit sphere at Z=-2, ray down -Z from the origin: roots t in {1,3}.
	C := mgl64.Vec3{0, 0, -2}
	tHit, ok := intersectRaySphere(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, C, 1)
	if !ok {
		t.Fatal("expected sphere hit")
	}
	if math.Abs(tHit-1) > 1e-12 {
		t.Fatalf("t wrong: %.12g", tHit)
	}

	// Start inside: exit at Z=-3 => t=1
	tIn, ok := intersectRaySphere(C, mgl64.Vec3{0, 0, -1}, C, 1)
	if !ok || math.Abs(tIn-1) > 1e-12 {
		t.Fatalf("inside->exit wrong: ok=%v t=%.12g", ok, tIn)
	}

	// Behind the origin
	if _, ok := intersectRaySphere(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, C, 1); ok {
		t.Fatal("sphere behind the ray must not hit")
	}
	// Passing beside
	if _, ok := intersectRaySphere(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, -1}, C, 1); ok {
		t.Fatal("ray passing beside the sphere must not hit")
	}
}

func TestRGBClamp(t *testing.T) {
	c := RGB{-1, 0.5, 2}.clamp01()
	if c != (RGB{0, 0.5, 1}) {
		t.Fatalf("clamp01 wrong: %+v", c)
	}
}

package wisdom3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbID is an opaque handle of an orb; it is the orb's index in the catalog.
type OrbID int

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	return RGB{mgl64.Clamp(c.R, 0, 1), mgl64.Clamp(c.G, 0, 1), mgl64.Clamp(c.B, 0, 1)}
}

// Metadata is what an orb shows when it is encountered.
type Metadata struct {
	Sentence string `json:"sentence"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ImageURL string `json:"imageUrl"`
}

// Orb is one piece of advice placed in the scene. Immutable after load.
type Orb struct {
	ID       OrbID
	Position mgl64.Vec3 // local to the orb group
	Radius   float64
	Color    RGB
	Meta     Metadata
}

// Ray/sphere intersection. D must be unit length.
// Solve ||O + tD - C||^2 = r^2; the first positive root wins,
// and an origin inside the sphere reports the exit.
func intersectRaySphere(O, D, C mgl64.Vec3, r float64) (t float64, ok bool) {
	oc := O.Sub(C)
	b := oc.Dot(D)
	c := oc.Dot(oc) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(disc)
	t = -b - sqrtD
	if t <= epsHit {
		t = -b + sqrtD
	}
	if t <= epsHit {
		return 0, false
	}
	return t, true
}

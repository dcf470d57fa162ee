package wisdom3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera that looks down -Z at yaw = pitch = 0.
// Orientation is kept as yaw (around +Y) and pitch (around the camera right axis),
// so the basis never degenerates when looking straight up or down.
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64 // radians
	Pitch    float64 // radians, [-π/2, π/2]

	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64
}

// NewCamera returns a camera at the origin looking down -Z.
func NewCamera(fovDeg, aspect, near, far float64) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{FOV: fovDeg, Aspect: aspect, Near: near, Far: far}
}

// Forward returns the unit viewing direction.
func (c *Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{-math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), -math.Cos(c.Yaw) * cp}
}

// Right returns the unit right direction (always horizontal).
func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(c.Yaw), 0, -math.Sin(c.Yaw)}
}

// Up returns the unit up direction of the camera.
func (c *Camera) Up() mgl64.Vec3 {
	return c.Right().Cross(c.Forward())
}

// LookAt orients the camera toward a world point. A target at the camera
// position leaves the orientation unchanged.
func (c *Camera) LookAt(target mgl64.Vec3) {
	d := target.Sub(c.Position)
	l := d.Len()
	if l < epsHit {
		return
	}
	d = d.Mul(1 / l)
	c.Pitch = math.Asin(mgl64.Clamp(d.Y(), -1, 1))
	if math.Abs(d.X()) > epsHit || math.Abs(d.Z()) > epsHit {
		c.Yaw = math.Atan2(-d.X(), -d.Z())
	}
}

// SetPitch clamps the pitch into [-π/2, π/2] so the camera never flips.
func (c *Camera) SetPitch(p float64) {
	c.Pitch = mgl64.Clamp(p, -math.Pi/2, math.Pi/2)
}

func (c *Camera) ViewMatrix() mgl64.Mat4 {
	eye := c.Position
	return mgl64.LookAtV(eye, eye.Add(c.Forward()), c.Up())
}

func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Ray converts normalized device coordinates into a world ray from the camera.
func (c *Camera) Ray(ndc mgl64.Vec2) (origin, dir mgl64.Vec3) {
	th := math.Tan(mgl64.DegToRad(c.FOV) / 2)
	dir = c.Forward().
		Add(c.Right().Mul(ndc.X() * th * c.Aspect)).
		Add(c.Up().Mul(ndc.Y() * th))
	return c.Position, dir.Normalize()
}

// ViewProjection is Projection*View, valid until the camera changes.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Project maps a world point to NDC; depth is the view-space distance along
// the forward axis. ok is false for points outside the near/far range.
func (c *Camera) Project(p mgl64.Vec3) (ndc mgl64.Vec3, depth float64, ok bool) {
	return c.ProjectWith(c.ViewProjection(), p)
}

// ProjectWith is Project with a precomputed ViewProjection, for projecting
// many points in one frame.
func (c *Camera) ProjectWith(vp mgl64.Mat4, p mgl64.Vec3) (ndc mgl64.Vec3, depth float64, ok bool) {
	depth = p.Sub(c.Position).Dot(c.Forward())
	if depth < c.Near || depth > c.Far {
		return mgl64.Vec3{}, depth, false
	}
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec3{}, depth, false
	}
	return clip.Vec3().Mul(1 / clip.W()), depth, true
}

// ProjectedRadius is the NDC-height radius of a sphere of radius r at depth.
func (c *Camera) ProjectedRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r / (depth * math.Tan(mgl64.DegToRad(c.FOV)/2))
}

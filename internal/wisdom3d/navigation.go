package wisdom3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// NavStyle selects how drags move the view in explore mode.
type NavStyle string

const (
	NavOrbit    NavStyle = "orbit"    // drag rotates the orb group
	NavFreeLook NavStyle = "freelook" // drag turns the camera
)

func ParseNavStyle(s string) (NavStyle, error) {
	switch NavStyle(s) {
	case NavOrbit, NavFreeLook:
		return NavStyle(s), nil
	case "":
		return NavOrbit, nil
	}
	return "", fmt.Errorf("unknown navigation style %q (want %q or %q)", s, NavOrbit, NavFreeLook)
}

// NavigationState lives only while explore mode is active.
type NavigationState struct {
	Dragging bool
	Last     mgl64.Vec2
}

// NavigationController turns drag gestures into view changes.
type NavigationController struct {
	State *NavigationState

	style       NavStyle
	degPerPixel float64
	sensitivity float64
	home        mgl64.Vec3
}

func NewNavigationController(style NavStyle, degPerPixel, sensitivity float64, home mgl64.Vec3) *NavigationController {
	if style == "" {
		style = NavOrbit
	}
	if degPerPixel == 0 {
		degPerPixel = OrbitDegPerPixel
	}
	if sensitivity == 0 {
		sensitivity = FreeLookSensitivity
	}
	return &NavigationController{style: style, degPerPixel: degPerPixel, sensitivity: sensitivity, home: home}
}

func (n *NavigationController) Style() NavStyle { return n.style }

func (n *NavigationController) Active() bool { return n.State != nil }

// Enter puts the camera at the home position looking at the scene center.
func (n *NavigationController) Enter(cam *Camera, scene *Scene) {
	n.State = &NavigationState{}
	if cam == nil {
		return
	}
	cam.Position = n.home
	if scene.Len() > 0 {
		cam.LookAt(scene.WorldCenter())
	} else {
		cam.LookAt(mgl64.Vec3{})
	}
}

func (n *NavigationController) Exit() { n.State = nil }

// Press starts a drag at pointer position p (pixels).
func (n *NavigationController) Press(p mgl64.Vec2) {
	if n.State == nil {
		return
	}
	n.State.Dragging = true
	n.State.Last = p
}

func (n *NavigationController) Release() {
	if n.State == nil {
		return
	}
	n.State.Dragging = false
}

// Move handles an absolute pointer position while dragging. In orbit style the
// delta since the last position rotates the orb group in world space. Free-look
// only tracks the position here; it turns on relative movement fed to Look.
func (n *NavigationController) Move(p mgl64.Vec2, scene *Scene) {
	if n.State == nil || !n.State.Dragging {
		return
	}
	d := p.Sub(n.State.Last)
	n.State.Last = p
	if n.style == NavOrbit && scene != nil {
		scene.Rotate(n.orbitRotation(d))
	}
}

// Look applies relative pointer movement to the camera yaw and pitch.
// Pitch stays within [-90°, 90°]. Orbit style ignores it.
func (n *NavigationController) Look(d mgl64.Vec2, cam *Camera) {
	if n.State == nil || !n.State.Dragging || cam == nil || n.style != NavFreeLook {
		return
	}
	cam.Yaw -= d.X() * n.sensitivity
	cam.SetPitch(cam.Pitch - d.Y()*n.sensitivity)
}

// orbitRotation: pitch from the vertical delta, yaw from the horizontal one.
func (n *NavigationController) orbitRotation(d mgl64.Vec2) mgl64.Quat {
	pitch := mgl64.DegToRad(d.Y() * n.degPerPixel)
	yaw := mgl64.DegToRad(d.X() * n.degPerPixel)
	return mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0}).Mul(mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}))
}

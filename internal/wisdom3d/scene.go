package wisdom3d

import "github.com/go-gl/mathgl/mgl64"

// Scene is the orb group: every orb in catalog order plus the group orientation.
type Scene struct {
	Orbs        []*Orb
	Orientation mgl64.Quat // group local->world rotation

	// cached bounds (local space)
	Min, Max mgl64.Vec3
	Center   mgl64.Vec3
}

// NewScene places the orbs and precomputes bounds & center.
func NewScene(orbs []*Orb) *Scene {
	s := &Scene{
		Orbs:        orbs,
		Orientation: mgl64.QuatIdent(),
	}
	for i, o := range orbs {
		lo := o.Position.Sub(mgl64.Vec3{o.Radius, o.Radius, o.Radius})
		hi := o.Position.Add(mgl64.Vec3{o.Radius, o.Radius, o.Radius})
		if i == 0 {
			s.Min, s.Max = lo, hi
			continue
		}
		for k := 0; k < 3; k++ {
			if lo[k] < s.Min[k] {
				s.Min[k] = lo[k]
			}
			if hi[k] > s.Max[k] {
				s.Max[k] = hi[k]
			}
		}
	}
	s.Center = s.Min.Add(s.Max).Mul(0.5)
	DebugLog("Created scene with %d orbs, bounds=%v..%v, center=%v", len(orbs), s.Min, s.Max, s.Center)
	return s
}

// Len returns the number of orbs, a nil scene has none.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Orbs)
}

// Orb returns the orb behind a handle.
func (s *Scene) Orb(id OrbID) (*Orb, bool) {
	if s == nil || id < 0 || int(id) >= len(s.Orbs) {
		return nil, false
	}
	return s.Orbs[id], true
}

// WorldPosition applies the group orientation to an orb position.
func (s *Scene) WorldPosition(o *Orb) mgl64.Vec3 {
	return s.Orientation.Rotate(o.Position)
}

// WorldCenter is the scene center after the group orientation.
func (s *Scene) WorldCenter() mgl64.Vec3 {
	return s.Orientation.Rotate(s.Center)
}

// Rotate pre-multiplies a rotation onto the group orientation, so rotations
// accumulate in world space.
func (s *Scene) Rotate(q mgl64.Quat) {
	s.Orientation = q.Mul(s.Orientation).Normalize()
}

package wisdom3d

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeAudio struct{ plays, pauses int }

func (a *fakeAudio) Play()  { a.plays++ }
func (a *fakeAudio) Pause() { a.pauses++ }

// sceneAt builds a scene with one unit orb per position, sentences "orb-<i>".
func sceneAt(pos ...mgl64.Vec3) *Scene {
	orbs := make([]*Orb, len(pos))
	for i, p := range pos {
		orbs[i] = &Orb{
			ID:       OrbID(i),
			Position: p,
			Radius:   1,
			Color:    RGB{1, 1, 1},
			Meta:     Metadata{Sentence: "orb-" + string(rune('a'+i)), Title: "T", Author: "A"},
		}
	}
	return NewScene(orbs)
}

// vecNear is an absolute distance check; mgl64's ApproxEqualThreshold
// tightens to eps*eps whenever a component is zero.
func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func TestVecNearToleratesRoundingAroundZero(t *testing.T) {
	// a quarter turn leaves ~1e-16 in components that should be zero
	assert.True(t, vecNear(mgl64.Vec3{2.220446049250313e-16, 0, -1}, mgl64.Vec3{0, 0, -1}, 1e-9))
	assert.True(t, vecNear(mgl64.Vec3{1, 0, -6.123233995736757e-17}, mgl64.Vec3{1, 0, 0}, 1e-12))
	assert.False(t, vecNear(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1e-6, -1}, 1e-9))
}

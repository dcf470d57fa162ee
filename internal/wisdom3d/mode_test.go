package wisdom3d

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestCoordinator(t *testing.T, cfg *Config, pos ...mgl64.Vec3) (*Coordinator, *fakeClock, *fakeAudio) {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clk := &fakeClock{t: t0}
	au := &fakeAudio{}
	co := NewCoordinator(sceneAt(pos...), cfg, WithClock(clk), WithAudio(au), WithRand(rand.New(rand.NewSource(3))))
	return co, clk, au
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "fly", ModeFlight.String())
	assert.Equal(t, "explore", ModeExplore.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestStartEntersFlightOnce(t *testing.T) {
	co, _, au := newTestCoordinator(t, nil, mgl64.Vec3{0, 0, -10})
	require.False(t, co.State.Started)
	assert.False(t, co.Flight().Traveling(), "nothing moves before start")

	co.Start()
	assert.True(t, co.State.Started)
	assert.Equal(t, ModeFlight, co.State.Mode)
	assert.True(t, co.Flight().Traveling())
	assert.Equal(t, Affordances{FlyEnabled: false, ExploreEnabled: true, ZoomVisible: false}, co.State.UI)
	assert.Equal(t, 1, au.plays)

	co.Start()
	assert.Equal(t, 1, au.plays)
}

func TestSetModeSwitchesControllers(t *testing.T) {
	co, _, au := newTestCoordinator(t, nil, mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{5, 0, 0})
	co.Start()

	co.SetMode(ModeExplore)
	assert.Equal(t, ModeExplore, co.State.Mode)
	assert.False(t, co.Flight().Traveling())
	assert.True(t, co.Navigation().Active())
	assert.Equal(t, Affordances{FlyEnabled: true, ExploreEnabled: false, ZoomVisible: true}, co.State.UI)
	assert.Equal(t, mgl64.Vec3{0, 0, 100}, co.State.Camera.Position)
	assert.True(t, vecNear(co.State.Camera.Forward(), mgl64.Vec3{0, 0, -1}, 1e-12))
	assert.Equal(t, 1, au.pauses)

	co.SetMode(ModeFlight)
	assert.False(t, co.Navigation().Active())
	assert.True(t, co.Flight().Traveling())
	assert.Equal(t, 2, au.plays)

	assert.Panics(t, func() { co.SetMode(Mode(9)) })
}

func TestZoomOnlyWhenVisible(t *testing.T) {
	co, _, _ := newTestCoordinator(t, nil, mgl64.Vec3{0, 0, -10})
	co.Start()
	z := co.State.Camera.Position.Z()
	assert.False(t, co.Zoom(true))
	assert.Equal(t, z, co.State.Camera.Position.Z())

	co.SetMode(ModeExplore)
	require.True(t, co.Zoom(true))
	assert.Equal(t, 90.0, co.State.Camera.Position.Z())
	require.True(t, co.Zoom(false))
	require.True(t, co.Zoom(false))
	assert.Equal(t, 110.0, co.State.Camera.Position.Z())
}

func TestZoomAlwaysVisibleInFlight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZoomAlwaysVisible = true
	co, _, _ := newTestCoordinator(t, cfg, mgl64.Vec3{0, 0, -10})
	co.Start()
	assert.True(t, co.State.UI.ZoomVisible)
	require.True(t, co.Zoom(true))
	assert.Equal(t, -10.0, co.State.Camera.Position.Z())
}

func TestFrameMovesCameraOnlyInFlight(t *testing.T) {
	co, clk, _ := newTestCoordinator(t, nil, mgl64.Vec3{0, 0, -10})
	co.Start()

	clk.advance(time.Second)
	co.Frame(clk.Now())
	assert.True(t, vecNear(co.State.Camera.Position, mgl64.Vec3{0, 0, -1.0 / 60}, 1e-12))

	co.SetMode(ModeExplore)
	before := co.State.Camera.Position
	clk.advance(time.Second)
	co.Frame(clk.Now())
	assert.Equal(t, before, co.State.Camera.Position)
}

func TestPointerRecordsEncounters(t *testing.T) {
	co, _, _ := newTestCoordinator(t, nil, mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, -20})
	co.Start()

	o, ok := co.Pointer(centerNDC)
	require.True(t, ok)
	assert.Equal(t, OrbID(0), o.ID)
	_, ok = co.Pointer(centerNDC)
	require.True(t, ok)
	_, ok = co.Pointer(mgl64.Vec2{0.95, 0.95})
	assert.False(t, ok)

	log := co.Log()
	require.Len(t, log, 1)
	assert.Equal(t, "orb-a", log[0].Sentence)
	latest, ok := co.Latest()
	require.True(t, ok)
	assert.Equal(t, "orb-a", latest.Sentence)
}

func TestDragIgnoredOutsideExplore(t *testing.T) {
	co, _, _ := newTestCoordinator(t, nil, mgl64.Vec3{1, 0, 0})
	co.Start()
	co.PointerDown(mgl64.Vec2{0, 0}, false)
	co.PointerMove(mgl64.Vec2{90, 0})
	co.PointerUp()
	assert.Equal(t, mgl64.QuatIdent(), co.State.Scene.Orientation)

	co.SetMode(ModeExplore)
	co.PointerDown(mgl64.Vec2{0, 0}, false)
	co.PointerMove(mgl64.Vec2{90, 0})
	co.PointerUp()
	co.PointerMove(mgl64.Vec2{180, 0})
	got := co.State.Scene.WorldPosition(co.State.Scene.Orbs[0])
	assert.True(t, vecNear(got, mgl64.Vec3{0, 0, -1}, 1e-9), "%v", got)
}

func TestTouchDragObeysSwitch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TouchInput = false
	co, _, _ := newTestCoordinator(t, cfg, mgl64.Vec3{1, 0, 0})
	co.Start()
	co.SetMode(ModeExplore)
	assert.False(t, co.TouchEnabled())

	co.PointerDown(mgl64.Vec2{0, 0}, true)
	co.PointerMove(mgl64.Vec2{90, 0})
	assert.Equal(t, mgl64.QuatIdent(), co.State.Scene.Orientation)

	// a mouse drag still works
	co.PointerDown(mgl64.Vec2{0, 0}, false)
	co.PointerMove(mgl64.Vec2{90, 0})
	assert.NotEqual(t, mgl64.QuatIdent(), co.State.Scene.Orientation)
}

func TestWithViewReplacesTracker(t *testing.T) {
	v := &recordingView{}
	co := NewCoordinator(sceneAt(mgl64.Vec3{0, 0, -10}), nil, WithView(v), WithClock(&fakeClock{t: t0}))
	co.Start()
	_, ok := co.Pointer(centerNDC)
	require.True(t, ok)
	require.Len(t, v.shown, 1)
	assert.Equal(t, "orb-a", v.shown[0].Sentence)
}

func TestLookTurnsCameraOnlyWhileExploringFreeLook(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NavigationStyle = string(NavFreeLook)
	co, _, _ := newTestCoordinator(t, cfg, mgl64.Vec3{0, 0, -10})
	co.Start()

	co.Look(mgl64.Vec2{100, 0})
	assert.Equal(t, 0.0, co.State.Camera.Yaw, "flight ignores look")

	co.SetMode(ModeExplore)
	co.PointerDown(mgl64.Vec2{640, 360}, false)
	for i := 0; i < 10; i++ {
		co.PointerMove(mgl64.Vec2{1279, 360})
		co.Look(mgl64.Vec2{10, -5})
	}
	assert.InDelta(t, -0.2, co.State.Camera.Yaw, 1e-12)
	assert.InDelta(t, 0.1, co.State.Camera.Pitch, 1e-12)

	co.PointerUp()
	co.Look(mgl64.Vec2{10, 0})
	assert.InDelta(t, -0.2, co.State.Camera.Yaw, 1e-12)
}

func TestUnknownNavStyleFallsBackWithWarning(t *testing.T) {
	defer SetLogger(nil)
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))

	cfg := DefaultConfig()
	cfg.NavigationStyle = "trackball"
	co := NewCoordinator(sceneAt(mgl64.Vec3{}), cfg)
	assert.Equal(t, NavOrbit, co.Navigation().Style())
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "trackball")
}

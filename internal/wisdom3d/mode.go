package wisdom3d

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Mode is the process-wide navigation mode.
type Mode int

const (
	ModeFlight Mode = iota
	ModeExplore
)

func (m Mode) String() string {
	switch m {
	case ModeFlight:
		return "fly"
	case ModeExplore:
		return "explore"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// AudioPlayer is the ambient music collaborator.
type AudioPlayer interface {
	Play()
	Pause()
}

// Affordances is the UI state the host mirrors onto its controls.
type Affordances struct {
	FlyEnabled     bool
	ExploreEnabled bool
	ZoomVisible    bool
}

// State is the whole application state, owned by the Coordinator.
type State struct {
	Scene   *Scene
	Camera  *Camera
	Tracker *Tracker
	Mode    Mode
	Started bool
	UI      Affordances
}

// Coordinator keeps exactly one of the flight and navigation controllers live.
type Coordinator struct {
	State *State

	flight *FlightController
	nav    *NavigationController
	audio  AudioPlayer
	clock  Clock
	cfg    *Config
}

type CoordinatorOption func(*Coordinator)

func WithClock(c Clock) CoordinatorOption { return func(co *Coordinator) { co.clock = c } }

func WithAudio(a AudioPlayer) CoordinatorOption { return func(co *Coordinator) { co.audio = a } }

func WithView(v EncounterView) CoordinatorOption {
	return func(co *Coordinator) { co.State.Tracker = NewTracker(v) }
}

func WithRand(r *rand.Rand) CoordinatorOption {
	return func(co *Coordinator) {
		co.flight = NewFlightController(co.State.Scene, r, co.cfg.TargetChangeInterval(), co.cfg.TravelDuration())
	}
}

// NewCoordinator builds the state and both controllers; nothing moves until Start.
func NewCoordinator(scene *Scene, cfg *Config, opts ...CoordinatorOption) *Coordinator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cam := NewCamera(cfg.Camera.FOVDeg, cfg.Window.aspect(), cfg.Camera.Near, cfg.Camera.Far)
	co := &Coordinator{
		State: &State{
			Scene:   scene,
			Camera:  cam,
			Tracker: NewTracker(nil),
			Mode:    ModeFlight,
		},
		clock: systemClock{},
		cfg:   cfg,
	}
	co.flight = NewFlightController(scene, nil, cfg.TargetChangeInterval(), cfg.TravelDuration())
	style, err := ParseNavStyle(cfg.NavigationStyle)
	if err != nil {
		Log("mode").Warn("falling back to orbit navigation", zap.Error(err))
		style = NavOrbit
	}
	co.nav = NewNavigationController(style, cfg.OrbitDegPerPixel, cfg.FreeLookSensitivity, cfg.ExplorePosition.vec())
	for _, o := range opts {
		o(co)
	}
	return co
}

// SetAudio attaches the music player once the host has one.
func (c *Coordinator) SetAudio(a AudioPlayer) { c.audio = a }

func (c *Coordinator) Flight() *FlightController { return c.flight }

func (c *Coordinator) Navigation() *NavigationController { return c.nav }

func (c *Coordinator) Now() time.Time { return c.clock.Now() }

// Start enters flight mode for the first time, once the catalog is in place.
func (c *Coordinator) Start() {
	if c.State.Started {
		return
	}
	c.State.Started = true
	c.SetMode(ModeFlight)
}

// SetMode switches the live controller, the UI affordances and the music.
func (c *Coordinator) SetMode(m Mode) {
	st := c.State
	switch m {
	case ModeFlight:
		c.nav.Exit()
		c.flight.Enter(c.clock.Now())
		st.UI = Affordances{FlyEnabled: false, ExploreEnabled: true, ZoomVisible: c.cfg.ZoomAlwaysVisible}
		if c.audio != nil {
			c.audio.Play()
		}
	case ModeExplore:
		c.flight.Exit()
		c.nav.Enter(st.Camera, st.Scene)
		st.UI = Affordances{FlyEnabled: true, ExploreEnabled: false, ZoomVisible: true}
		if c.audio != nil {
			c.audio.Pause()
		}
	default:
		panic(fmt.Sprintf("unknown mode %d", int(m)))
	}
	st.Mode = m
	st.Started = true
	Log("mode").Sugar().Infow("mode switched", "mode", m.String())
}

// Zoom moves the camera along Z by the zoom step; it reports whether it did.
func (c *Coordinator) Zoom(in bool) bool {
	if !c.State.UI.ZoomVisible {
		return false
	}
	step := c.cfg.ZoomStep
	if in {
		step = -step
	}
	c.State.Camera.Position[2] += step
	return true
}

// Frame is the per-frame callback.
func (c *Coordinator) Frame(now time.Time) {
	if c.State.Mode == ModeFlight {
		c.flight.Update(now, c.State.Camera)
	}
}

// Pointer hit-tests an NDC position and records any new encounter.
func (c *Coordinator) Pointer(ndc mgl64.Vec2) (*Orb, bool) {
	o, ok := HitTest(ndc, c.State.Camera, c.State.Scene)
	if !ok {
		return nil, false
	}
	c.State.Tracker.Record(o.Meta)
	return o, true
}

// PointerDown starts an explore drag; touch input obeys the touch switch.
func (c *Coordinator) PointerDown(p mgl64.Vec2, touch bool) {
	if c.State.Mode != ModeExplore || (touch && !c.cfg.TouchInput) {
		return
	}
	c.nav.Press(p)
}

func (c *Coordinator) PointerMove(p mgl64.Vec2) {
	if c.State.Mode != ModeExplore {
		return
	}
	c.nav.Move(p, c.State.Scene)
}

// Look forwards relative pointer movement, e.g. from a captured cursor.
func (c *Coordinator) Look(d mgl64.Vec2) {
	if c.State.Mode != ModeExplore {
		return
	}
	c.nav.Look(d, c.State.Camera)
}

func (c *Coordinator) PointerUp() {
	if c.State.Mode != ModeExplore {
		return
	}
	c.nav.Release()
}

// TouchEnabled tells the host whether touches should be forwarded at all.
func (c *Coordinator) TouchEnabled() bool { return c.cfg.TouchInput }

// Log lists encounters newest-first for the log panel.
func (c *Coordinator) Log() []Metadata { return c.State.Tracker.Newest() }

// Latest is the item the overlay shows.
func (c *Coordinator) Latest() (Metadata, bool) { return c.State.Tracker.Latest() }

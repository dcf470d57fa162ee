package wisdom3d

import (
	"math/rand"
	"time"
)

// Clock supplies frame timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FlightState is owned by the FlightController and reset on every entry.
type FlightState struct {
	Target   *OrbID
	ChosenAt time.Time
}

// FlightController flies the camera toward random orbs.
// Idle when State.Target is nil, Traveling otherwise.
type FlightController struct {
	State FlightState

	scene    *Scene
	rng      *rand.Rand
	interval time.Duration // targetChangeInterval
	travel   time.Duration // travelDuration
}

func NewFlightController(scene *Scene, rng *rand.Rand, interval, travel time.Duration) *FlightController {
	if interval <= 0 {
		interval = TargetChangeInterval
	}
	if travel <= 0 {
		travel = TravelDuration
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FlightController{scene: scene, rng: rng, interval: interval, travel: travel}
}

// Traveling reports whether a target is active.
func (f *FlightController) Traveling() bool { return f.State.Target != nil }

// Target returns the active target orb.
func (f *FlightController) Target() (*Orb, bool) {
	if f.State.Target == nil {
		return nil, false
	}
	return f.scene.Orb(*f.State.Target)
}

// Enter moves Idle -> Traveling with a fresh random target. An empty scene stays Idle.
func (f *FlightController) Enter(now time.Time) {
	f.State = FlightState{}
	f.chooseTarget(now)
}

// Exit moves back to Idle.
func (f *FlightController) Exit() {
	f.State = FlightState{}
}

// chooseTarget picks uniformly over the whole catalog; the current target
// is not excluded, so a zero-length hop is possible.
func (f *FlightController) chooseTarget(now time.Time) {
	n := f.scene.Len()
	if n == 0 {
		f.State.Target = nil
		return
	}
	id := OrbID(f.rng.Intn(n))
	f.State.Target = &id
	f.State.ChosenAt = now
	DebugLog("Flight target #%d chosen at %s", id, now.Format(time.RFC3339Nano))
}

func (f *FlightController) held(now time.Time) time.Duration {
	elapsed := now.Sub(f.State.ChosenAt)
	if elapsed < 0 {
		return 0
	}
	if elapsed > f.interval {
		return f.interval
	}
	return elapsed
}

// StepFraction is the per-frame step length: min(elapsed, interval) / travel.
// The numerator is clamped to the target-change interval, not the travel time.
func (f *FlightController) StepFraction(now time.Time) float64 {
	return float64(f.held(now)) / float64(f.travel)
}

// HoldFraction is min(elapsed, interval) / interval, reaching exactly 1 at the retarget.
func (f *FlightController) HoldFraction(now time.Time) float64 {
	return float64(f.held(now)) / float64(f.interval)
}

// Update advances the camera by one frame. Displacement accumulates frame
// over frame; a new target is chosen once the interval elapsed.
func (f *FlightController) Update(now time.Time, cam *Camera) {
	target, ok := f.Target()
	if !ok || cam == nil {
		return
	}
	tp := f.scene.WorldPosition(target)
	step := f.StepFraction(now)
	dir := tp.Sub(cam.Position)
	if l := dir.Len(); l > epsHit {
		cam.Position = cam.Position.Add(dir.Mul(step / l))
	}
	cam.LookAt(tp)

	if now.Sub(f.State.ChosenAt) >= f.interval {
		f.chooseTarget(now)
	}
}

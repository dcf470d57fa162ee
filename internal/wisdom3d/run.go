package wisdom3d

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// steppedClock advances by a fixed frame duration per tick, so a headless run
// sees the same timeline however fast it is driven.
type steppedClock struct {
	t time.Time
	d time.Duration
}

func (c *steppedClock) Now() time.Time { return c.t }

func (c *steppedClock) step() { c.t = c.t.Add(c.d) }

// BuildCoordinator loads the catalog and returns a coordinator ready to Start.
func BuildCoordinator(ctx context.Context, cfg *Config, opts ...CoordinatorOption) (*Coordinator, error) {
	orbs, err := LoadCatalog(ctx, cfg.DataSource, CatalogOptions{
		ScalingFactor: cfg.ScalingFactor,
		ImageBaseURL:  cfg.ImageBaseURL,
		OrbRadius:     cfg.OrbRadius,
	})
	if err != nil {
		return nil, err
	}
	return NewCoordinator(NewScene(orbs), cfg, opts...), nil
}

// RunHeadless flies through the catalog without a window. Every tick runs one
// frame and points at the screen center; the log is written to out at the end.
func RunHeadless(ctx context.Context, cfg *Config, out io.Writer) error {
	hz := cfg.Headless.Hz
	if hz <= 0 {
		hz = HeadlessHz
	}
	d := time.Second / time.Duration(hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hz)
	}
	clk := &steppedClock{t: time.Now(), d: d}
	co, err := BuildCoordinator(ctx, cfg, WithClock(clk), WithView(logEncounterView{}))
	if err != nil {
		return err
	}
	co.Start()

	log := Log("headless")
	log.Info("headless run", zap.Int("hz", hz), zap.Uint64("ticks", cfg.Headless.Ticks), zap.Int("orbs", co.State.Scene.Len()))

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		case <-t.C:
			clk.step()
			co.Frame(clk.Now())
			co.Pointer(centerNDC)
			tick++
			if cfg.Headless.Ticks > 0 && tick >= cfg.Headless.Ticks {
				break loop
			}
		}
	}
	DebugLog("Headless run finished after %d ticks, %d encounters", tick, co.State.Tracker.Len())
	if out != nil {
		if _, err := io.WriteString(out, RenderLog(co.Log())); err != nil {
			return err
		}
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

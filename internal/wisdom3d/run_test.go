package wisdom3d

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessConfig(t *testing.T, ticks uint64) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataSource = writeTemp(t, "orbs.json", `[{"x": 0, "y": 0, "z": -2, "sentence": "Look ahead.", "title": "Road", "author": "Someone"}]`)
	cfg.Headless.Hz = 1000
	cfg.Headless.Ticks = ticks
	return cfg
}

func TestRunHeadlessRecordsWhatItFacesThrough(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunHeadless(context.Background(), headlessConfig(t, 5), &out))
	s := out.String()
	assert.Contains(t, s, "Log (1)")
	assert.Contains(t, s, "Look ahead.")
	assert.Contains(t, s, "Road by Someone")
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, headlessConfig(t, 0), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, RunHeadless(ctx, headlessConfig(t, 0), nil))

	// interrupted mid-run with a cause, as signal handling does
	cctx, ccancel := context.WithCancelCause(context.Background())
	time.AfterFunc(20*time.Millisecond, func() { ccancel(errors.New("interrupt")) })
	var out bytes.Buffer
	require.NoError(t, RunHeadless(cctx, headlessConfig(t, 0), &out))
	assert.Contains(t, out.String(), "Look ahead.")
}

func TestRunHeadlessBadCatalog(t *testing.T) {
	cfg := headlessConfig(t, 1)
	cfg.DataSource = writeTemp(t, "bad.json", `{}`)
	err := RunHeadless(context.Background(), cfg, nil)
	var dle *DataLoadError
	assert.ErrorAs(t, err, &dle)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lukaszgryglicki/wisdom3d/internal/viewer"
	"github.com/lukaszgryglicki/wisdom3d/internal/wisdom3d"
	"go.uber.org/zap"
)

func main() {
	wisdom3d.Debug = os.Getenv("DEBUG") != ""
	wisdom3d.Headless = os.Getenv("HEADLESS") != ""
	wisdom3d.Audio = os.Getenv("NO_AUDIO") == ""

	var hz int
	var ticks uint64
	flag.BoolVar(&wisdom3d.Headless, "headless", wisdom3d.Headless, "Run the fly-through without a window.")
	flag.IntVar(&hz, "hz", 0, "Frame rate in headless mode (0 = config).")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N frames in headless mode (0 = config, then forever).")
	flag.Parse()

	cfgPath, required := "config.json", false
	if flag.NArg() > 0 {
		cfgPath, required = flag.Arg(0), true
	}
	cfg, err := wisdom3d.LoadConfig(cfgPath, required)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := wisdom3d.InitLogger(cfg.LogFile, wisdom3d.Debug)
	defer func() { _ = log.Sync() }()

	if hz > 0 {
		cfg.Headless.Hz = hz
	}
	if ticks > 0 {
		cfg.Headless.Ticks = ticks
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if wisdom3d.Headless {
		err = wisdom3d.RunHeadless(ctx, cfg, os.Stdout)
	} else {
		err = runWindow(ctx, cfg)
	}
	if err != nil {
		log.Error("wisdom3d failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runWindow(ctx context.Context, cfg *wisdom3d.Config) error {
	co, err := wisdom3d.BuildCoordinator(ctx, cfg)
	if err != nil {
		return err
	}
	return viewer.RunWindow(co, cfg)
}

package wisdom3d

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/joho/godotenv"
)

type Vec3Cfg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3Cfg) vec() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

type CameraCfg struct {
	FOVDeg float64 `json:"fovDeg,omitempty"`
	Near   float64 `json:"near,omitempty"`
	Far    float64 `json:"far,omitempty"`
}

type WindowCfg struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Title  string `json:"title,omitempty"`
}

func (w WindowCfg) aspect() float64 {
	if w.Width <= 0 || w.Height <= 0 {
		return float64(WindowWidth) / float64(WindowHeight)
	}
	return float64(w.Width) / float64(w.Height)
}

type HeadlessCfg struct {
	Hz    int    `json:"hz,omitempty"`
	Ticks uint64 `json:"ticks,omitempty"` // 0 = run until cancelled
}

type Config struct {
	DataSource             string      `json:"dataSource"`
	ImageBaseURL           string      `json:"imageBaseUrl,omitempty"`
	ScalingFactor          float64     `json:"scalingFactor,omitempty"`
	OrbRadius              float64     `json:"orbRadius,omitempty"`
	TargetChangeIntervalMs int64       `json:"targetChangeIntervalMs,omitempty"`
	TravelDurationMs       int64       `json:"travelDurationMs,omitempty"`
	ZoomStep               float64     `json:"zoomStep,omitempty"`
	ZoomAlwaysVisible      bool        `json:"zoomAlwaysVisible,omitempty"`
	NavigationStyle        string      `json:"navigationStyle,omitempty"`
	OrbitDegPerPixel       float64     `json:"orbitDegPerPixel,omitempty"`
	FreeLookSensitivity    float64     `json:"freeLookSensitivity,omitempty"`
	ExplorePosition        Vec3Cfg     `json:"explorePosition"`
	TouchInput             bool        `json:"touchInput"`
	MusicFile              string      `json:"musicFile,omitempty"`
	LogFile                string      `json:"logFile,omitempty"`
	Camera                 CameraCfg   `json:"camera"`
	Window                 WindowCfg   `json:"window"`
	Headless               HeadlessCfg `json:"headless"`
}

// DefaultConfig matches the values the visualization ships with.
func DefaultConfig() *Config {
	cfg := &Config{
		ExplorePosition: Vec3Cfg{Z: 100},
		TouchInput:      true,
	}
	cfg.fillDefaults()
	return cfg
}

func (cfg *Config) fillDefaults() {
	if cfg.DataSource == "" {
		cfg.DataSource = DataFile
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = ImageBaseURL
	}
	if cfg.ScalingFactor == 0 {
		cfg.ScalingFactor = ScalingFactor
	}
	if cfg.OrbRadius <= 0 {
		cfg.OrbRadius = OrbRadius
	}
	if cfg.TargetChangeIntervalMs == 0 {
		cfg.TargetChangeIntervalMs = TargetChangeInterval.Milliseconds()
	}
	if cfg.TravelDurationMs == 0 {
		cfg.TravelDurationMs = TravelDuration.Milliseconds()
	}
	if cfg.ZoomStep == 0 {
		cfg.ZoomStep = ZoomStep
	}
	if cfg.NavigationStyle == "" {
		cfg.NavigationStyle = string(NavOrbit)
	}
	if cfg.OrbitDegPerPixel == 0 {
		cfg.OrbitDegPerPixel = OrbitDegPerPixel
	}
	if cfg.FreeLookSensitivity == 0 {
		cfg.FreeLookSensitivity = FreeLookSensitivity
	}
	if cfg.MusicFile == "" {
		cfg.MusicFile = MusicFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = LogFile
	}
	if cfg.Camera.FOVDeg <= 0 {
		cfg.Camera.FOVDeg = FOVDeg
	}
	if cfg.Camera.Near <= 0 {
		cfg.Camera.Near = NearPlane
	}
	if cfg.Camera.Far <= 0 {
		cfg.Camera.Far = FarPlane
	}
	if cfg.Window.Width <= 0 {
		cfg.Window.Width = WindowWidth
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = WindowHeight
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Wisdom"
	}
	if cfg.Headless.Hz <= 0 {
		cfg.Headless.Hz = HeadlessHz
	}
}

func (cfg *Config) TargetChangeInterval() time.Duration {
	return time.Duration(cfg.TargetChangeIntervalMs) * time.Millisecond
}

func (cfg *Config) TravelDuration() time.Duration {
	return time.Duration(cfg.TravelDurationMs) * time.Millisecond
}

// Validate rejects values no component can work with.
func (cfg *Config) Validate() error {
	if cfg.TargetChangeIntervalMs <= 0 {
		return fmt.Errorf("targetChangeIntervalMs must be > 0, got %d", cfg.TargetChangeIntervalMs)
	}
	if cfg.TravelDurationMs <= 0 {
		return fmt.Errorf("travelDurationMs must be > 0, got %d", cfg.TravelDurationMs)
	}
	if cfg.ScalingFactor <= 0 {
		return fmt.Errorf("scalingFactor must be > 0, got %.6g", cfg.ScalingFactor)
	}
	if cfg.ZoomStep < 0 {
		return fmt.Errorf("zoomStep must be >= 0, got %.6g", cfg.ZoomStep)
	}
	if cfg.Camera.Near >= cfg.Camera.Far {
		return fmt.Errorf("camera near (%.6g) must be below far (%.6g)", cfg.Camera.Near, cfg.Camera.Far)
	}
	if _, err := ParseNavStyle(cfg.NavigationStyle); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads an optional JSON config, fills defaults, applies env
// overrides (.env is honoured) and validates. A missing file at the default
// path is not an error.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := &Config{
		ExplorePosition: Vec3Cfg{Z: 100},
		TouchInput:      true,
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		DebugLog("Config %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil {
		DebugLog(".env not loaded: %v", err)
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	DebugLog("Loaded config from %s: data=%s, interval=%dms, travel=%dms, nav=%s", path, cfg.DataSource, cfg.TargetChangeIntervalMs, cfg.TravelDurationMs, cfg.NavigationStyle)
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	cfg.DataSource = getEnv("WISDOM_DATA", cfg.DataSource)
	cfg.ImageBaseURL = getEnv("WISDOM_IMAGE_BASE", cfg.ImageBaseURL)
	cfg.MusicFile = getEnv("WISDOM_MUSIC", cfg.MusicFile)
	cfg.NavigationStyle = getEnv("WISDOM_NAV_STYLE", cfg.NavigationStyle)
	cfg.LogFile = getEnv("WISDOM_LOG_FILE", cfg.LogFile)
	cfg.TargetChangeIntervalMs = getEnvAsInt64("WISDOM_TARGET_CHANGE_MS", cfg.TargetChangeIntervalMs)
	cfg.TravelDurationMs = getEnvAsInt64("WISDOM_TRAVEL_MS", cfg.TravelDurationMs)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return value
	}
	return fallback
}

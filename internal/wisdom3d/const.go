package wisdom3d

import "time"

const (
	DataFile             = "orbs_data_with_colors.json"
	ImageBaseURL         = "https://hijaz.github.io/wisdom/"
	MusicFile            = "background_music.mp3"
	LogFile              = "wisdom3d.log"
	ScalingFactor        = 10
	OrbRadius            = 1.0
	TargetChangeInterval = 15 * time.Second
	TravelDuration       = 60 * time.Second
	ZoomStep             = 10
	OrbitDegPerPixel     = 1.0   // 1px of drag turns the orb group by 1 degree
	FreeLookSensitivity  = 0.002 // radians per pixel
	FOVDeg               = 75
	NearPlane            = 0.1
	FarPlane             = 1000
	WindowWidth          = 1280
	WindowHeight         = 720
	HeadlessHz           = 60
	unknownField         = "Unknown"
	// hit-test epsilon, same role as the minimal positive t of a ray hit
	epsHit = 1e-9
)

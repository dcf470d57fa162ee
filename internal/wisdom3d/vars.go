package wisdom3d

var (
	Debug    = false // set to true for verbose debug output
	Headless = false // set to true to run frames without a window
	Audio    = true  // set to false to never touch the audio device
	// Compile time checks
	_ EncounterView = (*logEncounterView)(nil)
	_ Clock         = systemClock{}
)

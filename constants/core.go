package constants

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxStep is the largest game delta a single timer tick may contribute (seconds)
	MaxStep = 0.05

	// EventChannelSize is the buffer between the input poller and the game loop
	EventChannelSize = 256
)

// Entity capacity hint for the engine's entity slice
const InitialEntityCapacity = 16

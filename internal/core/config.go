package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to size their viewport.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frame callbacks per second requested from the platform (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Hits   int  // Collider contacts this session
	Resets int  // Times the ball left the arena this session
	Paused bool // Whether the simulation is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}

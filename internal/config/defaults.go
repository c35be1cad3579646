package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the default arena configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Arena: ArenaConfig{
			BoundX:  6,
			Borders: true,
		},
		Paddle: PaddleConfig{
			Width:   0.2,
			Height:  3,
			Depth:   1.5,
			OffsetX: 5,
		},
		Ball: BallConfig{
			Radius:           0.1,
			Speed:            2.5,
			InitialDirection: []float64{-2, 0.5, 0},
		},
		Border: BorderConfig{
			OffsetY:   3.5,
			Thickness: 0.2,
			Length:    12,
		},
		Physics: PhysicsConfig{
			MaxDelta:    0.1,
			Penetration: "none",
		},
		Input: InputConfig{
			PointerScale: 3,
		},
		Camera: CameraConfig{
			FOV:      75,
			Distance: 5,
		},
	}
}


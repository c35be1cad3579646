package physics

import "github.com/vovakirdan/pong3d/internal/core"

// Ball is the simulated ball. It is plain data; the Simulator moves it.
type Ball struct {
	Position  core.Vec3 // Center
	Direction core.Vec3 // Unit travel direction; changes only on reflection or reset
	Speed     float64   // World units per second
	Radius    float64
}

// NewBall creates a ball at the origin travelling along direction.
// direction is normalized.
func NewBall(direction core.Vec3, speed, radius float64) *Ball {
	return &Ball{
		Direction: direction.Normalize(),
		Speed:     speed,
		Radius:    radius,
	}
}


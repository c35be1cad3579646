// Package config provides YAML-based configuration loading for the arena,
// the ball and the presentation layer.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/physics"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// PongConfig contains all configuration for the arena simulation.
type PongConfig struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Ball    BallConfig    `yaml:"ball"`
	Border  BorderConfig  `yaml:"border"`
	Physics PhysicsConfig `yaml:"physics"`
	Input   InputConfig   `yaml:"input"`
	Camera  CameraConfig  `yaml:"camera"`
}

// ArenaConfig defines the playable area.
type ArenaConfig struct {
	BoundX  float64 `yaml:"bound_x"` // Ball is served again once |x| exceeds this
	Borders bool    `yaml:"borders"` // Register top and bottom borders
}

// PaddleConfig defines paddle geometry.
type PaddleConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Depth   float64 `yaml:"depth"` // Extent along z sent to external renderers
	OffsetX float64 `yaml:"offset_x"`
}

// BallConfig defines the ball and its serve.
type BallConfig struct {
	Radius           float64   `yaml:"radius"`
	Speed            float64   `yaml:"speed"`
	InitialDirection []float64 `yaml:"initial_direction"`
}

// BorderConfig defines the top and bottom walls.
type BorderConfig struct {
	OffsetY   float64 `yaml:"offset_y"`
	Thickness float64 `yaml:"thickness"`
	Length    float64 `yaml:"length"`
}

// PhysicsConfig defines frame stepping behavior.
type PhysicsConfig struct {
	MaxDelta    float64 `yaml:"max_delta"`   // Frame delta clamp in seconds, 0 disables
	Penetration string  `yaml:"penetration"` // "none" or "push_out"
}

// InputConfig defines pointer mapping.
type InputConfig struct {
	PointerScale float64 `yaml:"pointer_scale"` // World units per normalized pointer unit
}

// CameraConfig defines the perspective camera.
type CameraConfig struct {
	FOV      float64 `yaml:"fov"`      // Vertical field of view in degrees
	Distance float64 `yaml:"distance"` // Camera z position, looking down -z
}

// Validate checks that the configuration describes a usable arena.
func (c PongConfig) Validate() error {
	type field struct {
		name string
		v    float64
	}
	positive := []field{
		{"arena.bound_x", c.Arena.BoundX},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.offset_x", c.Paddle.OffsetX},
		{"ball.radius", c.Ball.Radius},
		{"ball.speed", c.Ball.Speed},
		{"camera.fov", c.Camera.FOV},
		{"camera.distance", c.Camera.Distance},
	}
	if c.Arena.Borders {
		positive = append(positive,
			field{"border.offset_y", c.Border.OffsetY},
			field{"border.thickness", c.Border.Thickness},
			field{"border.length", c.Border.Length},
		)
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}

	if c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: camera.fov must be below 180 degrees, got %v", ErrInvalid, c.Camera.FOV)
	}
	if c.Physics.MaxDelta < 0 {
		return fmt.Errorf("%w: physics.max_delta must not be negative, got %v", ErrInvalid, c.Physics.MaxDelta)
	}
	if len(c.Ball.InitialDirection) != 3 {
		return fmt.Errorf("%w: ball.initial_direction needs 3 components, got %d", ErrInvalid, len(c.Ball.InitialDirection))
	}
	if c.ServeDirection().Len() == 0 {
		return fmt.Errorf("%w: ball.initial_direction must not be zero", ErrInvalid)
	}
	if _, err := physics.ParsePenetration(c.Physics.Penetration); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ServeDirection returns the configured initial ball direction as a vector.
// Missing components read as zero.
func (c PongConfig) ServeDirection() core.Vec3 {
	var v [3]float64
	copy(v[:], c.Ball.InitialDirection)
	return core.V3(v[0], v[1], v[2])
}

// PenetrationPolicy returns the parsed penetration policy, defaulting to none.
func (c PongConfig) PenetrationPolicy() physics.Penetration {
	p, err := physics.ParsePenetration(c.Physics.Penetration)
	if err != nil {
		return physics.PenetrationNone
	}
	return p
}

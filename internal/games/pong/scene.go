package pong

import (
	"github.com/vovakirdan/pong3d/internal/config"
	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/physics"
)

// Scene is everything the simulator works on, resolved once at setup.
type Scene struct {
	Ball      *physics.Ball
	Colliders *physics.Registry
	Player    *physics.Collider
	Passive   *physics.Collider
}

// BuildScene creates the ball and registers the colliders in their fixed
// order: player paddle, passive paddle, then the top and bottom borders when
// the arena has them. Normals point back towards the middle of the arena.
func BuildScene(cfg config.PongConfig) *Scene {
	reg := physics.NewRegistry()

	player := &physics.Collider{
		Name:       "player",
		Role:       physics.RolePlayer,
		Position:   core.V3(-cfg.Paddle.OffsetX, 0, 0),
		HalfWidth:  cfg.Paddle.Width / 2,
		HalfHeight: cfg.Paddle.Height / 2,
		Normal:     core.V3(1, 0, 0),
	}
	passive := &physics.Collider{
		Name:       "passive",
		Role:       physics.RolePassive,
		Position:   core.V3(cfg.Paddle.OffsetX, 0, 0),
		HalfWidth:  cfg.Paddle.Width / 2,
		HalfHeight: cfg.Paddle.Height / 2,
		Normal:     core.V3(-1, 0, 0),
	}
	reg.Register(player)
	reg.Register(passive)

	if cfg.Arena.Borders {
		reg.Register(&physics.Collider{
			Name:       "top",
			Role:       physics.RoleBorder,
			Position:   core.V3(0, cfg.Border.OffsetY, 0),
			HalfWidth:  cfg.Border.Length / 2,
			HalfHeight: cfg.Border.Thickness / 2,
			Normal:     core.V3(0, -1, 0),
		})
		reg.Register(&physics.Collider{
			Name:       "bottom",
			Role:       physics.RoleBorder,
			Position:   core.V3(0, -cfg.Border.OffsetY, 0),
			HalfWidth:  cfg.Border.Length / 2,
			HalfHeight: cfg.Border.Thickness / 2,
			Normal:     core.V3(0, 1, 0),
		})
	}

	return &Scene{
		Ball:      physics.NewBall(cfg.ServeDirection(), cfg.Ball.Speed, cfg.Ball.Radius),
		Colliders: reg,
		Player:    player,
		Passive:   passive,
	}
}

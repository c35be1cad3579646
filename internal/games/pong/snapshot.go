package pong

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/pong3d/internal/core"
)

// Pose is a world position as sent to external renderers.
type Pose struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func poseOf(v core.Vec3) Pose {
	return Pose{X: v.X, Y: v.Y, Z: v.Z}
}

// ColliderPose is the current placement of one collider.
type ColliderPose struct {
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Pose       Pose    `json:"pose"`
	HalfWidth  float64 `json:"half_width"`
	HalfHeight float64 `json:"half_height"`
	HalfDepth  float64 `json:"half_depth"` // Collision ignores z; renderers draw boxes
}

// Snapshot is the complete visible state of one frame. It holds values only,
// so it can be handed to other goroutines.
type Snapshot struct {
	Tick      uint64         `json:"tick"`
	Ball      Pose           `json:"ball"`
	Direction Pose           `json:"direction"`
	Colliders []ColliderPose `json:"colliders"`
	Hits      int            `json:"hits"`
	Resets    int            `json:"resets"`
	Paused    bool           `json:"paused"`
}

// Snapshot returns the current frame.
func (g *Game) Snapshot() Snapshot {
	colliders := g.scene.Colliders.All()
	snap := Snapshot{
		Tick:      g.tick,
		Ball:      poseOf(g.scene.Ball.Position),
		Direction: poseOf(g.scene.Ball.Direction),
		Colliders: make([]ColliderPose, 0, len(colliders)),
		Hits:      g.hits,
		Resets:    g.resets,
		Paused:    g.paused,
	}
	for _, c := range colliders {
		snap.Colliders = append(snap.Colliders, ColliderPose{
			Name:       c.Name,
			Role:       c.Role.String(),
			Pose:       poseOf(c.Position),
			HalfWidth:  c.HalfWidth,
			HalfHeight: c.HalfHeight,
			HalfDepth:  g.cfg.Paddle.Depth / 2,
		})
	}
	return snap
}

// Hash returns a digest of the snapshot for determinism testing.
// Floats are hashed by bit pattern, so runs must match exactly.
func (s Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 8*(8+5*len(s.Colliders)))
	putF := func(v float64) {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	buf = binary.LittleEndian.AppendUint64(buf, s.Tick)
	putF(s.Ball.X)
	putF(s.Ball.Y)
	putF(s.Ball.Z)
	putF(s.Direction.X)
	putF(s.Direction.Y)
	putF(s.Direction.Z)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Hits))   //#nosec G115 -- hash computation
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Resets)) //#nosec G115 -- hash computation
	for _, c := range s.Colliders {
		buf = append(buf, c.Name...)
		putF(c.Pose.X)
		putF(c.Pose.Y)
		putF(c.Pose.Z)
	}
	if s.Paused {
		buf = append(buf, 1)
	}

	return xxhash.Sum64(buf)
}

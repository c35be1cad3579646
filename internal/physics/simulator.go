package physics

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pong3d/internal/core"
)

// DefaultBoundX is the horizontal distance from the origin beyond which the
// ball is considered out of the arena.
const DefaultBoundX = 6.0

// Penetration selects what happens to a ball that is inside a collider
// after it has been reflected.
type Penetration int

const (
	// PenetrationNone leaves the ball where it is. Under large time steps the
	// ball can stay inside the collider and be reflected again next frame.
	PenetrationNone Penetration = iota

	// PenetrationPushOut moves the ball onto the collider face along the
	// collider normal, so the next frame starts outside.
	PenetrationPushOut
)

// String returns the configuration name of the policy.
func (p Penetration) String() string {
	switch p {
	case PenetrationNone:
		return "none"
	case PenetrationPushOut:
		return "push_out"
	default:
		return "unknown"
	}
}

// ParsePenetration parses a policy name as used in configuration files.
func ParsePenetration(s string) (Penetration, error) {
	switch s {
	case "", "none":
		return PenetrationNone, nil
	case "push_out":
		return PenetrationPushOut, nil
	default:
		return PenetrationNone, fmt.Errorf("physics: unknown penetration policy %q", s)
	}
}

// Options tunes a Simulator.
type Options struct {
	BoundX           float64   // Out-of-arena threshold on |x|; DefaultBoundX when zero
	InitialDirection core.Vec3 // Serve direction restored on reset; normalized
	Penetration      Penetration
	Logger           *log.Logger // Debug events; nil discards
}

// FrameResult describes what happened during one Update.
type FrameResult struct {
	Hit   *Collider // Collider the ball was reflected off, nil if none
	Reset bool      // Ball left the arena and was served again
}

// Simulator advances a Ball against a Registry one frame at a time.
// It is not safe for concurrent use; one goroutine drives it.
type Simulator struct {
	ball      *Ball
	colliders *Registry
	passive   *Collider
	opts      Options
	logger    *log.Logger
}

// NewSimulator binds a ball to a collider registry. The passive paddle is
// resolved once here by role.
func NewSimulator(ball *Ball, colliders *Registry, opts Options) *Simulator {
	if opts.BoundX <= 0 {
		opts.BoundX = DefaultBoundX
	}
	opts.InitialDirection = opts.InitialDirection.Normalize()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Simulator{
		ball:      ball,
		colliders: colliders,
		passive:   colliders.ByRole(RolePassive),
		opts:      opts,
		logger:    logger,
	}
}

// Update advances the simulation by delta seconds:
// collision scan, at most one reflection, bounds reset, integration,
// then the passive paddle follows the ball.
// A NaN, infinite or negative delta is treated as zero.
func (s *Simulator) Update(delta float64) FrameResult {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta < 0 {
		delta = 0
	}

	var res FrameResult

	if c := s.firstHit(); c != nil {
		s.ball.Direction = s.ball.Direction.Reflect(c.Normal)
		if s.opts.Penetration == PenetrationPushOut {
			s.pushOut(c)
		}
		res.Hit = c
		s.logger.Debug("ball hit collider",
			"collider", c.Name,
			"role", c.Role,
			"x", s.ball.Position.X,
			"y", s.ball.Position.Y,
		)
	}

	if math.Abs(s.ball.Position.X) > s.opts.BoundX {
		s.logger.Debug("ball out of arena", "x", s.ball.Position.X)
		s.Reset()
		res.Reset = true
	}

	step := s.ball.Direction.Scale(s.ball.Speed * delta)
	s.ball.Position = s.ball.Position.Add(step)

	if s.passive != nil {
		s.passive.Position.Y = s.ball.Position.Y
	}

	return res
}

// Reset serves the ball again from the origin in the initial direction.
func (s *Simulator) Reset() {
	s.ball.Position = core.Vec3{}
	s.ball.Direction = s.opts.InitialDirection
}

// firstHit returns the first collider in registry order containing the ball.
func (s *Simulator) firstHit() *Collider {
	for _, c := range s.colliders.colliders {
		if c.Contains(s.ball.Position, s.ball.Radius) {
			return c
		}
	}
	return nil
}

// pushOut places the ball on the inflated face of c that the normal points through.
func (s *Simulator) pushOut(c *Collider) {
	r := s.ball.Radius
	switch {
	case c.Normal.X != 0:
		s.ball.Position.X = c.Position.X + math.Copysign(c.HalfWidth+r, c.Normal.X)
	case c.Normal.Y != 0:
		s.ball.Position.Y = c.Position.Y + math.Copysign(c.HalfHeight+r, c.Normal.Y)
	}
}

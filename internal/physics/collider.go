// Package physics implements the ball simulation: an ordered registry of
// axis-aligned rectangular colliders and the per-frame ball update that
// tests, reflects, resets and integrates.
package physics

import "github.com/vovakirdan/pong3d/internal/core"

// Role tags what a collider stands for in the arena.
type Role int

const (
	RoleBorder  Role = iota // Static top/bottom wall
	RolePlayer              // Paddle driven by pointer input
	RolePassive             // Paddle that mirrors the ball's vertical position
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleBorder:
		return "border"
	case RolePlayer:
		return "player"
	case RolePassive:
		return "passive"
	default:
		return "unknown"
	}
}

// Collider is an axis-aligned rectangle the ball bounces off.
// HalfWidth and HalfHeight are the geometric half extents; the simulator
// inflates them by the ball radius when testing, which reduces the test to
// a point-in-rectangle check on the ball's center.
type Collider struct {
	Name       string
	Role       Role
	Position   core.Vec3 // Center; paddles move along Y
	HalfWidth  float64
	HalfHeight float64
	Normal     core.Vec3 // Unit, single-axis reflection normal
}

// Contains reports whether p lies strictly inside the collider grown by margin
// on every side. Points exactly on the grown face are outside.
func (c *Collider) Contains(p core.Vec3, margin float64) bool {
	dx := p.X - c.Position.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - c.Position.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < c.HalfWidth+margin && dy < c.HalfHeight+margin
}

// Registry is the ordered set of colliders for one session.
// Order is significant: the first collider hit in a frame wins.
type Registry struct {
	colliders []*Collider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a collider. There is no duplicate detection and no
// removal; colliders live as long as the session.
func (r *Registry) Register(c *Collider) {
	r.colliders = append(r.colliders, c)
}

// All returns the colliders in registration order. The returned slice is a
// copy; callers may move colliders but cannot add or remove entries.
func (r *Registry) All() []*Collider {
	out := make([]*Collider, len(r.colliders))
	copy(out, r.colliders)
	return out
}

// ByRole returns the first collider with the given role, or nil.
func (r *Registry) ByRole(role Role) *Collider {
	for _, c := range r.colliders {
		if c.Role == role {
			return c
		}
	}
	return nil
}

// Len returns the number of registered colliders.
func (r *Registry) Len() int {
	return len(r.colliders)
}

package pong

import (
	"math"

	"github.com/vovakirdan/pong3d/internal/core"
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Camera is a perspective camera on the z axis looking at the origin.
type Camera struct {
	fov      float64 // Vertical, radians
	distance float64
	cols     int
	rows     int
	aspect   float64
}

// NewCamera creates a camera with a vertical field of view in degrees.
func NewCamera(fovDeg, distance float64) *Camera {
	return &Camera{
		fov:      fovDeg * math.Pi / 180,
		distance: distance,
		aspect:   1,
	}
}

// SetViewport updates the projection for a new terminal size.
func (c *Camera) SetViewport(cols, rows int) {
	c.cols = cols
	c.rows = rows
	if cols > 0 && rows > 0 {
		c.aspect = float64(cols) / (float64(rows) * cellAspect)
	}
}

// Aspect returns the world aspect ratio of the viewport.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Project maps a world point to a screen cell. ok is false for points at or
// behind the camera.
func (c *Camera) Project(p core.Vec3) (x, y int, ok bool) {
	depth := c.distance - p.Z
	if depth <= 0 {
		return 0, 0, false
	}
	f := 1 / math.Tan(c.fov/2)
	ndcX := p.X * f / (depth * c.aspect)
	ndcY := p.Y * f / depth

	sx := (ndcX + 1) / 2 * float64(c.cols)
	sy := (1 - ndcY) / 2 * float64(c.rows)
	return int(math.Floor(sx)), int(math.Floor(sy)), true
}

// ProjectRect maps an axis-aligned rectangle on the z = 0 plane to the cells it covers.
func (c *Camera) ProjectRect(center core.Vec3, halfW, halfH float64) (core.Rect, bool) {
	x0, y0, ok0 := c.Project(core.V3(center.X-halfW, center.Y+halfH, center.Z))
	x1, y1, ok1 := c.Project(core.V3(center.X+halfW, center.Y-halfH, center.Z))
	if !ok0 || !ok1 {
		return core.Rect{}, false
	}
	return core.RectFromCorners(x0, y0, x1, y1), true
}

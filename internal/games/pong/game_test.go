package pong

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pong3d/internal/config"
	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/physics"
	"github.com/vovakirdan/pong3d/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New(config.DefaultPongConfig())
	g.Reset(core.DefaultConfig())
	return g
}

func frame(delta float64) core.InputFrame {
	in := core.NewInputFrame()
	in.Delta = delta
	return in
}

func TestBuildSceneOrder(t *testing.T) {
	scene := BuildScene(config.DefaultPongConfig())
	all := scene.Colliders.All()
	require.Len(t, all, 4)

	names := []string{all[0].Name, all[1].Name, all[2].Name, all[3].Name}
	assert.Equal(t, []string{"player", "passive", "top", "bottom"}, names)

	assert.Same(t, scene.Player, scene.Colliders.ByRole(physics.RolePlayer))
	assert.Same(t, scene.Passive, scene.Colliders.ByRole(physics.RolePassive))

	assert.Equal(t, core.V3(-5, 0, 0), scene.Player.Position)
	assert.Equal(t, core.V3(1, 0, 0), scene.Player.Normal)
	assert.Equal(t, core.V3(-1, 0, 0), scene.Passive.Normal)
	assert.Equal(t, core.V3(0, -1, 0), all[2].Normal)
	assert.Equal(t, core.V3(0, 1, 0), all[3].Normal)
	assert.Equal(t, 1.5, scene.Passive.HalfHeight)

	assert.InDelta(t, 1.0, scene.Ball.Direction.Len(), 1e-12)
	assert.Equal(t, core.Vec3{}, scene.Ball.Position)
}

func TestClassicHasNoBorders(t *testing.T) {
	g := NewClassic(config.DefaultPongConfig())
	assert.Equal(t, 2, g.Scene().Colliders.Len())
	assert.Equal(t, IDClassic, g.ID())
}

func TestPointerMovesPlayerPaddle(t *testing.T) {
	g := newTestGame(t)

	in := frame(0)
	in.PushPointer(core.PointerEvent{Y: 0.8})
	in.PushPointer(core.PointerEvent{Y: -0.5})
	g.Step(in)

	assert.Equal(t, 1.5, g.Scene().Player.Position.Y, "last pointer wins, screen up is world up")
}

func TestPassivePaddleTracksBall(t *testing.T) {
	g := newTestGame(t)

	for i := 0; i < 600; i++ {
		g.Step(frame(1.0 / 60))
		require.Equal(t, g.Scene().Ball.Position.Y, g.Scene().Passive.Position.Y)
	}
}

func TestBallStaysInPlay(t *testing.T) {
	g := newTestGame(t)
	border := config.DefaultPongConfig().Border.OffsetY

	for i := 0; i < 60*60; i++ {
		g.Step(frame(1.0 / 60))
		y := g.Scene().Ball.Position.Y
		require.Less(t, y, border+0.5, "frame %d", i)
		require.Greater(t, y, -border-0.5, "frame %d", i)
	}

	state := g.State()
	assert.Greater(t, state.Hits, 0)
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(0.1))
	before := g.Scene().Ball.Position

	in := frame(0.1)
	in.Set(core.ActionPause)
	in.PushPointer(core.PointerEvent{Y: 1})
	res := g.Step(in)

	assert.True(t, res.State.Paused)
	assert.Equal(t, before, g.Scene().Ball.Position)
	assert.Equal(t, -3.0, g.Scene().Player.Position.Y)

	in = frame(0.1)
	in.Set(core.ActionPause)
	res = g.Step(in)
	assert.False(t, res.State.Paused)
	assert.NotEqual(t, before, g.Scene().Ball.Position)
}

func TestRestartServesAgain(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 30; i++ {
		g.Step(frame(1.0 / 60))
	}

	in := frame(0)
	in.Set(core.ActionRestart)
	g.Step(in)

	assert.Equal(t, core.Vec3{}, g.Scene().Ball.Position)
	assert.Equal(t, config.DefaultPongConfig().ServeDirection().Normalize(), g.Scene().Ball.Direction)
}

func TestResizeKeepsSimulationState(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 10; i++ {
		g.Step(frame(1.0 / 60))
	}
	before := g.Snapshot()

	g.Resize(120, 40)

	assert.Equal(t, before, g.Snapshot())
	assert.InDelta(t, 120.0/80.0, g.camera.Aspect(), 1e-12)
}

func TestDeterministicSnapshots(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t)
		for i := 0; i < 500; i++ {
			in := frame(1.0 / 60)
			if i%40 == 0 {
				in.PushPointer(core.PointerEvent{Y: float64(i%7)/7 - 0.5})
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, uint64(500), a.Tick)

	g := newTestGame(t)
	g.Step(frame(1.0 / 60))
	assert.NotEqual(t, a.Hash(), g.Snapshot().Hash())
}

func TestRenderDrawsScene(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	ball := screen.GetCell(40, 12)
	assert.Equal(t, BallChar, ball.Rune)
	assert.Equal(t, core.ColorBrightYellow, ball.Color)

	text := screen.String()
	assert.True(t, strings.ContainsRune(text, PaddleChar))
	assert.True(t, strings.ContainsRune(text, BorderChar))
	assert.Contains(t, screen.Row(0), "hits 0  resets 0")
}

func TestRenderPaused(t *testing.T) {
	g := newTestGame(t)
	in := frame(0)
	in.Set(core.ActionPause)
	g.Step(in)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")
}

func TestCameraProjectsOriginToCenter(t *testing.T) {
	c := NewCamera(75, 5)
	c.SetViewport(80, 24)

	x, y, ok := c.Project(core.Vec3{})
	require.True(t, ok)
	assert.Equal(t, 40, x)
	assert.Equal(t, 12, y)

	// Higher world Y is higher on screen
	_, yUp, _ := c.Project(core.V3(0, 1, 0))
	assert.Less(t, yUp, y)

	_, _, ok = c.Project(core.V3(0, 0, 6))
	assert.False(t, ok, "points behind the camera are not projected")
}

func TestRegisteredVariants(t *testing.T) {
	for _, id := range []string{IDArena, IDClassic} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

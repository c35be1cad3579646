// Package pong implements a two-paddle ball game laid out in 3D space.
// The left paddle follows the pointer, the right paddle mirrors the ball's
// height, and the top and bottom borders keep the ball in play.
package pong

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pong3d/internal/config"
	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/physics"
	"github.com/vovakirdan/pong3d/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BorderChar = '▀'
	BallChar   = '●'
	NetChar    = '┆'
)

// Game ids as registered with the registry.
const (
	IDArena   = "pong3d"
	IDClassic = "classic"
)

// Game wires the simulator to the platform: it drains input, steps the
// physics by the supplied delta and projects the scene onto the screen.
type Game struct {
	id    string
	title string
	cfg   config.PongConfig

	scene  *Scene
	sim    *physics.Simulator
	camera *Camera

	runtime core.RuntimeConfig
	paused  bool
	hits    int
	resets  int
	tick    uint64
	logger  *log.Logger
}

// Option customizes a Game.
type Option func(*Game)

// WithLogger sets the logger for simulation events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New creates the full arena game with borders as configured.
func New(cfg config.PongConfig, opts ...Option) *Game {
	return newGame(IDArena, "Pong 3D", cfg, opts...)
}

// NewClassic creates the border-less variant with two paddles only.
func NewClassic(cfg config.PongConfig, opts ...Option) *Game {
	cfg.Arena.Borders = false
	return newGame(IDClassic, "Pong 3D Classic", cfg, opts...)
}

func newGame(id, title string, cfg config.PongConfig, opts ...Option) *Game {
	g := &Game{
		id:     id,
		title:  title,
		cfg:    cfg,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.build()
	return g
}

// build creates a fresh scene, simulator and camera from the config.
func (g *Game) build() {
	g.scene = BuildScene(g.cfg)
	g.sim = physics.NewSimulator(g.scene.Ball, g.scene.Colliders, physics.Options{
		BoundX:           g.cfg.Arena.BoundX,
		InitialDirection: g.cfg.ServeDirection(),
		Penetration:      g.cfg.PenetrationPolicy(),
		Logger:           g.logger.With("game", g.id),
	})
	g.camera = NewCamera(g.cfg.Camera.FOV, g.cfg.Camera.Distance)
	g.camera.SetViewport(g.runtime.ScreenW, g.runtime.ScreenH)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.hits = 0
	g.resets = 0
	g.tick = 0
	g.build()
}

// Resize reconfigures the viewport. Simulation state is left untouched.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.camera.SetViewport(width, height)
}

// Scene exposes the simulated objects.
func (g *Game) Scene() *Scene {
	return g.scene
}

// Step applies queued input and advances the simulation by in.Delta seconds.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.sim.Reset()
		g.scene.Player.Position.Y = 0
		g.scene.Passive.Position.Y = 0
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	// Pointer moves land on the player paddle even while paused.
	if ev, ok := in.LastPointer(); ok {
		g.scene.Player.Position.Y = -ev.Y * g.cfg.Input.PointerScale
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	res := g.sim.Update(in.Delta)
	if res.Hit != nil {
		g.hits++
	}
	if res.Reset {
		g.resets++
	}

	return core.StepResult{State: g.State()}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Net down the middle
	if netX, _, ok := g.camera.Project(core.Vec3{}); ok {
		for y := 1; y < dst.Height()-1; y += 2 {
			dst.SetColor(netX, y, NetChar, core.ColorGray)
		}
	}

	for _, c := range g.scene.Colliders.All() {
		rect, ok := g.camera.ProjectRect(c.Position, c.HalfWidth, c.HalfHeight)
		if !ok {
			continue
		}
		switch c.Role {
		case physics.RolePlayer:
			dst.DrawRect(rect, PaddleChar, core.ColorCyan)
		case physics.RolePassive:
			dst.DrawRect(rect, PaddleChar, core.ColorMagenta)
		default:
			dst.DrawRect(rect, BorderChar, core.ColorGray)
		}
	}

	if x, y, ok := g.camera.Project(g.scene.Ball.Position); ok {
		dst.SetColor(x, y, BallChar, core.ColorBrightYellow)
	}

	hud := fmt.Sprintf("hits %d  resets %d", g.hits, g.resets)
	dst.DrawTextColor(1, 0, hud, core.ColorBrightWhite)
	dst.DrawTextColor(dst.Width()-len(g.title)-1, 0, g.title, core.ColorBrightWhite)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, title)
	dst.DrawTextCentered(box.Y+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Hits:   g.hits,
		Resets: g.resets,
		Paused: g.paused,
	}
}

var (
	cfgMu     sync.RWMutex
	sharedCfg = config.DefaultPongConfig()
)

// SetConfig sets the configuration used by games created through the registry.
func SetConfig(cfg config.PongConfig) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	sharedCfg = cfg
}

func currentConfig() config.PongConfig {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return sharedCfg
}

// Register the games with the registry
func init() {
	registry.Register(IDArena, func() registry.Game {
		return New(currentConfig())
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic(currentConfig())
	})
}

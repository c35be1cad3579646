package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/registry"
)

// helpRows is the number of terminal rows kept below the game for the help bar.
const helpRows = 1

// Model is the Bubble Tea model running a single game.
// Event handlers only queue input; the game sees it on the next tick.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	clock      *core.Clock
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	quitting   bool
}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithLogger sets the logger for platform events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// NewModel creates a new Bubble Tea model for the given game.
// maxDelta caps the seconds a single frame may advance the simulation.
func NewModel(game registry.Game, cfg core.RuntimeConfig, maxDelta float64, opts ...ModelOption) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:       game,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		clock:      core.NewClock(maxDelta),
		keys:       DefaultKeyMap(),
		help:       h,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.screen = core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH))
	return m
}

func gameRows(h int) int {
	return max(h-helpRows, 1)
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// gameConfig is the runtime config as seen by the game: the help bar is not
// part of its viewport.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameRows(cfg.ScreenH)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse queues the pointer position relative to the game viewport.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.inputFrame.PushPointer(core.PointerFromCell(msg.X, msg.Y, m.screen.Width(), m.screen.Height()))
	return m, nil
}

// handleResize adapts the viewport. The simulation carries on untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.game.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width

	m.logger.Debug("viewport resized", "cols", msg.Width, "rows", msg.Height)
	return m, nil
}

// handleTick advances the game by the real time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Delta = m.clock.Delta(now)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// State returns the game state after the most recent tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpBarStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, maxDelta float64, opts ...ModelOption) error {
	model := NewModel(game, cfg, maxDelta, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Paddle follows the pointer without a button held
	)

	_, err := p.Run()
	return err
}

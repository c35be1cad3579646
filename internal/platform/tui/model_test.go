package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pong3d/internal/core"
)

// fakeGame records what the platform feeds it.
type fakeGame struct {
	resets  int
	resizes [][2]int
	steps   []core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Resize(w, h int) { g.resizes = append(g.resizes, [2]int{w, h}) }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	cp := core.NewInputFrame()
	for a := range in.Actions {
		cp.Set(a)
	}
	cp.Pointer = append(cp.Pointer, in.Pointer...)
	cp.Delta = in.Delta
	g.steps = append(g.steps, cp)
	return core.StepResult{State: core.GameState{Hits: len(g.steps)}}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return core.GameState{} }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelQueuesInputUntilTick(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 21, TickRate: 60}, 0.1)

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 15, Action: tea.MouseActionMotion})
	assert.Empty(t, g.steps, "nothing reaches the game before a tick")

	start := time.Now()
	m, _ = update(t, m, TickMsg(start))
	require.Len(t, g.steps, 1)

	first := g.steps[0]
	assert.True(t, first.Has(core.ActionPause))
	require.Len(t, first.Pointer, 2)
	// 20 game rows: row 15 sits at 0.5 of the way down
	assert.Equal(t, core.PointerEvent{X: 0.5, Y: 0.5}, first.Pointer[1])
	assert.Zero(t, first.Delta, "first tick has no previous frame")

	_, _ = update(t, m, TickMsg(start.Add(20*time.Millisecond)))
	require.Len(t, g.steps, 2)
	assert.False(t, g.steps[1].Has(core.ActionPause), "input is cleared after each tick")
	assert.Empty(t, g.steps[1].Pointer)
	assert.InDelta(t, 0.02, g.steps[1].Delta, 1e-9)
}

func TestModelClampsLongFrames(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.DefaultConfig(), 0.1)

	start := time.Now()
	m, _ = update(t, m, TickMsg(start))
	_, _ = update(t, m, TickMsg(start.Add(3*time.Second)))

	require.Len(t, g.steps, 2)
	assert.Equal(t, 0.1, g.steps[1].Delta)
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.DefaultConfig(), 0.1)
	m.Init()
	require.Equal(t, 1, g.resets)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 1, g.resets, "resize must not restart the game")
	assert.Equal(t, [][2]int{{100, 29}}, g.resizes)
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 29, m.screen.Height())
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, core.DefaultConfig(), 0.1)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelView(t *testing.T) {
	m := NewModel(&fakeGame{}, core.DefaultConfig(), 0.1)

	view := m.View()
	assert.Contains(t, view, "fake")
	assert.Contains(t, view, "pause")
	assert.Contains(t, view, "quit")
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey('p'), core.ActionPause},
		{runeKey(' '), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, keys.Action(tc.msg))
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorCyan)
	s.DrawText(2, 0, "cd")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "cd")
}

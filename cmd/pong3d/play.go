package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/games/pong"
	"github.com/vovakirdan/pong3d/internal/platform/tui"
	"github.com/vovakirdan/pong3d/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Mouse      - Move your paddle (left)
  P/Space    - Pause
  R          - Serve again
  Q/Ctrl+C   - Quit

Modes:
  pong3d   - Paddles plus top and bottom borders (default)
  classic  - Paddles only; the ball escapes past the borders

Examples:
  pong3d play
  pong3d play classic
  pong3d play --fps 120 --log-file pong.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// gameID returns the mode named on the command line, or the default.
func gameID(args []string) (string, error) {
	id := pong.IDArena
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown mode %q; run 'pong3d list' to see available modes", id)
	}
	return id, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	id, err := gameID(args)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	log.Info("starting game", "mode", id, "cols", width, "rows", height, "fps", flagFPS)
	if err := tui.Run(game, cfg, gameConfig.Physics.MaxDelta); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

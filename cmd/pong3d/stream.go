package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/registry"
	"github.com/vovakirdan/pong3d/internal/stream"
)

var (
	flagStreamAddr string
	flagStreamPath string
)

var streamCmd = &cobra.Command{
	Use:   "stream [mode]",
	Short: "Publish frames over websocket",
	Long: `Run the simulation headless and publish every frame as JSON to
websocket clients, for renderers outside the terminal.

Clients receive one snapshot per tick (ball, colliders, counters) and
may send:
  {"type":"pointer","y":-0.5}   - move the player paddle (y in -1..1, top is -1)
  {"type":"pause"}              - toggle pause
  {"type":"restart"}            - serve again

Examples:
  pong3d stream
  pong3d stream classic --addr 127.0.0.1:9000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagStreamAddr, "addr", ":8080", "HTTP listen address (host:port)")
	streamCmd.Flags().StringVar(&flagStreamPath, "path", "/ws", "Websocket endpoint path")
}

func runStream(_ *cobra.Command, args []string) error {
	id, err := gameID(args)
	if err != nil {
		return err
	}

	sim, err := newStreamGame(id)
	if err != nil {
		return err
	}

	opts := stream.DefaultOptions()
	opts.Address = flagStreamAddr
	opts.Path = flagStreamPath
	opts.TickRate = flagFPS
	opts.MaxDelta = gameConfig.Physics.MaxDelta
	opts.Logger = log.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := stream.NewServer(sim, opts).Run(ctx); err != nil {
		return fmt.Errorf("stream server: %w", err)
	}
	return nil
}

// newStreamGame creates the game for a headless run. Nothing is drawn, so the
// viewport only needs to be valid.
func newStreamGame(id string) (stream.Simulation, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, fmt.Errorf("cannot create game: %w", err)
	}
	sim, ok := game.(stream.Simulation)
	if !ok {
		return nil, fmt.Errorf("mode %q cannot be streamed", id)
	}
	game.Reset(core.DefaultConfig())
	return sim, nil
}

// pong3d is a paddle-and-ball game simulated in 3D and drawn in the terminal.
//
// Usage:
//
//	pong3d list              - List available game modes
//	pong3d play [mode]       - Play in this terminal (default mode: pong3d)
//	pong3d serve             - Start SSH server for remote play
//	pong3d stream [mode]     - Publish frames over websocket for an external renderer
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Game config YAML (default: search ~/.pong3d, ./configs, embedded)
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Write logs to a file; play discards logs otherwise
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pong3d/internal/config"
	"github.com/vovakirdan/pong3d/internal/games/pong"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	// Loaded by the root command before any subcommand runs
	gameConfig config.PongConfig
	logFile    *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong3d",
	Short: "Pong 3D - a 3D paddle game in your terminal",
	Long: `Pong 3D simulates a ball bouncing between two paddles and two borders
in 3D space and draws it through a perspective camera in the terminal.
Move the mouse up and down to steer your paddle; the right paddle
follows the ball on its own.

Available commands:
  list     - Show all game modes
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  stream   - Publish frames over websocket

Examples:
  pong3d play
  pong3d play classic
  pong3d play --config ./my-pong.yaml
  pong3d serve --ssh :2222
  pong3d stream --addr :8080`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
}

// setup installs the default logger and loads the game config.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		logFile = f
		out = f
	case cmd == playCmd:
		// Logging to the terminal would tear the alt screen
		out = io.Discard
	}

	log.SetDefault(log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	}))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	gameConfig = cfg
	pong.SetConfig(cfg)

	log.Debug("config loaded", "path", flagConfig, "borders", cfg.Arena.Borders, "penetration", cfg.Physics.Penetration)
	return nil
}

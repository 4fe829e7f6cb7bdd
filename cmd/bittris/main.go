// bittris is a falling-block puzzle on a 10x12 board, played in the terminal.
//
// Usage:
//
//	bittris play [game]      - Play (bittris or bittris_seven)
//	bittris play --raw       - Play with the polling tcell frontend
//	bittris list             - List available variants
//	bittris pieces           - Print the piece catalog and rotation table
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--config <path>     - Use a custom config YAML
//	--log-file <path>   - Write logs to a file (the terminal belongs to the game)
//	--verbose           - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/bittris/internal/games/bittris"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagLogFile string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bittris",
	Short: "Bittris - falling blocks on a 10x12 board",
	Long: `Bittris drops pieces onto a 10 wide, 12 high board. Move and rotate
each piece before it locks; full rows clear. The run ends when a new
piece has no room to spawn.

Available commands:
  list     - Show the playable variants
  play     - Play a variant
  pieces   - Print every piece state and its rotation

Examples:
  bittris play
  bittris play bittris_seven
  bittris play --raw --seed 42
  bittris pieces`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config tick_rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(piecesCmd)
}

// newLogger returns a logger writing to w. A nil writer discards.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bittris",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogger builds the logger from the global flags. The returned close
// function is never nil.
func openLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return newLogger(nil, flagVerbose), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	//nolint:errcheck // Best-effort close on exit
	return newLogger(f, flagVerbose), func() { f.Close() }, nil
}

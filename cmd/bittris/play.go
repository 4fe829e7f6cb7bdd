package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bittris/internal/config"
	"github.com/vovakirdan/bittris/internal/core"
	"github.com/vovakirdan/bittris/internal/driver"
	"github.com/vovakirdan/bittris/internal/games/bittris"
	"github.com/vovakirdan/bittris/internal/platform/keys"
	"github.com/vovakirdan/bittris/internal/platform/raw"
	"github.com/vovakirdan/bittris/internal/platform/tui"
	"github.com/vovakirdan/bittris/internal/registry"
)

var flagRaw bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a variant",
	Long: `Start playing. The default variant is "bittris"; "bittris_seven" also
drops the O piece.

Controls (case-insensitive, rebindable in the config):
  A/Left     - Move left
  D/Right    - Move right
  S/Down     - Drop one row
  W/Up       - Rotate
  P          - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit
  ?          - Toggle help

The --raw frontend polls the terminal with tcell instead of running a
Bubble Tea program. It ends when the board tops out.

Examples:
  bittris play
  bittris play bittris_seven --fps 30
  bittris play --raw --seed 7
  bittris play --config ./my-bittris.yaml --log-file bittris.log --verbose`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRaw, "raw", false, "Use the polling tcell frontend")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "bittris"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bittris list' to see available variants.")
		os.Exit(1)
	}

	cfg, err := config.LoadBittris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if flagRaw {
		if err := playRaw(gameID, cfg, seed, logger); err != nil {
			closeLog()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = cfg.Timing.TickRate
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     seed,
	}

	bittris.SetConfigPath(flagConfig)
	bittris.SetLogger(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{
		Keys:   keys.FromConfig(cfg.Keys),
		Logger: logger,
	}
	if err := tui.Run(game, rc, opts); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playRaw runs one session through the polling loop and prints a summary.
func playRaw(gameID string, cfg config.BittrisConfig, seed int64, logger *log.Logger) error {
	opts := []bittris.SessionOption{bittris.WithLogger(logger)}
	if gameID == "bittris_seven" || cfg.Spawn.IncludeO {
		opts = append(opts, bittris.WithSevenKinds())
	}
	session := bittris.NewSession(rand.New(rand.NewSource(seed)), opts...)

	km := keys.FromConfig(cfg.Keys)
	terminal, err := raw.Open(bittris.HelpLine(cfg.Keys))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := driver.New(session, terminal, driver.SystemClock{}, terminal, driver.Config{
		Interval:  cfg.Timing.GravityInterval,
		PollDelay: cfg.Timing.PollDelay,
		Keys:      km,
		Logger:    logger,
	})
	runErr := loop.Run(ctx)
	terminal.Close()

	stats := session.Stats()
	switch {
	case errors.Is(runErr, bittris.ErrTopOut):
		fmt.Printf("Game over: %d pieces locked, %d lines cleared.\n", stats.Locked, stats.Lines)
		return nil
	case runErr != nil:
		return runErr
	}
	fmt.Printf("Stopped: %d pieces locked, %d lines cleared.\n", stats.Locked, stats.Lines)
	return nil
}

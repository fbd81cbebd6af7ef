package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Flags shared by play and menu
var (
	flagDifficulty string
	flagTheme      string
	flagName       string
	flagServer     string
)

// newLogger returns the logger used by the CLI and the servers.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// loadConfig reads snake.yaml and applies the --difficulty and --theme flags.
func loadConfig() (config.SnakeConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, "", err
	}

	preset := config.PresetForTick(cfg.Timing.TickMS)
	if flagDifficulty != "" {
		preset, err = config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, "", err
		}
		config.ApplySnakePreset(&cfg, preset)
	}

	if flagTheme != "" {
		if err := config.ApplyTheme(&cfg, flagTheme); err != nil {
			return cfg, "", err
		}
	}

	return cfg, preset, cfg.Validate()
}

// runtimeConfig sizes the game for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed
	return rc
}

// playerName returns --name, falling back to the login name.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

// localOptions builds the game options for a terminal player.
// The returned cleanup closes the score store.
func localOptions(logger *log.Logger) (tui.Options, func(), error) {
	cfg, preset, err := loadConfig()
	if err != nil {
		return tui.Options{}, nil, err
	}

	opts := tui.Options{
		Config:  cfg,
		Preset:  preset,
		Player:  playerName(),
		Sound:   true,
		Runtime: runtimeConfig(),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		logger.Warn("could not open scores database", "error", err)
	} else {
		opts.Store = store
		opts.Keeper = highscore.NewLocalKeeper(store)
	}

	if flagServer != "" {
		opts.Keeper = highscore.NewClient(flagServer)
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
	}
	return opts, cleanup, nil
}

// addPlayerFlags registers the flags shared by play and menu.
func addPlayerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, insane")
	flags.StringVar(&flagTheme, "theme", "", "Color theme: classic, neon, dark")
	flags.StringVar(&flagName, "name", "", "Name recorded with your high scores (default: login name)")
	flags.StringVar(&flagServer, "server", "", "High-score server URL (default: local database)")
}

// exitOnError prints err and exits.
func exitOnError(context string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
		os.Exit(1)
	}
}

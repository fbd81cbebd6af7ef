package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server that lets players connect remotely.

Each SSH session gets the full menu. Players are named after their SSH
user. All sessions share one high-score record.

Examples:
  snake serve
  snake serve --ssh :2222
  snake serve --redis redis://localhost:6379/0

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	flags := serveCmd.Flags()
	flags.StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH listen address")
	flags.StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (default: ~/.snake/host_key)")
	flags.DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Close idle sessions after this long")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Default difficulty preset")
	flags.StringVar(&flagTheme, "theme", "", "Default color theme")
	flags.StringVar(&flagRedisURL, "redis", "", "Share the record through Redis (redis://host:port/db)")
	flags.StringVar(&flagRedisKey, "redis-key", highscore.DefaultRedisKey, "Redis key holding the record")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("snake-ssh")

	cfg, preset, err := loadConfig()
	exitOnError("loading config", err)

	keeper, store, cleanup, err := sharedKeeper(logger)
	exitOnError("opening high-score store", err)
	defer cleanup()

	opts := tui.Options{
		Config: cfg,
		Preset: preset,
		Keeper: keeper,
		Store:  store,
		Sound:  true,
	}

	srv, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
	}, opts, logger)
	if err != nil {
		cleanup()
		exitOnError("creating SSH server", err)
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

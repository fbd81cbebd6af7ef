package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing Snake right away.

Controls:
  Arrows/WASD/HJKL - Steer (drag with the mouse works too)
  Enter/Space      - Start
  P/Esc            - Pause
  +/-              - Faster/slower
  R                - Restart
  B                - Leave (when paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 150ms per step
  normal - 125ms per step
  hard   - 100ms per step
  insane - 75ms per step, speeding up as you score

Examples:
  snake play
  snake play --difficulty hard --theme neon
  snake play --server http://localhost:8080 --name ann
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayerFlags(playCmd)
}

func runPlay(_ *cobra.Command, _ []string) {
	opts, cleanup, err := localOptions(newLogger("snake"))
	exitOnError("loading config", err)
	defer cleanup()

	if err := tui.Run(opts); err != nil {
		cleanup()
		exitOnError("running game", err)
	}
}

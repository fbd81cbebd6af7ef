package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Snake with the settings menu",
	Long: `Start Snake in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to change difficulty and
theme, Enter to play. After a game, press B to return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change setting
  Enter/Space     - Select
  Tab             - High scores
  Q               - Quit

Examples:
  snake menu
  snake menu --difficulty easy
  snake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	addPlayerFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	opts, cleanup, err := localOptions(newLogger("snake"))
	exitOnError("loading config", err)
	defer cleanup()

	if err := tui.RunSession(opts); err != nil {
		cleanup()
		exitOnError("running menu", err)
	}
}

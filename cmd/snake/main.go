// snake is the classic Snake game for the terminal.
//
// Usage:
//
//	snake play               - Play a game right away
//	snake menu               - Start the menu (difficulty, theme, high scores)
//	snake scores             - Show the local high-score table
//	snake serve              - Start SSH server for remote play
//	snake api                - Start the HTTP high-score server
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible food placement
//	--db <path>      - Set database path (default: ~/.snake/scores.db)
//	--config <path>  - Custom snake.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake in the terminal: eat food, grow, and avoid the walls and your own tail.

Available commands:
  play     - Play a game directly
  menu     - Pick difficulty and theme, view high scores
  scores   - Print the local high-score table
  serve    - Start SSH server for remote play
  api      - Start the HTTP high-score server

Examples:
  snake play --difficulty hard
  snake menu --theme neon
  snake serve --ssh :2222
  snake api --listen :8080 --redis redis://localhost:6379/0`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

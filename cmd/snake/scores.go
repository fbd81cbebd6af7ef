package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresServer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top local scores and play statistics.

With --server, print the record held by a high-score server instead.
With --clear, delete the local score history.

Examples:
  snake scores
  snake scores --limit 20
  snake scores --clear
  snake scores --server http://localhost:8080`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresServer, "server", "", "High-score server URL")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all local scores")
}

func runScores(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagScoresServer != "" {
		rec, err := highscore.NewClient(flagScoresServer).Best(ctx)
		exitOnError("fetching high score", err)
		if rec.Name == "" {
			fmt.Println("No high score recorded yet.")
			return
		}
		fmt.Printf("High score: %s - %d\n", rec.Name, rec.Score)
		return
	}

	store, err := storage.Open(flagDBPath)
	exitOnError("opening scores database", err)
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(ctx); err != nil {
			store.Close()
			exitOnError("clearing scores", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	if err := printScores(ctx, os.Stdout, store, flagScoresLimit); err != nil {
		store.Close()
		exitOnError("reading scores", err)
	}
}

// printScores writes the score table and the statistics footer.
func printScores(ctx context.Context, w io.Writer, store *storage.Store, limit int) error {
	scores, err := store.TopScores(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "High Scores - Snake")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'snake play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %-7s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %-7s  %s\n", "----", "----", "-----", "-----", "----")
	for i, entry := range scores {
		level := entry.Difficulty
		if level == "" {
			level = "-"
		}
		fmt.Fprintf(w, "  %-4d  %-16s  %-6d  %-7s  %s\n",
			i+1, entry.Name, entry.Score, level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d", best)
	if stats, err := store.GetStats(ctx); err == nil {
		fmt.Fprintf(w, "  Games: %d  Average: %.1f", stats.GamesCount, stats.AvgScore)
	}
	fmt.Fprintln(w)
	return nil
}

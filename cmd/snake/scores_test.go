package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrintScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, e := range []storage.ScoreEntry{
		{Name: "ann", Score: 4, Difficulty: "easy"},
		{Name: "bob", Score: 9, Difficulty: "hard"},
		{Name: "cid", Score: 2},
	} {
		if _, err := store.SaveScore(ctx, e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := printScores(ctx, &buf, store, 2); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "bob") || !strings.Contains(out, "ann") {
		t.Errorf("top two players missing:\n%s", out)
	}
	if strings.Contains(out, "cid") {
		t.Errorf("limit 2 should hide the third score:\n%s", out)
	}
	if !strings.Contains(out, "Best: 9") {
		t.Errorf("footer should show the best score:\n%s", out)
	}
	if !strings.Contains(out, "Games: 3") {
		t.Errorf("footer should count all games:\n%s", out)
	}
}

func TestPrintScoresAfterClear(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.SaveScore(ctx, storage.ScoreEntry{Name: "ann", Score: 4}); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearScores(ctx); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := printScores(ctx, &buf, store, 10); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("cleared store should print the empty message:\n%s", buf.String())
	}
}

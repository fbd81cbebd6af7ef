package highscore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// LocalKeeper keeps the record in the SQLite score table.
// Every submission is stored as history; the best row is the record.
type LocalKeeper struct {
	mu    sync.Mutex
	store *storage.Store
}

// NewLocalKeeper creates a keeper backed by store.
func NewLocalKeeper(store *storage.Store) *LocalKeeper {
	return &LocalKeeper{store: store}
}

// Best implements Keeper.
func (k *LocalKeeper) Best(ctx context.Context) (Record, error) {
	entry, ok, err := k.store.Best(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("highscore: local best: %w", err)
	}
	if !ok {
		return Record{}, nil
	}
	return Record{Name: entry.Name, Score: entry.Score}, nil
}

// Submit implements Keeper.
func (k *LocalKeeper) Submit(ctx context.Context, rec Record) (Record, bool, error) {
	return k.SubmitSession(ctx, rec, uuid.Nil, "")
}

// SubmitSession is Submit with the session ID and difficulty recorded in history.
func (k *LocalKeeper) SubmitSession(ctx context.Context, rec Record, session uuid.UUID, difficulty string) (Record, bool, error) {
	if err := rec.Validate(); err != nil {
		return Record{}, false, err
	}
	rec = rec.Normalized()

	k.mu.Lock()
	defer k.mu.Unlock()

	current, err := k.Best(ctx)
	if err != nil {
		return Record{}, false, err
	}

	_, err = k.store.SaveScore(ctx, storage.ScoreEntry{
		Name:       rec.Name,
		Score:      rec.Score,
		SessionID:  session,
		Difficulty: difficulty,
	})
	if err != nil {
		return Record{}, false, fmt.Errorf("highscore: local submit: %w", err)
	}

	if rec.Beats(current) {
		return rec, true, nil
	}
	return current, false, nil
}

// Package highscore keeps the single global high-score record.
//
// The record travels as {"name": string, "score": int}. Backends differ only
// in where the record lives: the local SQLite score table, a shared Redis key,
// or a remote high-score server reached over HTTP.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength caps player names, in runes.
const MaxNameLength = 32

// Record is the high-score wire format.
type Record struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ErrInvalidRecord is wrapped by every Validate failure.
var ErrInvalidRecord = errors.New("highscore: invalid record")

// Validate checks a submitted record.
func (r Record) Validate() error {
	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidRecord)
	case utf8.RuneCountInString(name) > MaxNameLength:
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidRecord, MaxNameLength)
	case r.Score < 0:
		return fmt.Errorf("%w: score must not be negative", ErrInvalidRecord)
	}
	return nil
}

// Normalized returns the record with surrounding whitespace trimmed from the name.
func (r Record) Normalized() Record {
	r.Name = strings.TrimSpace(r.Name)
	return r
}

// Beats reports whether r should replace current.
func (r Record) Beats(current Record) bool {
	return r.Score > current.Score
}

// Keeper stores the global high score.
type Keeper interface {
	// Best returns the current record. An empty store yields the zero Record.
	Best(ctx context.Context) (Record, error)

	// Submit offers a record. It replaces the current one only when the score
	// is strictly higher, and returns the record in effect afterwards along
	// with whether the submission took the top spot.
	Submit(ctx context.Context, rec Record) (best Record, won bool, err error)
}

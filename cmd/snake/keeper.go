package main

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Flags shared by serve and api
var (
	flagRedisURL string
	flagRedisKey string
)

// sharedKeeper opens the record store used by the servers: Redis when
// --redis is set, the local database otherwise. The store is returned for
// the scoreboard and may be nil when Redis is used and the database is
// unavailable.
func sharedKeeper(logger *log.Logger) (highscore.Keeper, *storage.Store, func(), error) {
	store, storeErr := storage.Open(flagDBPath)

	closeStore := func() {
		if store != nil {
			store.Close()
		}
	}

	if flagRedisURL != "" {
		if storeErr != nil {
			logger.Warn("could not open scores database", "error", storeErr)
			store = nil
		}
		rk, err := highscore.NewRedisKeeper(flagRedisURL, flagRedisKey)
		if err != nil {
			closeStore()
			return nil, nil, nil, err
		}
		logger.Info("using redis high-score store", "key", flagRedisKey)
		return rk, store, func() {
			rk.Close()
			closeStore()
		}, nil
	}

	if storeErr != nil {
		return nil, nil, nil, storeErr
	}
	return highscore.NewLocalKeeper(store), store, closeStore, nil
}

package highscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis"
)

// DefaultRedisKey is where the record is stored unless configured otherwise.
const DefaultRedisKey = "snake:highscore"

// maxRetries bounds optimistic-lock retries when submissions race.
const maxRetries = 32

// RedisKeeper keeps the record as a JSON string under one Redis key so that
// several servers can share it.
type RedisKeeper struct {
	client *redis.Client
	key    string
}

// NewRedisKeeper connects to connectURL (redis://host:port/db).
// The connection is tested immediately.
func NewRedisKeeper(connectURL, key string) (*RedisKeeper, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, fmt.Errorf("highscore: unable to parse redis URL: %w", err)
	}

	client := redis.NewClient(o)

	// Validate it's connected
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("highscore: unable to connect to redis: %w", err)
	}

	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisKeeper{client: client, key: key}, nil
}

// Close releases the Redis connection pool.
func (k *RedisKeeper) Close() error {
	return k.client.Close()
}

// Best implements Keeper.
func (k *RedisKeeper) Best(ctx context.Context) (Record, error) {
	rec, err := readRecord(k.client.WithContext(ctx).Get(k.key))
	if err != nil {
		return Record{}, fmt.Errorf("highscore: redis best: %w", err)
	}
	return rec, nil
}

// Submit implements Keeper. The compare-and-set runs under WATCH so that a
// concurrent higher score is never overwritten.
func (k *RedisKeeper) Submit(ctx context.Context, rec Record) (Record, bool, error) {
	if err := rec.Validate(); err != nil {
		return Record{}, false, err
	}
	rec = rec.Normalized()

	payload, err := json.Marshal(rec)
	if err != nil {
		return Record{}, false, fmt.Errorf("highscore: encode record: %w", err)
	}

	client := k.client.WithContext(ctx)
	for range maxRetries {
		var best Record
		var won bool

		err := client.Watch(func(tx *redis.Tx) error {
			current, err := readRecord(tx.Get(k.key))
			if err != nil {
				return err
			}
			if !rec.Beats(current) {
				best = current
				return nil
			}

			_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
				pipe.Set(k.key, payload, 0)
				return nil
			})
			if err != nil {
				return err
			}
			best, won = rec, true
			return nil
		}, k.key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return Record{}, false, fmt.Errorf("highscore: redis submit: %w", err)
		}
		return best, won, nil
	}

	return Record{}, false, fmt.Errorf("highscore: redis submit: too much contention on %s", k.key)
}

// readRecord decodes a GET result. A missing key is the zero Record.
func readRecord(cmd *redis.StringCmd) (Record, error) {
	data, err := cmd.Bytes()
	if err == redis.Nil {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

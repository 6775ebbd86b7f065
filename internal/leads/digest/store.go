// Package digest caches the daily follow-up digest in redis so dashboards
// and the scheduler share one computation per day.
package digest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "followups:digest:"
	// DefaultTTL keeps yesterday's digest around for late readers.
	DefaultTTL = 48 * time.Hour
)

// Digest is the per-day snapshot of the follow-up pipeline.
type Digest struct {
	Date        string         `json:"date"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Counts      map[string]int `json:"counts"`
	DueToday    []uuid.UUID    `json:"dueToday"`
	Overdue     []uuid.UUID    `json:"overdue"`
}

// Store persists digests keyed by calendar date.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps an existing redis client. A non-positive ttl means DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// NewClient builds a redis client from a redis:// or rediss:// URL.
func NewClient(redisURL string, tlsInsecure bool) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.TLSConfig != nil && tlsInsecure {
		opts.TLSConfig.InsecureSkipVerify = true
	}
	return redis.NewClient(opts), nil
}

func key(date string) string {
	return keyPrefix + date
}

func generationKey(date string) string {
	return keyPrefix + date + ":gen"
}

// Generation returns the invalidation counter for date. Read it before
// loading the leads a digest is built from and hand it to SaveIfCurrent.
func (s *Store) Generation(ctx context.Context, date string) (int64, error) {
	gen, err := s.client.Get(ctx, generationKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SaveIfCurrent stores d only while date's generation still equals gen.
// It reports false when an invalidation landed in between, in which case d
// was built from stale leads and nothing is written.
func (s *Store) SaveIfCurrent(ctx context.Context, d Digest, gen int64) (bool, error) {
	if d.Date == "" {
		return false, errors.New("digest date is required")
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return false, err
	}

	genKey := generationKey(d.Date)
	saved := false
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(d.Date), payload, s.ttl)
			return nil
		})
		if err == nil {
			saved = true
		}
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return saved, nil
}

// Get loads the digest for date. The bool is false when none is stored.
func (s *Store) Get(ctx context.Context, date string) (Digest, bool, error) {
	payload, err := s.client.Get(ctx, key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Digest{}, false, nil
	}
	if err != nil {
		return Digest{}, false, err
	}

	var d Digest
	if err := json.Unmarshal(payload, &d); err != nil {
		return Digest{}, false, fmt.Errorf("decode digest %s: %w", date, err)
	}
	return d, true, nil
}

// Invalidate drops the digest for date and bumps its generation, so a
// rebuild that started earlier cannot store its result afterwards.
func (s *Store) Invalidate(ctx context.Context, date string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(date))
		pipe.Expire(ctx, generationKey(date), s.ttl)
		pipe.Del(ctx, key(date))
		return nil
	})
	return err
}

package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "kanban:pending"
	DefaultTTL    = 24 * time.Hour
)

// RedisLedger stores entries as JSON strings with a TTL and keeps the ids
// of unresolved entries in a set so Pending does not scan the keyspace.
type RedisLedger struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type RedisOption func(*RedisLedger)

func WithPrefix(prefix string) RedisOption {
	return func(l *RedisLedger) { l.prefix = prefix }
}

// WithTTL sets how long an entry is kept after Begin, resolved or not.
func WithTTL(ttl time.Duration) RedisOption {
	return func(l *RedisLedger) { l.ttl = ttl }
}

func NewRedisLedger(client redis.UniversalClient, opts ...RedisOption) *RedisLedger {
	l := &RedisLedger{client: client, prefix: DefaultPrefix, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLedger) key(id string) string {
	return fmt.Sprintf("%s:%s", l.prefix, id)
}

func (l *RedisLedger) indexKey() string {
	return l.prefix
}

func (l *RedisLedger) Begin(ctx context.Context, e Entry) (Entry, error) {
	e = newEntry(e)
	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("encode pending entry: %w", err)
	}
	added, err := l.client.SetNX(ctx, l.key(e.ID), data, l.ttl).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("record pending entry: %w", err)
	}
	if !added {
		return Entry{}, ErrDuplicateEntry
	}
	if err := l.client.SAdd(ctx, l.indexKey(), e.ID).Err(); err != nil {
		// Without the index the entry would never be listed.
		err = fmt.Errorf("index pending entry: %w", err)
		if delErr := l.client.Del(ctx, l.key(e.ID)).Err(); delErr != nil {
			err = errors.Join(err, fmt.Errorf("remove unindexed entry %s: %w", e.ID, delErr))
		}
		return Entry{}, err
	}
	return e, nil
}

func (l *RedisLedger) Confirm(ctx context.Context, id string) error {
	return l.resolve(ctx, id, StatusConfirmed, "")
}

func (l *RedisLedger) Reject(ctx context.Context, id, reason string) error {
	return l.resolve(ctx, id, StatusRejected, reason)
}

func (l *RedisLedger) resolve(ctx context.Context, id string, status Status, reason string) error {
	key := l.key(id)
	err := l.client.Watch(ctx, func(tx *redis.Tx) error {
		e, err := decode(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		e, err = resolve(e, status, reason)
		if err != nil {
			return err
		}
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode pending entry: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			pipe.SRem(ctx, l.indexKey(), id)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("pending entry %s changed concurrently: %w", id, ErrAlreadyResolved)
	}
	return err
}

func (l *RedisLedger) Get(ctx context.Context, id string) (Entry, error) {
	return decode(l.client.Get(ctx, l.key(id)))
}

// Pending lists unresolved entries oldest first. Ids whose entry expired
// are dropped from the index.
func (l *RedisLedger) Pending(ctx context.Context) ([]Entry, error) {
	ids, err := l.client.SMembers(ctx, l.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list pending entries: %w", err)
	}
	out := make([]Entry, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = l.key(id)
	}
	values, err := l.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load pending entries: %w", err)
	}

	var stale []any
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("decode pending entry %s: %w", ids[i], err)
		}
		if e.Status == StatusPending {
			out = append(out, e)
		}
	}
	if len(stale) > 0 {
		if err := l.client.SRem(ctx, l.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("drop expired pending entries: %w", err)
		}
	}
	sortEntries(out)
	return out, nil
}

func decode(cmd *redis.StringCmd) (Entry, error) {
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrEntryNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("read pending entry: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decode pending entry: %w", err)
	}
	return e, nil
}

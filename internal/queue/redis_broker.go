package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBroker implements [Broker] on Redis lists: LPUSH to publish, BRPOP and
// RPOP to reserve, so messages leave a queue in publish order. Results are
// plain string keys with a TTL, kept on the result backend.
type RedisBroker struct {
	rdb     *redis.Client
	results *redis.Client
	prefix  string
}

// NewRedisBroker connects to the Redis servers at brokerURL and resultURL
// (e.g. "redis://redis:6379/0"). When both URLs are equal one connection pool
// serves messages and results. Keys are namespaced with name.
func NewRedisBroker(brokerURL, resultURL, name string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse broker URL: %w", err)
	}

	b := &RedisBroker{
		rdb:    redis.NewClient(opts),
		prefix: name + ":",
	}
	b.results = b.rdb

	if resultURL != "" && resultURL != brokerURL {
		resultOpts, err := redis.ParseURL(resultURL)
		if err != nil {
			_ = b.rdb.Close()
			return nil, fmt.Errorf("failed to parse result backend URL: %w", err)
		}
		b.results = redis.NewClient(resultOpts)
	}

	return b, nil
}

func (b *RedisBroker) queueKey(queue string) string {
	return b.prefix + "queue:" + queue
}

func (b *RedisBroker) resultKey(id string) string {
	return b.prefix + "result:" + id
}

func (b *RedisBroker) Publish(ctx context.Context, queue string, payload []byte) error {
	if err := b.rdb.LPush(ctx, b.queueKey(queue), payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}

func (b *RedisBroker) Reserve(ctx context.Context, queue string, max int, wait time.Duration) ([][]byte, error) {
	key := b.queueKey(queue)

	first, err := b.rdb.BRPop(ctx, wait, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reserve from %s: %w", queue, err)
	}

	// BRPOP replies with [key, value].
	messages := [][]byte{[]byte(first[1])}
	for len(messages) < max {
		next, err := b.rdb.RPop(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return messages, fmt.Errorf("reserve from %s: %w", queue, err)
		}
		messages = append(messages, next)
	}

	return messages, nil
}

func (b *RedisBroker) StoreResult(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	if err := b.results.Set(ctx, b.resultKey(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store result %s: %w", id, err)
	}
	return nil
}

func (b *RedisBroker) FetchResult(ctx context.Context, id string) ([]byte, error) {
	payload, err := b.results.Get(ctx, b.resultKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotReady
	}
	if err != nil {
		return nil, fmt.Errorf("fetch result %s: %w", id, err)
	}
	return payload, nil
}

// Ping verifies the broker and result backend connections.
func (b *RedisBroker) Ping(ctx context.Context) error {
	if err := b.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping broker: %w", err)
	}
	if b.sharedResults() {
		return nil
	}
	if err := b.results.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping result backend: %w", err)
	}
	return nil
}

// Close closes the Redis connections.
func (b *RedisBroker) Close() error {
	if b.sharedResults() {
		return b.rdb.Close()
	}
	return errors.Join(b.rdb.Close(), b.results.Close())
}

func (b *RedisBroker) sharedResults() bool {
	return b.results == b.rdb
}

package queue

//go:generate mockgen -source=broker.go -destination=../mock/broker_mock.go -package=mock

import (
	"context"
	"time"
)

// Broker transports task messages and stores their results.
type Broker interface {
	// Publish appends payload to the named queue.
	Publish(ctx context.Context, queue string, payload []byte) error

	// Reserve removes up to max messages from the named queue, in publish
	// order. It waits at most wait for the first one and returns an empty
	// slice when none arrived.
	Reserve(ctx context.Context, queue string, max int, wait time.Duration) ([][]byte, error)

	// StoreResult saves payload under the task id for ttl.
	StoreResult(ctx context.Context, id string, payload []byte, ttl time.Duration) error

	// FetchResult returns the payload stored for the task id, or
	// ErrResultNotReady.
	FetchResult(ctx context.Context, id string) ([]byte, error)

	Ping(ctx context.Context) error
	Close() error
}

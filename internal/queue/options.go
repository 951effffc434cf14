package queue

import (
	"runtime"
	"time"

	"github.com/MKhiriev/road-condition-analyzer/internal/config"
)

const (
	DefaultName               = "roadcondition"
	DefaultQueue              = "default"
	DefaultExchange           = "roadcondition"
	DefaultRoutingKey         = "roadcondition.default"
	DefaultPrefetchMultiplier = 1
	DefaultResultTTL          = 24 * time.Hour
	DefaultPollTimeout        = time.Second
)

// Options configures the task queue client and its workers.
type Options struct {
	// Name identifies the application and prefixes every broker key.
	Name string

	BrokerURL        string
	ResultBackendURL string

	DefaultQueue      string
	DefaultExchange   string
	DefaultRoutingKey string

	// PrefetchMultiplier is how many messages a worker slot reserves per
	// round trip. With 1 a slot never holds more than the task it is running.
	PrefetchMultiplier int

	// Concurrency is the number of worker slots.
	Concurrency int

	// ResultTTL is how long stored results are kept.
	ResultTTL time.Duration

	// PollTimeout bounds a single blocking reserve, so idle workers notice
	// cancellation.
	PollTimeout time.Duration
}

// OptionsFromSettings returns the queue configuration for the resolved
// settings. Broker and result backend both use REDIS_URL.
func OptionsFromSettings(settings *config.Settings) Options {
	return Options{
		Name:               DefaultName,
		BrokerURL:          settings.RedisURL(),
		ResultBackendURL:   settings.RedisURL(),
		DefaultQueue:       DefaultQueue,
		DefaultExchange:    DefaultExchange,
		DefaultRoutingKey:  DefaultRoutingKey,
		PrefetchMultiplier: DefaultPrefetchMultiplier,
		Concurrency:        runtime.NumCPU(),
		ResultTTL:          DefaultResultTTL,
		PollTimeout:        DefaultPollTimeout,
	}
}

// Option adjusts Options built from settings.
type Option func(*Options)

// WithConcurrency sets the number of worker slots.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// prefetch returns the per-slot reservation size, never below one.
func (o Options) prefetch() int {
	return max(o.PrefetchMultiplier, 1)
}

func (o Options) slots() int {
	return max(o.Concurrency, 1)
}

func (o Options) pollTimeout() time.Duration {
	if o.PollTimeout <= 0 {
		return DefaultPollTimeout
	}
	return o.PollTimeout
}

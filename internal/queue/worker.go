package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
)

// reserveBackoff is the pause after a failed reserve before the slot retries.
const reserveBackoff = time.Second

// Worker consumes the default queue with Options.Concurrency slots. Each slot
// reserves Options.PrefetchMultiplier messages at a time and runs them before
// reserving again.
type Worker struct {
	client *Client
	logger *logger.Logger
}

func NewWorker(client *Client, logger *logger.Logger) *Worker {
	return &Worker{
		client: client,
		logger: logger,
	}
}

// Run blocks until ctx is cancelled. Messages already reserved are finished
// before it returns.
func (w *Worker) Run(ctx context.Context) error {
	opts := w.client.Options()
	w.logger.Info().
		Str("queue", opts.DefaultQueue).
		Int("concurrency", opts.slots()).
		Int("prefetch", opts.prefetch()).
		Strs("tasks", w.client.Tasks()).
		Msg("worker started")

	var wg sync.WaitGroup
	for slot := range opts.slots() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.consume(ctx, slot)
		}()
	}
	wg.Wait()

	w.logger.Info().Msg("worker stopped")
	return nil
}

func (w *Worker) consume(ctx context.Context, slot int) {
	opts := w.client.Options()
	log := w.logger.With().Int("slot", slot).Logger()

	for ctx.Err() == nil {
		payloads, err := w.client.broker.Reserve(ctx, opts.DefaultQueue, opts.prefetch(), opts.pollTimeout())
		for _, payload := range payloads {
			w.process(ctx, payload)
		}

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Err(err).Msg("error reserving messages")
			select {
			case <-ctx.Done():
			case <-time.After(reserveBackoff):
			}
		}
	}
}

// process executes one reserved message and stores its result. Results are
// stored with a context detached from cancellation so that a shutdown does not
// lose the outcome of a task that already ran.
func (w *Worker) process(ctx context.Context, payload []byte) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		w.logger.Err(err).Bytes("payload", payload).Msg("dropping malformed message")
		return
	}

	log := w.logger.With().Str("task", msg.Task).Str("task_id", msg.ID).Logger()

	res := w.client.Execute(ctx, msg)
	if !res.Succeeded() {
		log.Warn().Str("error", res.Error).Msg("task failed")
	} else {
		log.Debug().Msg("task succeeded")
	}

	if msg.ID == "" {
		return
	}

	encoded, err := json.Marshal(res)
	if err != nil {
		log.Err(err).Msg("error encoding result")
		return
	}

	storeCtx := context.WithoutCancel(ctx)
	if err := w.client.broker.StoreResult(storeCtx, msg.ID, encoded, w.client.Options().ResultTTL); err != nil {
		log.Err(err).Msg("error storing result")
	}
}

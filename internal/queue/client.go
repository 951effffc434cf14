package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
	"github.com/google/uuid"
)

// TaskFunc runs one task invocation. The returned value is stored as the
// task result and must be JSON-serializable.
type TaskFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Client sends tasks to the broker, reads their results and executes the
// tasks registered with it.
type Client struct {
	opts   Options
	broker Broker

	mu    sync.RWMutex
	tasks map[string]TaskFunc

	logger *logger.Logger
}

func NewClient(opts Options, broker Broker, logger *logger.Logger) *Client {
	logger.Info().
		Str("name", opts.Name).
		Str("queue", opts.DefaultQueue).
		Msg("task queue client created")

	return &Client{
		opts:   opts,
		broker: broker,
		tasks:  make(map[string]TaskFunc),
		logger: logger,
	}
}

func (c *Client) Options() Options {
	return c.opts
}

// Register binds fn to the task name.
func (c *Client) Register(name string, fn TaskFunc) error {
	if name == "" {
		return ErrEmptyTaskName
	}
	if fn == nil {
		return ErrNilTask
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tasks[name]; ok {
		return fmt.Errorf("%w: %s", ErrTaskAlreadyRegistered, name)
	}
	c.tasks[name] = fn
	return nil
}

// Tasks returns the registered task names in sorted order.
func (c *Client) Tasks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tasks))
	for name := range c.tasks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Client) lookup(name string) (TaskFunc, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn, ok := c.tasks[name]
	return fn, ok
}

// Send publishes an invocation of the named task to the default queue and
// returns its id. The task does not have to be registered with this client;
// a worker process may own it.
func (c *Client) Send(ctx context.Context, name string, args any) (string, error) {
	if name == "" {
		return "", ErrEmptyTaskName
	}

	msg := Message{
		ID:         uuid.NewString(),
		Task:       name,
		Queue:      c.opts.DefaultQueue,
		Exchange:   c.opts.DefaultExchange,
		RoutingKey: c.opts.DefaultRoutingKey,
		SentAt:     time.Now().UTC(),
	}

	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return "", fmt.Errorf("error encoding args of %s: %w", name, err)
		}
		msg.Args = raw
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("error encoding message: %w", err)
	}

	if err := c.broker.Publish(ctx, msg.Queue, payload); err != nil {
		return "", err
	}

	c.logger.Debug().Str("task", name).Str("task_id", msg.ID).Msg("task sent")
	return msg.ID, nil
}

// Result returns the stored outcome of the task, or ErrResultNotReady.
func (c *Client) Result(ctx context.Context, id string) (Result, error) {
	payload, err := c.broker.FetchResult(ctx, id)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return Result{}, fmt.Errorf("error decoding result %s: %w", id, err)
	}
	return res, nil
}

// Execute runs the task named by msg. Unknown tasks, task errors and panics
// all yield a failure result instead of an error.
func (c *Client) Execute(ctx context.Context, msg Message) Result {
	res := Result{TaskID: msg.ID, Task: msg.Task}

	value, err := c.run(ctx, msg)
	res.Finished = time.Now().UTC()
	if err != nil {
		res.Status = StatusFailure
		res.Error = err.Error()
		return res
	}

	raw, err := json.Marshal(value)
	if err != nil {
		res.Status = StatusFailure
		res.Error = fmt.Sprintf("error encoding result: %v", err)
		return res
	}

	res.Status = StatusSuccess
	res.Value = raw
	return res
}

func (c *Client) run(ctx context.Context, msg Message) (value any, err error) {
	fn, ok := c.lookup(msg.Task)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, msg.Task)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", msg.Task, r)
		}
	}()

	return fn(ctx, msg.Args)
}

// Ping verifies the broker connection.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.broker.Ping(ctx); err != nil {
		return fmt.Errorf("broker ping: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.broker.Close()
}


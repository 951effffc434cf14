package queue

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

var testRedisURL string

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container, integration tests skipped: %v\n", err)
		os.Exit(m.Run())
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
	}
	os.Exit(code)
}

func setupTestBroker(t *testing.T) *RedisBroker {
	t.Helper()
	if testRedisURL == "" {
		t.Skip("skipping integration test")
	}

	broker, err := NewRedisBroker(testRedisURL, testRedisURL, "test")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, broker.rdb.FlushAll(ctx).Err())

	t.Cleanup(func() {
		_ = broker.Close()
	})

	return broker
}

func TestRedisBroker_Integration_PublishReserveOrder(t *testing.T) {
	broker := setupTestBroker(t)
	ctx := context.Background()

	for _, m := range []string{"first", "second", "third"} {
		require.NoError(t, broker.Publish(ctx, "default", []byte(m)))
	}

	got, err := broker.Reserve(ctx, "default", 1, time.Second)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("first")}, got)

	got, err = broker.Reserve(ctx, "default", 5, time.Second)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("second"), []byte("third")}, got)
}

func TestRedisBroker_Integration_ReserveEmptyQueue(t *testing.T) {
	broker := setupTestBroker(t)

	got, err := broker.Reserve(context.Background(), "empty", 1, time.Second)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisBroker_Integration_Results(t *testing.T) {
	broker := setupTestBroker(t)
	ctx := context.Background()

	_, err := broker.FetchResult(ctx, "missing")
	assert.ErrorIs(t, err, ErrResultNotReady)

	require.NoError(t, broker.StoreResult(ctx, "id", []byte(`{"status":"success"}`), time.Minute))

	got, err := broker.FetchResult(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"success"}`, string(got))

	ttl, err := broker.rdb.TTL(ctx, broker.resultKey("id")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisBroker_Integration_SeparateResultBackend(t *testing.T) {
	if testRedisURL == "" {
		t.Skip("skipping integration test")
	}

	broker, err := NewRedisBroker(testRedisURL+"/0", testRedisURL+"/1", "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = broker.Close() })

	ctx := context.Background()
	require.NoError(t, broker.rdb.FlushAll(ctx).Err())
	require.NoError(t, broker.Ping(ctx))

	require.NoError(t, broker.StoreResult(ctx, "split", []byte(`{"status":"success"}`), time.Minute))

	exists, err := broker.results.Exists(ctx, broker.resultKey("split")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	exists, err = broker.rdb.Exists(ctx, broker.resultKey("split")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	got, err := broker.FetchResult(ctx, "split")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"success"}`, string(got))
}

func TestRedisBroker_Integration_HealthCheckRoundTrip(t *testing.T) {
	broker := setupTestBroker(t)

	opts := testOptions()
	opts.PollTimeout = time.Second
	client := NewClient(opts, broker, logger.Nop())
	require.NoError(t, RegisterHealthCheck(client))
	require.NoError(t, client.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- NewWorker(client, logger.Nop()).Run(ctx) }()

	id, err := client.Send(ctx, HealthCheckTaskName, nil)
	require.NoError(t, err)

	var res Result
	require.Eventually(t, func() bool {
		res, err = client.Result(ctx, id)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.JSONEq(t, `{"status":"ok"}`, string(res.Value))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/road-condition-analyzer/internal/config"
	"github.com/MKhiriev/road-condition-analyzer/internal/logger"
)

// HealthCheckTaskName is the readiness task every worker registers.
const HealthCheckTaskName = "health.check"

// HealthCheckResult is the value returned by the readiness task.
type HealthCheckResult struct {
	Status string `json:"status"`
}

func healthCheck(context.Context, json.RawMessage) (any, error) {
	return HealthCheckResult{Status: "ok"}, nil
}

func RegisterHealthCheck(client *Client) error {
	return client.Register(HealthCheckTaskName, healthCheck)
}

// NewFromSettings connects a client to the broker and result backend named by
// the settings (both REDIS_URL) and registers
// the readiness task. It does not contact Redis; call Ping for that.
func NewFromSettings(settings *config.Settings, logger *logger.Logger, options ...Option) (*Client, error) {
	opts := OptionsFromSettings(settings)
	for _, option := range options {
		option(&opts)
	}

	broker, err := NewRedisBroker(opts.BrokerURL, opts.ResultBackendURL, opts.Name)
	if err != nil {
		return nil, fmt.Errorf("error creating task broker: %w", err)
	}

	client := NewClient(opts, broker, logger)
	if err := RegisterHealthCheck(client); err != nil {
		_ = broker.Close()
		return nil, err
	}

	return client, nil
}

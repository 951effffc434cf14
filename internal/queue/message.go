package queue

import (
	"encoding/json"
	"time"
)

// Message is the envelope published to the broker for one task invocation.
type Message struct {
	ID         string          `json:"id"`
	Task       string          `json:"task"`
	Args       json.RawMessage `json:"args,omitempty"`
	Queue      string          `json:"queue"`
	Exchange   string          `json:"exchange"`
	RoutingKey string          `json:"routing_key"`
	SentAt     time.Time       `json:"sent_at"`
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the stored outcome of one executed message.
type Result struct {
	TaskID   string          `json:"task_id"`
	Task     string          `json:"task"`
	Status   Status          `json:"status"`
	Value    json.RawMessage `json:"value,omitempty"`
	Error    string          `json:"error,omitempty"`
	Finished time.Time       `json:"finished"`
}

func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Decode unmarshals the task's return value into v.
func (r Result) Decode(v any) error {
	return json.Unmarshal(r.Value, v)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package queue

import "errors"

var (
	// ErrResultNotReady is returned by Result while a task has not finished
	// or its result has expired.
	ErrResultNotReady = errors.New("task result is not ready")

	// ErrUnknownTask is recorded in the failure result of a message whose
	// task name is not registered with the executing client.
	ErrUnknownTask = errors.New("unknown task")

	ErrEmptyTaskName         = errors.New("task name is empty")
	ErrTaskAlreadyRegistered = errors.New("task is already registered")
	ErrNilTask               = errors.New("task func is nil")
)

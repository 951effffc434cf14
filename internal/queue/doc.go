// Package queue is the background task queue shared by the API and worker
// processes.
//
// Messages are JSON envelopes published to a named Redis list; workers
// reserve them one at a time per slot, run the registered task and store the
// outcome under the task id for later retrieval. The broker and the result
// backend both live at REDIS_URL.
package queue

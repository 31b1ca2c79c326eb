package progress

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("job not found")

type State string

const (
	StatePending    State = "pending"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Job is the externally visible state of one document run.
type Job struct {
	ID          string `json:"id"`
	State       State  `json:"state"`
	Stage       string `json:"stage,omitempty"`
	ChunksDone  int    `json:"chunks_done"`
	ChunksTotal int    `json:"chunks_total"`
	Error       string `json:"error,omitempty"`
}

// Tracker stores job state keyed by job ID so clients can poll while a
// document is being processed.
type Tracker interface {
	Update(ctx context.Context, job Job) error
	Get(ctx context.Context, id string) (Job, error)
}

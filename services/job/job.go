// Package job keeps the state of detached extraction tasks in redis
// so callers can poll the outcome of work they chose not to await.
package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

type State struct {
	FootageID uuid.UUID `json:"footage_id"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Clips     int       `json:"clips"`
	UpdatedAt time.Time `json:"updated_at"`
}

const stateTTL = 24 * time.Hour

type Storage struct {
	cl redis.UniversalClient
}

func NewStorage(cl redis.UniversalClient) *Storage {
	if cl == nil {
		return nil
	}
	return &Storage{cl: cl}
}

func key(id uuid.UUID) string {
	return "job:extract:" + id.String()
}

func (s *Storage) Set(ctx context.Context, st *State) error {
	if s == nil {
		return nil
	}
	st.UpdatedAt = time.Now()
	b, err := json.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "failed to marshal job state")
	}
	if err := s.cl.Set(ctx, key(st.FootageID), b, stateTTL).Err(); err != nil {
		return errors.Wrap(err, "failed to store job state")
	}
	return nil
}

// Get returns the stored state or nil when the job is unknown or
// already expired.
func (s *Storage) Get(ctx context.Context, id uuid.UUID) (*State, error) {
	if s == nil {
		return nil, nil
	}
	b, err := s.cl.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job state")
	}
	st := &State{}
	if err := json.Unmarshal(b, st); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal job state")
	}
	return st, nil
}

package jobtrack

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redisc "github.com/slipframe/core/internal/pkg/redis"
)

// JobStatus represents the lifecycle state of an export job.
type JobStatus string

const (
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job records one export run so the editor can poll its outcome.
type Job struct {
	ID          string    `json:"id"`
	CarouselID  string    `json:"carousel_id"`
	Status      JobStatus `json:"status"`
	TotalSlides int       `json:"total_slides"`
	FailedCount int       `json:"failed_count"`
	Artifact    string    `json:"artifact,omitempty"` // filename or uploaded URL
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	keyPrefix   = "sf:export:job:"
	inflightKey = "sf:export:inflight:"
	jobTTL      = 24 * time.Hour
	inflightTTL = 10 * time.Minute
)

// ErrExportInFlight is returned when a deck already has an active export.
var ErrExportInFlight = errors.New("an export for this carousel is already running")

// Tracker manages the Redis-backed export job records and the per-deck
// in-flight guard.
type Tracker struct {
	rc *redisc.Client
}

func New(rc *redisc.Client) *Tracker {
	return &Tracker{rc: rc}
}

// Begin acquires the per-deck in-flight lock and records a running job.
// At most one export job is active per carousel at any time.
func (t *Tracker) Begin(ctx context.Context, carouselID string, totalSlides int) (*Job, error) {
	ok, err := t.rc.SetNX(ctx, inflightKey+carouselID, 1, inflightTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrExportInFlight
	}

	job := &Job{
		ID:          uuid.New().String(),
		CarouselID:  carouselID,
		Status:      JobRunning,
		TotalSlides: totalSlides,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := t.store(ctx, job); err != nil {
		t.rc.Del(ctx, inflightKey+carouselID)
		return nil, err
	}
	return job, nil
}

// Finish releases the in-flight lock and stores the final job state.
func (t *Tracker) Finish(ctx context.Context, job *Job, status JobStatus, failedCount int, artifact, errMsg string) {
	job.Status = status
	job.FailedCount = failedCount
	job.Artifact = artifact
	job.Error = errMsg
	job.UpdatedAt = time.Now()
	_ = t.store(ctx, job)
	_ = t.rc.Del(ctx, inflightKey+job.CarouselID)
}

// Get retrieves a job by ID. Returns (nil, nil) when unknown or expired.
func (t *Tracker) Get(ctx context.Context, id string) (*Job, error) {
	raw, err := t.rc.Get(ctx, keyPrefix+id)
	if err != nil || raw == "" {
		return nil, err
	}
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (t *Tracker) store(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return t.rc.Set(ctx, keyPrefix+job.ID, data, jobTTL)
}

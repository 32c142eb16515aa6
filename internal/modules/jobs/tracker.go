package jobs

import (
	"context"
	"errors"
	"sync"

	"studyspot/internal/domain"
	"studyspot/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUnknownJob        = errors.New("unknown job")
	ErrInvalidTransition = errors.New("invalid job transition")
)

// Tracker is the job-status store: a concurrency-safe map keyed by job id
// with a per-key compare-and-swap transition, written through to the job
// table so a restart does not lose terminal results.
type Tracker struct {
	jobs    sync.Map // uuid.UUID -> *trackedJob
	jobRepo *repository.JobRepository
}

type trackedJob struct {
	mu  sync.Mutex
	job domain.GeocodeJob
}

func NewTracker(jobRepo *repository.JobRepository) *Tracker {
	return &Tracker{jobRepo: jobRepo}
}

// Create registers a fresh pending job and persists it before returning, so
// the Location URL handed to the client is always pollable.
func (t *Tracker) Create(ctx context.Context, spotID uuid.UUID) (*domain.GeocodeJob, error) {
	job := domain.GeocodeJob{
		ID:     uuid.New(),
		SpotID: spotID,
		Status: domain.JobPending,
	}
	if err := t.jobRepo.Create(ctx, &job); err != nil {
		return nil, err
	}
	t.jobs.Store(job.ID, &trackedJob{job: job})

	snapshot := job
	return &snapshot, nil
}

// Get returns a snapshot of the job. Jobs created before a restart are only
// in the table, so fall back to it when the map misses.
func (t *Tracker) Get(ctx context.Context, id uuid.UUID) (*domain.GeocodeJob, error) {
	if v, ok := t.jobs.Load(id); ok {
		tj := v.(*trackedJob)
		tj.mu.Lock()
		snapshot := tj.job
		tj.mu.Unlock()
		return &snapshot, nil
	}
	return t.jobRepo.GetByID(ctx, id)
}

// Transition moves a job to next iff the state machine allows it from the
// job's current status; the check and the write are atomic per key, and the
// row is updated while the key is still held so reads never see a newer
// in-memory status with an older persisted one. apply runs inside the same
// critical section to attach results or an error reason.
func (t *Tracker) Transition(ctx context.Context, id uuid.UUID, next domain.JobStatus, apply func(*domain.GeocodeJob)) error {
	v, ok := t.jobs.Load(id)
	if !ok {
		return ErrUnknownJob
	}
	tj := v.(*trackedJob)

	tj.mu.Lock()
	defer tj.mu.Unlock()

	if !tj.job.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	tj.job.Status = next
	if apply != nil {
		apply(&tj.job)
	}

	snapshot := tj.job
	return t.jobRepo.Update(ctx, &snapshot)
}

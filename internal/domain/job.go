package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobComplete JobStatus = "complete"
	JobFailed   JobStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s JobStatus) Terminal() bool {
	return s == JobComplete || s == JobFailed
}

// CanTransitionTo enforces the forward-only job state machine:
// pending -> running -> {complete, failed}.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobPending:
		return next == JobRunning
	case JobRunning:
		return next == JobComplete || next == JobFailed
	default:
		return false
	}
}

type GeocodeJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SpotID    uuid.UUID `gorm:"type:uuid;index" json:"spot_id"`
	Status    JobStatus `gorm:"not null" json:"status"`
	Error     string    `json:"error,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

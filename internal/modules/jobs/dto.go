package jobs

import (
	"studyspot/internal/domain"

	"github.com/google/uuid"
)

type JobResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type JobResponse struct {
	ID     uuid.UUID        `json:"id"`
	SpotID uuid.UUID        `json:"spot_id"`
	Status domain.JobStatus `json:"status"`
	Result *JobResult       `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func buildJobResponse(job *domain.GeocodeJob) JobResponse {
	res := JobResponse{
		ID:     job.ID,
		SpotID: job.SpotID,
		Status: job.Status,
		Error:  job.Error,
	}
	// The result payload exists only on completed jobs.
	if job.Status == domain.JobComplete && job.Latitude != nil && job.Longitude != nil {
		res.Result = &JobResult{Latitude: *job.Latitude, Longitude: *job.Longitude}
	}
	return res
}

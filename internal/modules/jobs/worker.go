package jobs

import (
	"context"
	"errors"
	"log"

	"studyspot/internal/domain"
	"studyspot/internal/geocode"
	"studyspot/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Worker resolves geocode jobs to a terminal state. Each job runs on its own
// goroutine started by the enqueueing handler; the handler itself never
// waits on the provider.
type Worker struct {
	tracker  *Tracker
	spotRepo *repository.SpotRepository
	geocoder geocode.Geocoder
}

func NewWorker(tracker *Tracker, spotRepo *repository.SpotRepository, geocoder geocode.Geocoder) *Worker {
	return &Worker{
		tracker:  tracker,
		spotRepo: spotRepo,
		geocoder: geocoder,
	}
}

// Run drives one job: pending -> running -> complete|failed. Provider
// errors are recorded on the job, never returned to a caller.
func (w *Worker) Run(jobID uuid.UUID) {
	ctx := context.Background()

	if err := w.tracker.Transition(ctx, jobID, domain.JobRunning, nil); err != nil {
		log.Printf("geocode_worker job=%s start_failed error=%q", jobID, err)
		return
	}

	job, err := w.tracker.Get(ctx, jobID)
	if err != nil {
		w.fail(ctx, jobID, "job vanished before processing")
		return
	}

	spot, err := w.spotRepo.GetByID(ctx, job.SpotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.fail(ctx, jobID, "spot no longer exists")
		} else {
			w.fail(ctx, jobID, "failed to load spot")
		}
		return
	}

	addr := spot.Address
	lat, lng, err := w.geocoder.Geocode(ctx, geocode.FormatAddress(addr.Street, addr.City, addr.State, addr.Zip))
	if err != nil {
		w.fail(ctx, jobID, err.Error())
		return
	}

	if err := w.spotRepo.UpdateCoordinates(ctx, job.SpotID, lat, lng); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.fail(ctx, jobID, "spot no longer exists")
		} else {
			w.fail(ctx, jobID, "failed to store coordinates")
		}
		return
	}

	err = w.tracker.Transition(ctx, jobID, domain.JobComplete, func(j *domain.GeocodeJob) {
		j.Latitude = &lat
		j.Longitude = &lng
	})
	if err != nil {
		log.Printf("geocode_worker job=%s complete_failed error=%q", jobID, err)
		return
	}

	log.Printf("geocode_worker job=%s resolved lat=%f lng=%f", jobID, lat, lng)
}

func (w *Worker) fail(ctx context.Context, jobID uuid.UUID, reason string) {
	err := w.tracker.Transition(ctx, jobID, domain.JobFailed, func(j *domain.GeocodeJob) {
		j.Error = reason
	})
	if err != nil {
		log.Printf("geocode_worker job=%s fail_failed error=%q", jobID, err)
		return
	}
	log.Printf("geocode_worker job=%s failed reason=%q", jobID, reason)
}

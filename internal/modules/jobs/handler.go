package jobs

import (
	"errors"
	"net/http"

	"studyspot/internal/pkg/response"
	"studyspot/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	tracker  *Tracker
	worker   *Worker
	spotRepo *repository.SpotRepository
}

func NewHandler(tracker *Tracker, worker *Worker, spotRepo *repository.SpotRepository) *Handler {
	return &Handler{
		tracker:  tracker,
		worker:   worker,
		spotRepo: spotRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/studyspots/:id/geocode", h.EnqueueGeocode)
	r.GET("/jobs/:id", h.GetJob)
}

// EnqueueGeocode handles POST /studyspots/:id/geocode. It answers 202 with
// the job location; the geocoding itself runs on a worker goroutine.
func (h *Handler) EnqueueGeocode(c *gin.Context) {
	spotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Study spot not found")
		return
	}

	if _, err := h.spotRepo.GetByID(c.Request.Context(), spotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Study spot not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "An internal error occurred")
		return
	}

	job, err := h.tracker.Create(c.Request.Context(), spotID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create job")
		return
	}

	go h.worker.Run(job.ID)

	c.Header("Location", "/jobs/"+job.ID.String())
	response.Success(c, http.StatusAccepted, buildJobResponse(job))
}

// GetJob handles GET /jobs/:id. An unknown id is 404; a job that merely has
// not finished is a normal 200 with its current status.
func (h *Handler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Job not found")
		return
	}

	job, err := h.tracker.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrUnknownJob) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Job not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "An internal error occurred")
		return
	}

	response.Success(c, http.StatusOK, buildJobResponse(job))
}

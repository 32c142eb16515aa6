package spots

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"studyspot/internal/domain"
	"studyspot/internal/pkg/response"
	"studyspot/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	service         *Service
	defaultPageSize int
	maxPageSize     int
}

func NewHandler(service *Service, defaultPageSize, maxPageSize int) *Handler {
	return &Handler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

/* ---------- ROUTE REGISTRATION ---------- */

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/studyspots")
	{
		g.POST("", h.CreateSpot)
		g.GET("", h.ListSpots)
		g.GET("/:id", h.GetSpot)
		g.PATCH("/:id", h.UpdateSpot)
		g.DELETE("/:id", h.DeleteSpot)
	}
}

/* ---------- COLLECTION ---------- */

// ListSpots handles GET /studyspots with filters and pagination.
func (h *Handler) ListSpots(c *gin.Context) {
	f, page, pageSize, filterParams, err := h.parseListQuery(c)
	if err != nil {
		handleError(c, err)
		return
	}

	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize
	f.Now = time.Now()

	spotList, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	resources := make([]SpotResource, 0, len(spotList))
	for i := range spotList {
		resources = append(resources, BuildResource(&spotList[i]))
	}

	c.JSON(http.StatusOK, ListResponse{
		Success: true,
		Data:    resources,
		Links:   buildListLinks(c.Request.URL.Path, filterParams, page, pageSize, total),
		Total:   total,
	})
}

// listParams enumerates every recognized query parameter. Anything else is
// rejected rather than silently ignored.
var listParams = map[string]bool{
	"name":         true,
	"street":       true,
	"city":         true,
	"neighborhood": true,
	"wifi":         true,
	"outlets":      true,
	"min_seating":  true,
	"refreshments": true,
	"environment":  true,
	"open_day":     true,
	"open_now":     true,
	"page":         true,
	"page_size":    true,
}

func (h *Handler) parseListQuery(c *gin.Context) (repository.SpotFilters, int, int, url.Values, error) {
	var f repository.SpotFilters
	query := c.Request.URL.Query()

	for param := range query {
		if !listParams[param] {
			return f, 0, 0, nil, fieldError(param, "unknown query parameter")
		}
	}

	f.Name = c.Query("name")
	f.Street = c.Query("street")
	f.City = c.Query("city")
	f.Refreshments = c.Query("refreshments")

	if v := c.Query("neighborhood"); v != "" {
		if !domain.IsValidNeighborhood(v) {
			return f, 0, 0, nil, fieldError("neighborhood", "must be a known neighborhood")
		}
		f.Neighborhood = v
	}

	if v := c.Query("wifi"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, 0, 0, nil, fieldError("wifi", "must be a boolean")
		}
		f.Wifi = &b
	}
	if v := c.Query("outlets"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, 0, 0, nil, fieldError("outlets", "must be a boolean")
		}
		f.Outlets = &b
	}
	if v := c.Query("min_seating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, 0, 0, nil, fieldError("min_seating", "must be a non-negative integer")
		}
		f.MinSeating = n
	}
	if v := c.Query("environment"); v != "" {
		if !domain.IsValidEnvironmentTag(v) {
			return f, 0, 0, nil, fieldError("environment", "unknown tag: "+v)
		}
		f.Environment = v
	}
	if v := c.Query("open_day"); v != "" {
		day, ok := domain.ParseDay(v)
		if !ok {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 6 {
				day = n
			} else {
				return f, 0, 0, nil, fieldError("open_day", "must be a weekday name or 0-6")
			}
		}
		f.OpenDay = &day
	}
	if v := c.Query("open_now"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, 0, 0, nil, fieldError("open_now", "must be a boolean")
		}
		f.OpenNow = b
	}

	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, 0, 0, nil, fieldError("page", "must be an integer >= 1")
		}
		page = n
	}
	pageSize := h.defaultPageSize
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > h.maxPageSize {
			return f, 0, 0, nil, fieldError("page_size", "must be in [1, "+strconv.Itoa(h.maxPageSize)+"]")
		}
		pageSize = n
	}

	// Filter params only; page/page_size are re-added per link.
	filterParams := url.Values{}
	for param, vs := range query {
		if param == "page" || param == "page_size" {
			continue
		}
		filterParams[param] = vs
	}

	return f, page, pageSize, filterParams, nil
}

/* ---------- SINGLE RESOURCE ---------- */

// GetSpot handles GET /studyspots/:id with conditional-GET support.
func (h *Handler) GetSpot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Study spot not found")
		return
	}

	spot, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	res := BuildResource(spot)
	etag := res.ETag()
	c.Header("ETag", etag)

	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// CreateSpot handles POST /studyspots.
func (h *Handler) CreateSpot(c *gin.Context) {
	var req CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, response.CodeValidation,
			"Invalid request body", err.Error())
		return
	}

	spot, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	res := BuildResource(spot)
	c.Header("Location", res.Links.Self)
	response.Success(c, http.StatusCreated, res)
}

// UpdateSpot handles PATCH /studyspots/:id.
func (h *Handler) UpdateSpot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Study spot not found")
		return
	}

	var req UpdateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, response.CodeValidation,
			"Invalid request body", err.Error())
		return
	}

	spot, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	res := BuildResource(spot)
	c.Header("ETag", res.ETag())
	response.Success(c, http.StatusOK, res)
}

// DeleteSpot handles DELETE /studyspots/:id.
func (h *Handler) DeleteSpot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Study spot not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

/* ---------- ERROR HANDLING ---------- */

func handleError(c *gin.Context, err error) {
	var verr *ValidationError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Study spot not found")
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, response.CodeValidation,
			verr.Message, verr.Details)
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal,
			"An internal error occurred")
	}
}

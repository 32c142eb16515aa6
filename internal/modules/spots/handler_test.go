package spots

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyspot/internal/database"
	"studyspot/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type errorResponse struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type spotEnvelope struct {
	Success bool         `json:"success"`
	Data    SpotResource `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	// One in-memory sqlite database per pool connection, so pin the pool.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	spotRepo := repository.NewSpotRepository(db)
	handler := NewHandler(NewService(spotRepo), 20, 100)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/"))

	return router, db
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	return performRequestWithHeaders(router, method, path, body, nil)
}

func performRequestWithHeaders(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func sampleCreateRequest(name, city string, wifi bool) CreateSpotRequest {
	return CreateSpotRequest{
		Name: name,
		Address: AddressPayload{
			Street:       "116th and Broadway",
			City:         city,
			Zip:          "10027",
			Neighborhood: "Harlem",
		},
		Amenities: AmenitiesPayload{
			WifiAvailable: wifi,
			Outlets:       true,
			Seating:       12,
			Refreshments:  "coffee, pastries",
			Environment:   []string{"lively", "indoor"},
		},
		Hours: map[string]*HoursInterval{
			"monday":  {Open: "09:00", Close: "18:00"},
			"tuesday": {Open: "09:00", Close: "18:00"},
			"sunday":  nil,
		},
	}
}

func createSpot(t *testing.T, router *gin.Engine, req CreateSpotRequest) SpotResource {
	t.Helper()
	resp := performRequest(router, http.MethodPost, "/studyspots", req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var payload spotEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Data
}

func TestCreateAndGetSpot(t *testing.T) {
	router, _ := setupRouter(t)

	created := createSpot(t, router, sampleCreateRequest("Joe Coffee", "New York", true))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Joe Coffee", created.Name)
	require.Equal(t, "/studyspots/"+created.ID.String(), created.Links.Self)
	require.Equal(t, created.Links.Self+"/reviews", created.Links.Reviews)

	resp := performRequest(router, http.MethodGet, created.Links.Self, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEmpty(t, resp.Header().Get("ETag"))

	var payload spotEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, created.ID, payload.Data.ID)
	require.Equal(t, "Harlem", payload.Data.Address.Neighborhood)
	require.True(t, payload.Data.Amenities.WifiAvailable)

	// Hours carry all seven days; unset days are closed (null).
	require.Len(t, payload.Data.Hours, 7)
	require.NotNil(t, payload.Data.Hours["monday"])
	require.Equal(t, "09:00", payload.Data.Hours["monday"].Open)
	require.Nil(t, payload.Data.Hours["sunday"])
	require.Nil(t, payload.Data.Hours["saturday"])
}

func TestCreateValidation(t *testing.T) {
	router, _ := setupRouter(t)

	req := sampleCreateRequest("Bad Spot", "New York", true)
	req.Address.Neighborhood = "Brooklyn Heights"

	resp := performRequest(router, http.MethodPost, "/studyspots", req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var payload errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "VALIDATION_ERROR", payload.Error.Code)

	req = sampleCreateRequest("Bad Hours", "New York", true)
	req.Hours = map[string]*HoursInterval{"monday": {Open: "18:00", Close: "09:00"}}
	resp = performRequest(router, http.MethodPost, "/studyspots", req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestConditionalGet(t *testing.T) {
	router, _ := setupRouter(t)
	created := createSpot(t, router, sampleCreateRequest("Hungarian Pastry Shop", "New York", true))

	resp := performRequest(router, http.MethodGet, created.Links.Self, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	etag := resp.Header().Get("ETag")
	require.NotEmpty(t, etag)

	// Same state, same tag.
	resp = performRequest(router, http.MethodGet, created.Links.Self, nil)
	require.Equal(t, etag, resp.Header().Get("ETag"))

	// Matching If-None-Match short-circuits to 304 with no body.
	resp = performRequestWithHeaders(router, http.MethodGet, created.Links.Self, nil,
		map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, resp.Code)
	require.Zero(t, resp.Body.Len())

	// Any visible mutation changes the tag before the next read.
	newName := "Hungarian Pastry Shop (Closed Mondays)"
	patch := UpdateSpotRequest{Name: &newName}
	resp = performRequest(router, http.MethodPatch, created.Links.Self, patch)
	require.Equal(t, http.StatusOK, resp.Code)
	patchedTag := resp.Header().Get("ETag")
	require.NotEmpty(t, patchedTag)
	require.NotEqual(t, etag, patchedTag)

	// Stale tag no longer matches.
	resp = performRequestWithHeaders(router, http.MethodGet, created.Links.Self, nil,
		map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, patchedTag, resp.Header().Get("ETag"))
}

func TestNestedMutationChangesETag(t *testing.T) {
	router, _ := setupRouter(t)
	created := createSpot(t, router, sampleCreateRequest("Etag Cafe", "New York", true))

	resp := performRequest(router, http.MethodGet, created.Links.Self, nil)
	etag := resp.Header().Get("ETag")

	wifi := false
	patch := UpdateSpotRequest{Amenities: &AmenitiesPatch{WifiAvailable: &wifi}}
	resp = performRequest(router, http.MethodPatch, created.Links.Self, patch)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEqual(t, etag, resp.Header().Get("ETag"))
}

func TestListFilterConjunction(t *testing.T) {
	router, _ := setupRouter(t)

	withWifi := createSpot(t, router, sampleCreateRequest("Study A", "NYC", true))
	noWifi := createSpot(t, router, sampleCreateRequest("Study B", "NYC", false))
	createSpot(t, router, sampleCreateRequest("Study C", "Boston", true))

	resp := performRequest(router, http.MethodGet, "/studyspots?city=NYC&wifi=true", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Data, 1)
	require.Equal(t, withWifi.ID, list.Data[0].ID)

	resp = performRequest(router, http.MethodGet, "/studyspots?city=NYC&wifi=false", nil)
	list = ListResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Data, 1)
	require.Equal(t, noWifi.ID, list.Data[0].ID)
}

func TestListOpenDayFilter(t *testing.T) {
	router, _ := setupRouter(t)

	open := createSpot(t, router, sampleCreateRequest("Open Mondays", "NYC", true))

	closed := sampleCreateRequest("Closed Mondays", "NYC", true)
	closed.Hours = map[string]*HoursInterval{"saturday": {Open: "10:00", Close: "16:00"}}
	createSpot(t, router, closed)

	resp := performRequest(router, http.MethodGet, "/studyspots?open_day=monday", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Data, 1)
	require.Equal(t, open.ID, list.Data[0].ID)
}

func TestListUnknownParamRejected(t *testing.T) {
	router, _ := setupRouter(t)

	resp := performRequest(router, http.MethodGet, "/studyspots?rating=5", nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var payload errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "VALIDATION_ERROR", payload.Error.Code)
	require.Contains(t, payload.Error.Details, "rating")
}

func TestListBadParamValues(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{
		"/studyspots?wifi=maybe",
		"/studyspots?page=0",
		"/studyspots?page_size=1000",
		"/studyspots?open_day=funday",
		"/studyspots?environment=underwater",
	} {
		resp := performRequest(router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code, path)
	}
}

func TestPaginationWalk(t *testing.T) {
	router, _ := setupRouter(t)

	names := []string{"Spot 1", "Spot 2", "Spot 3", "Spot 4", "Spot 5"}
	for _, name := range names {
		createSpot(t, router, sampleCreateRequest(name, "NYC", true))
	}

	// Full set in one page is the reference order.
	resp := performRequest(router, http.MethodGet, "/studyspots?page_size=50", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var full ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&full))
	require.Len(t, full.Data, len(names))

	var wantIDs []string
	for _, r := range full.Data {
		wantIDs = append(wantIDs, r.ID.String())
	}

	// Walking next links reproduces the set exactly once, in order.
	var gotIDs []string
	next := "/studyspots?page=1&page_size=2"
	pages := 0
	for next != "" {
		resp := performRequest(router, http.MethodGet, next, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var page ListResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		for _, r := range page.Data {
			gotIDs = append(gotIDs, r.ID.String())
		}

		if pages == 0 {
			require.Nil(t, page.Links.Prev)
		}
		if page.Links.Next != nil {
			next = *page.Links.Next
		} else {
			next = ""
		}
		pages++
		require.LessOrEqual(t, pages, 10, "pagination walk did not terminate")
	}

	require.Equal(t, 3, pages)
	require.Equal(t, wantIDs, gotIDs)
}

func TestOutOfRangePageEmpty(t *testing.T) {
	router, _ := setupRouter(t)
	createSpot(t, router, sampleCreateRequest("Lonely Spot", "NYC", true))

	resp := performRequest(router, http.MethodGet, "/studyspots?page=99", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Empty(t, list.Data)
	require.EqualValues(t, 1, list.Total)
	require.Nil(t, list.Links.Next)
}

func TestPatchValidation(t *testing.T) {
	router, _ := setupRouter(t)
	created := createSpot(t, router, sampleCreateRequest("Patch Target", "NYC", true))

	env := []string{"underwater"}
	patch := UpdateSpotRequest{Amenities: &AmenitiesPatch{Environment: &env}}
	resp := performRequest(router, http.MethodPatch, created.Links.Self, patch)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestPatchReplacesHours(t *testing.T) {
	router, _ := setupRouter(t)
	created := createSpot(t, router, sampleCreateRequest("Hours Target", "NYC", true))

	hours := map[string]*HoursInterval{"friday": {Open: "08:00", Close: "20:00"}}
	patch := UpdateSpotRequest{Hours: &hours}
	resp := performRequest(router, http.MethodPatch, created.Links.Self, patch)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload spotEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotNil(t, payload.Data.Hours["friday"])
	// The old monday interval is gone: a new set replaces the whole week.
	require.Nil(t, payload.Data.Hours["monday"])
}

func TestDeleteThenGet(t *testing.T) {
	router, _ := setupRouter(t)
	created := createSpot(t, router, sampleCreateRequest("Doomed Spot", "NYC", true))

	resp := performRequest(router, http.MethodDelete, created.Links.Self, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Zero(t, resp.Body.Len())

	resp = performRequest(router, http.MethodGet, created.Links.Self, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = performRequest(router, http.MethodDelete, created.Links.Self, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetUnknownSpot(t *testing.T) {
	router, _ := setupRouter(t)

	resp := performRequest(router, http.MethodGet, "/studyspots/0b3b3b3b-0000-4000-8000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = performRequest(router, http.MethodGet, "/studyspots/not-a-uuid", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

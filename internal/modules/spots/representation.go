package spots

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"studyspot/internal/domain"
)

// BuildResource maps a stored spot to its external representation. The hours
// map always carries all seven weekday keys; a nil interval means closed.
func BuildResource(spot *domain.StudySpot) SpotResource {
	hours := make(map[string]*HoursInterval, len(domain.DayNames))
	for _, day := range domain.DayNames {
		hours[day] = nil
	}
	for _, h := range spot.Hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			continue
		}
		hours[domain.DayNames[h.DayOfWeek]] = &HoursInterval{Open: h.OpenTime, Close: h.CloseTime}
	}

	self := "/studyspots/" + spot.ID.String()

	return SpotResource{
		ID:        spot.ID,
		Name:      spot.Name,
		Address:   spot.Address,
		Amenities: spot.Amenities,
		Hours:     hours,
		CreatedAt: spot.CreatedAt,
		UpdatedAt: spot.UpdatedAt,
		Links: SpotLinks{
			Self:    self,
			Reviews: self + "/reviews",
		},
	}
}

// ETag hashes the canonical JSON form of the resource. json.Marshal emits
// struct fields in declaration order and map keys sorted, so the same state
// always produces the same tag and any visible change produces a new one.
func (r SpotResource) ETag() string {
	payload, err := json.Marshal(r)
	if err != nil {
		// Marshal of this struct cannot fail; keep the signature simple.
		return `""`
	}
	sum := sha256.Sum256(payload)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// etagMatches implements If-None-Match: a comma-separated candidate list
// where "*" matches any current representation.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

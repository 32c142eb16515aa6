package spots

import (
	"time"

	"studyspot/internal/domain"

	"github.com/google/uuid"
)

// ---------- REQUESTS ----------

type HoursInterval struct {
	Open  string `json:"open" validate:"required,hhmm"`
	Close string `json:"close" validate:"required,hhmm"`
}

type AddressPayload struct {
	Street       string   `json:"street" validate:"required"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip" validate:"required"`
	Longitude    *float64 `json:"longitude"`
	Latitude     *float64 `json:"latitude"`
	Neighborhood string   `json:"neighborhood" validate:"required"`
}

type AmenitiesPayload struct {
	WifiAvailable bool     `json:"wifi_available"`
	WifiNetwork   *string  `json:"wifi_network"`
	Outlets       bool     `json:"outlets"`
	Seating       int      `json:"seating" validate:"gte=0"`
	Refreshments  string   `json:"refreshments"`
	Environment   []string `json:"environment"`
}

type CreateSpotRequest struct {
	Name      string                    `json:"name" validate:"required"`
	Address   AddressPayload            `json:"address" validate:"required"`
	Amenities AmenitiesPayload          `json:"amenities" validate:"required"`
	Hours     map[string]*HoursInterval `json:"hours"`
}

type AddressPatch struct {
	Street       *string `json:"street,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Zip          *string `json:"zip,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
}

type AmenitiesPatch struct {
	WifiAvailable *bool     `json:"wifi_available,omitempty"`
	WifiNetwork   *string   `json:"wifi_network,omitempty"`
	Outlets       *bool     `json:"outlets,omitempty"`
	Seating       *int      `json:"seating,omitempty"`
	Refreshments  *string   `json:"refreshments,omitempty"`
	Environment   *[]string `json:"environment,omitempty"`
}

// UpdateSpotRequest is a partial update; supply only fields to change.
// A non-nil Hours replaces the whole weekly set.
type UpdateSpotRequest struct {
	Name      *string                    `json:"name,omitempty"`
	Address   *AddressPatch              `json:"address,omitempty"`
	Amenities *AmenitiesPatch            `json:"amenities,omitempty"`
	Hours     *map[string]*HoursInterval `json:"hours,omitempty"`
}

// ---------- RESPONSES ----------

type SpotLinks struct {
	Self    string `json:"self"`
	Reviews string `json:"reviews"`
}

// SpotResource is the canonical external representation. Its JSON form is
// what the ETag hashes, so every visible field lives here.
type SpotResource struct {
	ID        uuid.UUID                 `json:"id"`
	Name      string                    `json:"name"`
	Address   domain.Address            `json:"address"`
	Amenities domain.Amenities          `json:"amenities"`
	Hours     map[string]*HoursInterval `json:"hours"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Links     SpotLinks                 `json:"links"`
}

type ListLinks struct {
	Self  string  `json:"self"`
	First string  `json:"first"`
	Prev  *string `json:"prev,omitempty"`
	Next  *string `json:"next,omitempty"`
	Last  string  `json:"last"`
}

type ListResponse struct {
	Success bool           `json:"success"`
	Data    []SpotResource `json:"data"`
	Links   ListLinks      `json:"links"`
	Total   int64          `json:"total"`
}

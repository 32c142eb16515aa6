package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudySpot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address   Address      `gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE" json:"address"`
	Amenities Amenities    `gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE" json:"amenities"`
	Hours     []HoursEntry `gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE" json:"hours"`
}

func (s *StudySpot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID           int64     `gorm:"primaryKey" json:"-"`
	SpotID       uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"-"`
	Street       string    `gorm:"not null" json:"street"`
	City         string    `gorm:"not null" json:"city"`
	State        string    `gorm:"not null" json:"state"`
	Zip          string    `gorm:"not null" json:"zip"`
	Longitude    *float64  `json:"longitude"`
	Latitude     *float64  `json:"latitude"`
	Neighborhood string    `gorm:"not null" json:"neighborhood"`
}

type Amenities struct {
	ID            int64     `gorm:"primaryKey" json:"-"`
	SpotID        uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"-"`
	WifiAvailable bool      `json:"wifi_available"`
	WifiNetwork   *string   `json:"wifi_network"`
	Outlets       bool      `json:"outlets"`
	Seating       int       `gorm:"not null;default:0" json:"seating"`
	Refreshments  string    `json:"refreshments"`
	Environment   []string  `gorm:"serializer:json" json:"environment"`
}

// HoursEntry is one open interval for one weekday. A spot with no entry for
// a given day is closed that day. Times are "HH:MM" 24h strings, which sort
// lexicographically, so SQL string comparison works for open-now checks.
type HoursEntry struct {
	ID        int64     `gorm:"primaryKey" json:"-"`
	SpotID    uuid.UUID `gorm:"type:uuid;index" json:"-"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"` // 0 = Sunday, matches time.Weekday
	OpenTime  string    `gorm:"not null" json:"open_time"`
	CloseTime string    `gorm:"not null" json:"close_time"`
}

var Neighborhoods = []string{
	"Financial District (FiDi)",
	"Tribeca",
	"SoHo",
	"Chinatown",
	"Lower East Side",
	"West Village",
	"East Village",
	"Chelsea",
	"Flatiron District",
	"Midtown",
	"Upper West Side",
	"Upper East Side",
	"Harlem",
	"Washington Heights",
	"Inwood",
}

func IsValidNeighborhood(v string) bool {
	for _, n := range Neighborhoods {
		if n == v {
			return true
		}
	}
	return false
}

var EnvironmentTags = []string{"quiet", "lively", "outdoor", "indoor"}

func IsValidEnvironmentTag(v string) bool {
	for _, t := range EnvironmentTags {
		if t == v {
			return true
		}
	}
	return false
}

// DayNames maps JSON day keys to time.Weekday ordinals.
var DayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func ParseDay(v string) (int, bool) {
	for i, d := range DayNames {
		if d == v {
			return i, true
		}
	}
	return 0, false
}

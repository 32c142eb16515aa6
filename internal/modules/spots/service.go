package spots

import (
	"context"

	"studyspot/internal/domain"
	"studyspot/internal/pkg/validator"
	"studyspot/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultCity  = "New York"
	defaultState = "NY"
)

type Service struct {
	spotRepo *repository.SpotRepository
}

func NewService(spotRepo *repository.SpotRepository) *Service {
	return &Service{spotRepo: spotRepo}
}

/* ---------- CREATE ---------- */

func (s *Service) Create(ctx context.Context, req CreateSpotRequest) (*domain.StudySpot, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, newValidationError("invalid request body", errs)
	}
	if !domain.IsValidNeighborhood(req.Address.Neighborhood) {
		return nil, fieldError("neighborhood", "must be a known neighborhood")
	}
	if err := validateEnvironment(req.Amenities.Environment); err != nil {
		return nil, err
	}
	hours, err := hoursFromPayload(req.Hours)
	if err != nil {
		return nil, err
	}

	city := req.Address.City
	if city == "" {
		city = defaultCity
	}
	state := req.Address.State
	if state == "" {
		state = defaultState
	}

	spot := &domain.StudySpot{
		Name: req.Name,
		Address: domain.Address{
			Street:       req.Address.Street,
			City:         city,
			State:        state,
			Zip:          req.Address.Zip,
			Longitude:    req.Address.Longitude,
			Latitude:     req.Address.Latitude,
			Neighborhood: req.Address.Neighborhood,
		},
		Amenities: domain.Amenities{
			WifiAvailable: req.Amenities.WifiAvailable,
			WifiNetwork:   req.Amenities.WifiNetwork,
			Outlets:       req.Amenities.Outlets,
			Seating:       req.Amenities.Seating,
			Refreshments:  req.Amenities.Refreshments,
			Environment:   req.Amenities.Environment,
		},
		Hours: hours,
	}

	if err := s.spotRepo.Create(ctx, spot); err != nil {
		return nil, err
	}

	return spot, nil
}

/* ---------- READ ---------- */

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.StudySpot, error) {
	return s.spotRepo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f repository.SpotFilters) ([]domain.StudySpot, int64, error) {
	return s.spotRepo.GetAll(ctx, f)
}

/* ---------- UPDATE ---------- */

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateSpotRequest) (*domain.StudySpot, error) {
	spot, err := s.spotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fieldError("name", "must not be empty")
		}
		spot.Name = *req.Name
	}

	if req.Address != nil {
		a := req.Address
		if a.Street != nil {
			spot.Address.Street = *a.Street
		}
		if a.City != nil {
			spot.Address.City = *a.City
		}
		if a.State != nil {
			spot.Address.State = *a.State
		}
		if a.Zip != nil {
			spot.Address.Zip = *a.Zip
		}
		if a.Neighborhood != nil {
			if !domain.IsValidNeighborhood(*a.Neighborhood) {
				return nil, fieldError("neighborhood", "must be a known neighborhood")
			}
			spot.Address.Neighborhood = *a.Neighborhood
		}
	}

	if req.Amenities != nil {
		m := req.Amenities
		if m.WifiAvailable != nil {
			spot.Amenities.WifiAvailable = *m.WifiAvailable
		}
		if m.WifiNetwork != nil {
			spot.Amenities.WifiNetwork = m.WifiNetwork
		}
		if m.Outlets != nil {
			spot.Amenities.Outlets = *m.Outlets
		}
		if m.Seating != nil {
			if *m.Seating < 0 {
				return nil, fieldError("seating", "must be >= 0")
			}
			spot.Amenities.Seating = *m.Seating
		}
		if m.Refreshments != nil {
			spot.Amenities.Refreshments = *m.Refreshments
		}
		if m.Environment != nil {
			if err := validateEnvironment(*m.Environment); err != nil {
				return nil, err
			}
			spot.Amenities.Environment = *m.Environment
		}
	}

	var newHours []domain.HoursEntry
	if req.Hours != nil {
		newHours, err = hoursFromPayload(*req.Hours)
		if err != nil {
			return nil, err
		}
	}

	if err := s.spotRepo.Update(ctx, spot); err != nil {
		return nil, err
	}
	if req.Hours != nil {
		if err := s.spotRepo.ReplaceHours(ctx, spot.ID, newHours); err != nil {
			return nil, err
		}
	}

	// Reload so the caller sees server-set timestamps and the final hours set.
	return s.spotRepo.GetByID(ctx, id)
}

/* ---------- DELETE ---------- */

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.spotRepo.Delete(ctx, id)
}

/* ---------- VALIDATION HELPERS ---------- */

func validateEnvironment(tags []string) error {
	for _, tag := range tags {
		if !domain.IsValidEnvironmentTag(tag) {
			return fieldError("environment", "unknown tag: "+tag)
		}
	}
	return nil
}

// hoursFromPayload turns the per-day map into child rows. Days mapped to
// null (or absent) produce no row, which means closed.
func hoursFromPayload(payload map[string]*HoursInterval) ([]domain.HoursEntry, error) {
	if payload == nil {
		return nil, nil
	}

	var entries []domain.HoursEntry
	for day, interval := range payload {
		dow, ok := domain.ParseDay(day)
		if !ok {
			return nil, fieldError("hours", "unknown day: "+day)
		}
		if interval == nil {
			continue
		}
		if errs := validator.Validate(interval); errs != nil {
			return nil, newValidationError("invalid hours for "+day, errs)
		}
		// "HH:MM" strings order lexicographically.
		if interval.Close <= interval.Open {
			return nil, fieldError("hours", day+": close must be after open")
		}
		entries = append(entries, domain.HoursEntry{
			DayOfWeek: dow,
			OpenTime:  interval.Open,
			CloseTime: interval.Close,
		})
	}
	return entries, nil
}

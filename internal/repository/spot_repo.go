package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studyspot/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpotFilters struct {
	Name         string
	Street       string
	City         string
	Neighborhood string
	Wifi         *bool
	Outlets      *bool
	MinSeating   int
	Refreshments string
	Environment  string
	OpenDay      *int
	OpenNow      bool
	Now          time.Time // request time, evaluated for OpenNow
	Limit        int
	Offset       int
}

type SpotRepository struct {
	db *gorm.DB
}

func NewSpotRepository(db *gorm.DB) *SpotRepository {
	return &SpotRepository{db: db}
}

// GetAll returns one page of spots matching every filter, plus the total
// match count. Order is stable: creation time, then id.
func (r *SpotRepository) GetAll(
	ctx context.Context,
	f SpotFilters,
) ([]domain.StudySpot, int64, error) {

	var spots []domain.StudySpot
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.StudySpot{})

	if f.Name != "" {
		q = q.Where("LOWER(study_spots.name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}

	if f.Street != "" || f.City != "" || f.Neighborhood != "" {
		q = q.Joins("JOIN addresses ON addresses.spot_id = study_spots.id")
	}
	if f.Street != "" {
		q = q.Where("LOWER(addresses.street) LIKE ?", "%"+strings.ToLower(f.Street)+"%")
	}
	if f.City != "" {
		q = q.Where("addresses.city = ?", f.City)
	}
	if f.Neighborhood != "" {
		q = q.Where("addresses.neighborhood = ?", f.Neighborhood)
	}

	if f.Wifi != nil || f.Outlets != nil || f.MinSeating > 0 || f.Refreshments != "" || f.Environment != "" {
		q = q.Joins("JOIN amenities ON amenities.spot_id = study_spots.id")
	}
	if f.Wifi != nil {
		q = q.Where("amenities.wifi_available = ?", *f.Wifi)
	}
	if f.Outlets != nil {
		q = q.Where("amenities.outlets = ?", *f.Outlets)
	}
	if f.MinSeating > 0 {
		q = q.Where("amenities.seating >= ?", f.MinSeating)
	}
	if f.Refreshments != "" {
		q = q.Where("LOWER(amenities.refreshments) LIKE ?", "%"+strings.ToLower(f.Refreshments)+"%")
	}
	if f.Environment != "" {
		// Environment is stored as a JSON array of quoted tags.
		q = q.Where("amenities.environment LIKE ?", fmt.Sprintf("%%%q%%", f.Environment))
	}

	if f.OpenDay != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM hours_entries h WHERE h.spot_id = study_spots.id AND h.day_of_week = ?)",
			*f.OpenDay,
		)
	}
	if f.OpenNow {
		hm := f.Now.Format("15:04")
		q = q.Where(
			"EXISTS (SELECT 1 FROM hours_entries h WHERE h.spot_id = study_spots.id AND h.day_of_week = ? AND h.open_time <= ? AND h.close_time > ?)",
			int(f.Now.Weekday()), hm, hm,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Preload("Address").
		Preload("Amenities").
		Preload("Hours").
		Order("study_spots.created_at, study_spots.id").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&spots).Error

	return spots, total, err
}

// GetByID fetches one spot with its children.
func (r *SpotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySpot, error) {
	var spot domain.StudySpot

	err := r.db.WithContext(ctx).
		Where("study_spots.id = ?", id).
		Preload("Address").
		Preload("Amenities").
		Preload("Hours").
		First(&spot).Error

	if err != nil {
		return nil, err
	}

	return &spot, nil
}

// Create inserts the spot and its children in one association graph.
func (r *SpotRepository) Create(ctx context.Context, spot *domain.StudySpot) error {
	return r.db.WithContext(ctx).Create(spot).Error
}

// Update saves the spot row and its address/amenities children.
func (r *SpotRepository) Update(ctx context.Context, spot *domain.StudySpot) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(spot).Error
}

// ReplaceHours swaps the whole weekly hours set for a spot.
func (r *SpotRepository) ReplaceHours(ctx context.Context, spotID uuid.UUID, hours []domain.HoursEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("spot_id = ?", spotID).Delete(&domain.HoursEntry{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].SpotID = spotID
		}
		return tx.Create(&hours).Error
	})
}

// Delete removes the spot and cascades to its children. Jobs that reference
// the spot are left behind on purpose; the worker fails them on next touch.
func (r *SpotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("spot_id = ?", id).Delete(&domain.HoursEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("spot_id = ?", id).Delete(&domain.Amenities{}).Error; err != nil {
			return err
		}
		if err := tx.Where("spot_id = ?", id).Delete(&domain.Address{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.StudySpot{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdateCoordinates writes geocoded coordinates onto a spot's address and
// bumps the spot's updated_at so its ETag changes.
func (r *SpotRepository) UpdateCoordinates(ctx context.Context, spotID uuid.UUID, lat, lng float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Address{}).
			Where("spot_id = ?", spotID).
			Updates(map[string]interface{}{"latitude": lat, "longitude": lng})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.StudySpot{}).
			Where("id = ?", spotID).
			Update("updated_at", time.Now().UTC()).Error
	})
}

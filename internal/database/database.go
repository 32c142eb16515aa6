package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"studyspot/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite:", dsn)

	// DriverName "sqlite" selects the pure-Go modernc driver.
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate keeps the schema in sync for every model the service owns.
// Called from cmd/api, cmd/seed and the test harness.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.StudySpot{},
		&domain.Address{},
		&domain.Amenities{},
		&domain.HoursEntry{},
		&domain.GeocodeJob{},
	)
}

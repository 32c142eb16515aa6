package main

import (
	"log"
	"os"

	"studyspot/internal/database"
	"studyspot/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "studyspot.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM hours_entries")
	db.Exec("DELETE FROM amenities")
	db.Exec("DELETE FROM addresses")
	db.Exec("DELETE FROM geocode_jobs")
	db.Exec("DELETE FROM study_spots")

	log.Println("Creating study spots...")
	for _, spot := range seedSpots() {
		s := spot
		if err := db.Create(&s).Error; err != nil {
			log.Fatalf("failed to create %q: %v", s.Name, err)
		}
		log.Printf("created %q (%s)", s.Name, s.Address.Neighborhood)
	}

	log.Println("Seed complete")
}

func strPtr(s string) *string { return &s }

// weekdayHours is Mon-Fri at the given interval, weekends closed.
func weekdayHours(open, close string) []domain.HoursEntry {
	entries := make([]domain.HoursEntry, 0, 5)
	for day := 1; day <= 5; day++ {
		entries = append(entries, domain.HoursEntry{DayOfWeek: day, OpenTime: open, CloseTime: close})
	}
	return entries
}

func everyDayHours(open, close string) []domain.HoursEntry {
	entries := make([]domain.HoursEntry, 0, 7)
	for day := 0; day <= 6; day++ {
		entries = append(entries, domain.HoursEntry{DayOfWeek: day, OpenTime: open, CloseTime: close})
	}
	return entries
}

// Real Manhattan study spots, one per neighborhood where we have data.
func seedSpots() []domain.StudySpot {
	return []domain.StudySpot{
		{
			Name: "Battery Park City Library",
			Address: domain.Address{
				Street: "175 North End Ave", City: "New York", State: "NY", Zip: "10282",
				Neighborhood: "Financial District (FiDi)",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("NYPL"), Outlets: true,
				Seating: 20, Refreshments: "none", Environment: []string{"quiet", "indoor"},
			},
			Hours: weekdayHours("10:00", "18:00"),
		},
		{
			Name: "Laughing Man Coffee - Duane Street",
			Address: domain.Address{
				Street: "184 Duane St", City: "New York", State: "NY", Zip: "10013",
				Neighborhood: "Tribeca",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("Guest"), Outlets: true,
				Seating: 8, Refreshments: "coffee, pastries", Environment: []string{"lively", "indoor"},
			},
			Hours: everyDayHours("07:00", "18:00"),
		},
		{
			Name: "Housing Works Bookstore Cafe",
			Address: domain.Address{
				Street: "126 Crosby St", City: "New York", State: "NY", Zip: "10012",
				Neighborhood: "SoHo",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("Bookstore WiFi"), Outlets: false,
				Seating: 15, Refreshments: "coffee, pastries", Environment: []string{"lively", "indoor"},
			},
			Hours: everyDayHours("10:00", "19:00"),
		},
		{
			Name: "Seward Park Library (NYPL)",
			Address: domain.Address{
				Street: "192 East Broadway", City: "New York", State: "NY", Zip: "10002",
				Neighborhood: "Lower East Side",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("NYPL"), Outlets: true,
				Seating: 25, Refreshments: "none", Environment: []string{"quiet", "indoor"},
			},
			Hours: weekdayHours("10:00", "18:00"),
		},
		{
			Name: "NYU Bobst Library",
			Address: domain.Address{
				Street: "70 Washington Square S", City: "New York", State: "NY", Zip: "10012",
				Neighborhood: "West Village",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("NYU"), Outlets: true,
				Seating: 40, Refreshments: "cafe in building", Environment: []string{"quiet", "indoor"},
			},
			Hours: everyDayHours("08:00", "23:00"),
		},
		{
			Name: "Cafe Grumpy Chelsea",
			Address: domain.Address{
				Street: "224 W 20th St", City: "New York", State: "NY", Zip: "10011",
				Neighborhood: "Chelsea",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("Guest"), Outlets: false,
				Seating: 10, Refreshments: "coffee, pastries", Environment: []string{"lively", "indoor"},
			},
			Hours: everyDayHours("07:00", "19:00"),
		},
		{
			Name: "Stavros Niarchos Foundation Library (Mid-Manhattan)",
			Address: domain.Address{
				Street: "455 5th Ave", City: "New York", State: "NY", Zip: "10016",
				Neighborhood: "Midtown",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("NYPL"), Outlets: true,
				Seating: 50, Refreshments: "cafe in building", Environment: []string{"quiet", "indoor"},
			},
			Hours: everyDayHours("09:00", "20:00"),
		},
		{
			Name: "Columbia University - Butler Library",
			Address: domain.Address{
				Street: "535 W 114th St", City: "New York", State: "NY", Zip: "10027",
				Neighborhood: "Harlem",
			},
			Amenities: domain.Amenities{
				WifiAvailable: true, WifiNetwork: strPtr("Columbia U Secure"), Outlets: true,
				Seating: 60, Refreshments: "cafe in building", Environment: []string{"quiet", "indoor"},
			},
			Hours: everyDayHours("08:00", "23:00"),
		},
	}
}

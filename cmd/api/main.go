package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studyspot/internal/config"
	"studyspot/internal/database"
	"studyspot/internal/geocode"
	"studyspot/internal/middleware"
	"studyspot/internal/modules/health"
	"studyspot/internal/modules/jobs"
	"studyspot/internal/modules/spots"
	"studyspot/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	spotRepo := repository.NewSpotRepository(db)
	jobRepo := repository.NewJobRepository(db)

	if cfg.GeocodeAPIKey == "" {
		log.Println("GOOGLE_MAPS_API_KEY not set, geocode jobs will fail until it is")
	}
	geocoder := geocode.NewGoogleGeocoder(geocode.Config{
		APIKey:  cfg.GeocodeAPIKey,
		BaseURL: cfg.GeocodeURL,
		Timeout: cfg.GeocodeTimeout,
	})

	tracker := jobs.NewTracker(jobRepo)
	worker := jobs.NewWorker(tracker, spotRepo, geocoder)

	spotsHandler := spots.NewHandler(spots.NewService(spotRepo), cfg.PageSize, cfg.PageSizeMax)
	jobsHandler := jobs.NewHandler(tracker, worker, spotRepo)
	healthHandler := health.NewHandler()

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	root := r.Group("/")
	{
		spotsHandler.RegisterRoutes(root)
		jobsHandler.RegisterRoutes(root)
		healthHandler.RegisterRoutes(root)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

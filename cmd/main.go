package main

import (
	"log"

	"packtrack/internal/api"
	routes "packtrack/internal/api/handlers"
	"packtrack/internal/auth"
	"packtrack/internal/config"
	"packtrack/internal/postgres"
	"packtrack/internal/redis"
	"packtrack/internal/service/eta"
	"packtrack/internal/service/room"
	"packtrack/internal/service/status"
	"packtrack/internal/service/tracking"
	"packtrack/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database and cache
	db := postgres.Init(cfg.DBUrl)
	redisClient := redis.Init(cfg.RedisUrl)

	// Repositories
	packageRepo := postgres.NewPackageRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)
	userRepo := postgres.NewUserRepository(db)
	locationCache := redis.NewLocationCache(redisClient)

	// Core services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	registry := room.NewRegistry()
	policy := status.NewPolicy(cfg.TransitRadiusKm, cfg.DeliveredRadiusKm)
	estimator := eta.NewEstimator(cfg.AvgSpeedKmh)

	trackingService := tracking.NewTrackingService(
		packageRepo, locationRepo, predictionRepo, locationCache,
		policy, estimator, registry)

	// Start background workers
	worker.StartAllWorkers(trackingService)

	// Setup and run API server
	r := gin.Default()
	api.SetupRouter(r, api.Handlers{
		Auth:     &routes.AuthHandler{Users: userRepo, JWT: jwtService},
		Packages: &routes.PackageHandler{Packages: packageRepo, Tracking: trackingService, JWT: jwtService},
		Tracking: &routes.TrackingHandler{Tracking: trackingService, Registry: registry, JWT: jwtService},
	})

	if err := r.Run(cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	if err := redis.Close(); err != nil {
		log.Printf("Failed to close Redis connection: %v", err)
	}
	if err := postgres.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
}

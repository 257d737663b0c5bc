package worker

import (
	"log"

	"packtrack/internal/service/tracking"
)

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers(trackingService *tracking.TrackingService) {
	log.Println("Starting all workers...")

	StartPredictionWorker(trackingService)

	log.Println("All workers started")
}

package worker

import (
	"context"
	"log"
	"time"

	"packtrack/internal/config"
	"packtrack/internal/service/tracking"
)

// StartPredictionWorker starts the worker that periodically refreshes
// arrival estimates for in-transit packages
func StartPredictionWorker(trackingService *tracking.TrackingService) {
	ticker := time.NewTicker(config.PredictionRefreshInterval)
	go func() {
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			trackingService.RefreshPredictions(ctx)
			cancel()
		}
	}()

	log.Println("Prediction worker started with interval:", config.PredictionRefreshInterval)
}

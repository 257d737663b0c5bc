package config

import "time"

// Worker intervals
const (
	// PredictionRefreshInterval defines how often the prediction worker
	// re-estimates arrival times for packages still in transit
	PredictionRefreshInterval = 60 * time.Second

	// LatestLocationTTL defines how long a cached latest location stays
	// valid in Redis before it must be reloaded from PostgreSQL
	LatestLocationTTL = 24 * time.Hour
)

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"packtrack/internal/config"
	"packtrack/internal/model"

	"github.com/redis/go-redis/v9"
)

const latestLocationKey = "latest_location"

// LocationCache keeps the most recent location report per package in
// Redis so the ETA path and the prediction worker avoid a PostgreSQL
// query on every read.
type LocationCache struct {
	client *redis.Client
}

// NewLocationCache creates a cache bound to the given client
func NewLocationCache(client *redis.Client) *LocationCache {
	return &LocationCache{client: client}
}

// SetLatest overwrites the cached latest report for a package
func (c *LocationCache) SetLatest(ctx context.Context, report *model.LocationReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s:%s", latestLocationKey, report.PackageID)
	return c.client.Set(ctx, key, data, config.LatestLocationTTL).Err()
}

// GetLatest returns the cached latest report for a package, or nil on a
// cache miss
func (c *LocationCache) GetLatest(ctx context.Context, packageID string) (*model.LocationReport, error) {
	key := fmt.Sprintf("%s:%s", latestLocationKey, packageID)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var report model.LocationReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

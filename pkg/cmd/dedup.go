package cmd

import (
	"github.com/maintops/maintops/pkg/dedup"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence"
	"github.com/redis/go-redis/v9"
)

// NewStockTracker builds the stock alert dedup tracker. With a Redis URL the
// tracker keeps TTL keys in Redis; without one it falls back to scanning the
// notification store.
func NewStockTracker(redisURL string, notifications persistence.NotificationRepository) (dedup.Tracker, error) {
	if redisURL == "" {
		return dedup.NewStoreTracker(notifications, models.StockAlertTypes, models.MetadataSparePartID), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return dedup.NewRedisTracker(redis.NewClient(opts), "maintops:stock"), nil
}

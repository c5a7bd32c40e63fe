package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bikeshare-dashboard/aggregator"
	"bikeshare-dashboard/db"
	"bikeshare-dashboard/models"
)

// DASHBOARD_KEY_FORMAT is keyed by dataset version and date range.
const DASHBOARD_KEY_FORMAT = "dashboard_v1:%d:%s"
const DASHBOARD_KEY_PATTERN = "dashboard_v1:*"

// RedisDashboardDAO caches computed dashboards in Redis.
type RedisDashboardDAO struct {
	client db.RedisClient
}

// NewRedisDashboardDAO initializes a RedisDashboardDAO with the Redis client.
func NewRedisDashboardDAO(client db.RedisClient) *RedisDashboardDAO {
	return &RedisDashboardDAO{client: client}
}

func dashboardKey(version uint64, r models.DateRange) string {
	return fmt.Sprintf(DASHBOARD_KEY_FORMAT, version, r.String())
}

// SetDashboard caches d for the given dataset version.
func (dao *RedisDashboardDAO) SetDashboard(version uint64, d *aggregator.Dashboard, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard %s: %w", d.Range, err)
	}
	if err := dao.client.Set(dashboardKey(version, d.Range), string(data), ttl); err != nil {
		return fmt.Errorf("failed to set dashboard in redis: %w", err)
	}
	return nil
}

// GetDashboard returns the cached dashboard, or nil on a cache miss.
func (dao *RedisDashboardDAO) GetDashboard(version uint64, r models.DateRange) (*aggregator.Dashboard, error) {
	str, err := dao.client.Get(dashboardKey(version, r))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dashboard from redis: %w", err)
	}
	var d aggregator.Dashboard
	if err := json.Unmarshal([]byte(str), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard JSON: %w", err)
	}
	return &d, nil
}

// DeleteAllDashboards drops every cached dashboard and returns how many were removed.
func (dao *RedisDashboardDAO) DeleteAllDashboards() (int, error) {
	keys, err := dao.client.Keys(DASHBOARD_KEY_PATTERN)
	if err != nil {
		return 0, fmt.Errorf("failed to list dashboard keys: %w", err)
	}
	if err := dao.client.Del(keys...); err != nil {
		return 0, fmt.Errorf("failed to delete dashboard keys: %w", err)
	}
	return len(keys), nil
}

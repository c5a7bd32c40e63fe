package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bikeshare-dashboard/aggregator"
	"bikeshare-dashboard/dao/redis"
	"bikeshare-dashboard/logger"
	"bikeshare-dashboard/models"
)

var ErrDatasetNotLoaded = errors.New("dataset not loaded")

// DashboardService holds the loaded dataset and computes dashboards from it.
// The record slice is never mutated after LoadDataset; a reload swaps it.
type DashboardService struct {
	mu      sync.RWMutex
	records []models.RideRecord
	bounds  models.DateRange
	loaded  bool
	version uint64

	dashboardDao *redis.RedisDashboardDAO
	cacheTTL     time.Duration
	logger       logger.Logger
}

// NewDashboardService constructs a DashboardService. A nil dashboardDao
// disables caching.
func NewDashboardService(
	dashboardDao *redis.RedisDashboardDAO,
	cacheTTL time.Duration,
	log logger.Logger) *DashboardService {

	return &DashboardService{
		dashboardDao: dashboardDao,
		cacheTTL:     cacheTTL,
		logger:       logger.WithComponent(log, "dashboard_service"),
	}
}

// LoadDataset replaces the dataset and returns the new dataset version.
func (ds *DashboardService) LoadDataset(records []models.RideRecord) uint64 {
	bounds, ok := aggregator.Bounds(records)

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.records = records
	ds.bounds = bounds
	ds.loaded = ok
	ds.version++

	if ok {
		ds.logger.Infof("Loaded %d records spanning %s (version %d)", len(records), bounds, ds.version)
	} else {
		ds.logger.Warnf("Loaded an empty dataset (version %d)", ds.version)
	}
	return ds.version
}

func (ds *DashboardService) snapshot() ([]models.RideRecord, models.DateRange, uint64, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	if !ds.loaded {
		return nil, models.DateRange{}, ds.version, ErrDatasetNotLoaded
	}
	return ds.records, ds.bounds, ds.version, nil
}

// Bounds returns the first and last date present in the dataset.
func (ds *DashboardService) Bounds() (models.DateRange, error) {
	_, bounds, _, err := ds.snapshot()
	return bounds, err
}

// ResolveRange fills missing ends with the dataset bounds, rejects start > end
// and clamps the result to the bounds.
func (ds *DashboardService) ResolveRange(start, end *time.Time) (models.DateRange, error) {
	bounds, err := ds.Bounds()
	if err != nil {
		return models.DateRange{}, err
	}
	s, e := bounds.Start, bounds.End
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	r, err := models.NewDateRange(s, e)
	if err != nil {
		return models.DateRange{}, err
	}
	return r.Clamp(bounds), nil
}

// GetDashboard computes (or reads from cache) the dashboard for r.
func (ds *DashboardService) GetDashboard(ctx context.Context, r models.DateRange) (*aggregator.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, _, version, err := ds.snapshot()
	if err != nil {
		return nil, err
	}

	if ds.dashboardDao != nil {
		cached, err := ds.dashboardDao.GetDashboard(version, r)
		if err != nil {
			ds.logger.Warnf("Dashboard cache read failed for %s: %v", r, err)
		} else if cached != nil {
			ds.logger.Debugf("Dashboard cache hit for %s", r)
			return cached, nil
		}
	}

	start := time.Now()
	d := aggregator.BuildDashboard(records, r)
	ds.logger.WithFields(map[string]interface{}{
		"range":   r.String(),
		"records": d.Summary.Records,
		"elapsed": time.Since(start).String(),
	}).Debugf("Computed dashboard")

	if ds.dashboardDao != nil {
		if err := ds.dashboardDao.SetDashboard(version, d, ds.cacheTTL); err != nil {
			ds.logger.Warnf("Dashboard cache write failed for %s: %v", r, err)
		}
	}
	return d, nil
}

// GetViewRows returns the rows of one named view for r.
func (ds *DashboardService) GetViewRows(ctx context.Context, view string, r models.DateRange) ([]aggregator.Row[string], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, _, _, err := ds.snapshot()
	if err != nil {
		return nil, err
	}
	rows, err := aggregator.ViewRows(view, aggregator.Filter(records, r))
	if err != nil {
		return nil, fmt.Errorf("view %q: %w", view, err)
	}
	return rows, nil
}

// Version is bumped on every LoadDataset.
func (ds *DashboardService) Version() uint64 {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.version
}

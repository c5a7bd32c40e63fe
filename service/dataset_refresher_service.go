package services

import (
	"context"
	"fmt"
	"time"

	"bikeshare-dashboard/api/dataset"
	"bikeshare-dashboard/dao/redis"
	"bikeshare-dashboard/logger"

	"github.com/robfig/cron/v3"
)

const refreshJobTimeout = 10 * time.Minute

// DatasetRefresherService (re)loads the dataset into the DashboardService,
// once at startup and then on a cron schedule.
type DatasetRefresherService struct {
	datasetAPI       dataset.DatasetAPI
	dashboardService *DashboardService
	dashboardDao     *redis.RedisDashboardDAO
	cron             *cron.Cron
	logger           logger.Logger
}

// NewDatasetRefresherService constructs a refresher. dashboardDao may be nil.
func NewDatasetRefresherService(
	datasetAPI dataset.DatasetAPI,
	dashboardService *DashboardService,
	dashboardDao *redis.RedisDashboardDAO,
	log logger.Logger,
) *DatasetRefresherService {
	return &DatasetRefresherService{
		datasetAPI:       datasetAPI,
		dashboardService: dashboardService,
		dashboardDao:     dashboardDao,
		cron:             cron.New(),
		logger:           logger.WithComponent(log, "dataset_refresher"),
	}
}

// RefreshDataset fetches the dataset, swaps it in and drops cached dashboards.
// On failure the previously loaded dataset stays in place.
func (dr *DatasetRefresherService) RefreshDataset(ctx context.Context) error {
	dr.logger.Infof("Fetching dataset from %s", dr.datasetAPI.Location())
	records, err := dr.datasetAPI.FetchRideRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch dataset: %w", err)
	}

	version := dr.dashboardService.LoadDataset(records)

	if dr.dashboardDao != nil {
		n, err := dr.dashboardDao.DeleteAllDashboards()
		if err != nil {
			dr.logger.Warnf("Failed to drop cached dashboards: %v", err)
		} else {
			dr.logger.Infof("Dropped %d cached dashboards for dataset version %d", n, version)
		}
	}
	return nil
}

// StartPeriodicJob schedules RefreshDataset every interval. A non-positive
// interval leaves the scheduler idle.
func (dr *DatasetRefresherService) StartPeriodicJob(interval time.Duration) error {
	if interval <= 0 {
		dr.logger.Info("Periodic dataset refresh disabled")
		return nil
	}
	schedule := "@every " + interval.String()
	if _, err := dr.cron.AddFunc(schedule, dr.runRefreshJob); err != nil {
		return fmt.Errorf("failed to schedule dataset refresh %q: %w", schedule, err)
	}
	dr.cron.Start()
	dr.logger.Infof("Scheduled dataset refresh (%s)", schedule)
	return nil
}

func (dr *DatasetRefresherService) runRefreshJob() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
	defer cancel()

	if err := dr.RefreshDataset(ctx); err != nil {
		dr.logger.Errorf("Dataset refresh failed after %v: %v", time.Since(start), err)
		return
	}
	dr.logger.Infof("Dataset refresh completed in %v", time.Since(start))
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (dr *DatasetRefresherService) Stop() {
	<-dr.cron.Stop().Done()
}

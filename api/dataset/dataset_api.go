package dataset

import (
	"context"

	"bikeshare-dashboard/models"
)

// DatasetAPI loads the full ride-log table from wherever it is published.
type DatasetAPI interface {
	FetchRideRecords(ctx context.Context) ([]models.RideRecord, error)
	// Location describes the source for logs.
	Location() string
}

package dataset

import (
	"context"

	"bikeshare-dashboard/models"
	"bikeshare-dashboard/util"
)

// DatasetFileClient reads the CSV from local disk.
type DatasetFileClient struct {
	path string
}

func NewDatasetFileClient(path string) *DatasetFileClient {
	return &DatasetFileClient{path: path}
}

func (c *DatasetFileClient) FetchRideRecords(ctx context.Context) ([]models.RideRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return util.ReadRideRecordsFromFile(c.path)
}

func (c *DatasetFileClient) Location() string {
	return c.path
}

package dataset

import (
	"bytes"
	"context"
	"fmt"

	"bikeshare-dashboard/api"
	"bikeshare-dashboard/models"
	"bikeshare-dashboard/util"
)

// DatasetApiClient downloads the CSV over HTTP.
type DatasetApiClient struct {
	*api.HTTPClient
}

// NewDatasetApiClient creates a client fetching httpClient.BaseURL as is.
func NewDatasetApiClient(httpClient *api.HTTPClient) *DatasetApiClient {
	return &DatasetApiClient{HTTPClient: httpClient}
}

func (c *DatasetApiClient) FetchRideRecords(ctx context.Context) ([]models.RideRecord, error) {
	body, err := c.Download(ctx, "", map[string]string{"Accept": "text/csv"})
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset from %s: %w", c.BaseURL, err)
	}
	records, err := util.ReadRideRecordsFromCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset from %s: %w", c.BaseURL, err)
	}
	return records, nil
}

func (c *DatasetApiClient) Location() string {
	return c.BaseURL
}

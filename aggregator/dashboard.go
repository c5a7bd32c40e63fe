package aggregator

import (
	"bikeshare-dashboard/models"
)

// Dashboard bundles everything rendered for one date range.
type Dashboard struct {
	Range    models.DateRange                         `json:"range"`
	Summary  models.Summary                           `json:"summary"`
	Monthly  AggregatedView[string]                   `json:"monthly"`
	Weekday  AggregatedView[int]                      `json:"weekday"`
	Hourly   AggregatedView[int]                      `json:"hourly"`
	Seasonal AggregatedView[int]                      `json:"seasonal"`
	Weather  AggregatedView[int]                      `json:"weather"`
	Clusters map[models.Measure][]models.ClusterPoint `json:"clusters"`
}

// BuildDashboard filters records to r and computes every view independently.
func BuildDashboard(records []models.RideRecord, r models.DateRange) *Dashboard {
	filtered := Filter(records, r)

	clusters := make(map[models.Measure][]models.ClusterPoint, len(models.Measures))
	for _, m := range models.Measures {
		clusters[m] = Clusters(filtered, m)
	}

	return &Dashboard{
		Range:    r,
		Summary:  Summarize(filtered),
		Monthly:  MonthlyView(filtered),
		Weekday:  WeekdayView(filtered),
		Hourly:   HourlyView(filtered),
		Seasonal: SeasonalView(filtered),
		Weather:  WeatherView(filtered),
		Clusters: clusters,
	}
}

// Empty reports whether no record fell inside the range.
func (d *Dashboard) Empty() bool {
	return d.Summary.Records == 0
}

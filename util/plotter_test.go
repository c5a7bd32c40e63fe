package util

import (
	"bytes"
	"testing"
	"time"

	"bikeshare-dashboard/aggregator"
	"bikeshare-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plotterDashboard(t *testing.T, empty bool) (*aggregator.Dashboard, models.DateRange) {
	t.Helper()
	d1 := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2011, 2, 14, 0, 0, 0, 0, time.UTC)
	records := []models.RideRecord{
		{Date: d1, Hour: 0, Weekday: 6, Season: 1, WeatherCondition: 1, Casual: 3, Registered: 13, Total: 16, Temp: 0.24},
		{Date: d2, Hour: 8, Weekday: 1, Season: 1, WeatherCondition: 2, Casual: 1000, Registered: 2500, Total: 3500, Temp: 0.3},
	}
	bounds, _ := aggregator.Bounds(records)
	r := bounds
	if empty {
		r = models.DateRange{Start: d2.AddDate(0, 0, 1), End: d2.AddDate(0, 0, 1)}
	}
	return aggregator.BuildDashboard(records, r), bounds
}

func TestRenderDashboardPage(t *testing.T) {
	d, bounds := plotterDashboard(t, false)
	var buf bytes.Buffer

	err := RenderDashboardPage(&buf, d, bounds)

	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, DASHBOARD_PAGE_TITLE)
	assert.Contains(t, html, `name="start" value="2011-01-01" min="2011-01-01" max="2011-02-14"`)
	assert.Contains(t, html, "3,516")
	assert.Contains(t, html, "Count of Bikeshare Rides by Hour")
	assert.Contains(t, html, "Monthly Count of Bikeshare Rides")
	assert.Contains(t, html, "Count of Bikeshare Rides by Weather")
	assert.Contains(t, html, "Clusters of bikeshare rides count by windspeed")
	assert.Contains(t, html, "Jan-11")
	assert.NotContains(t, html, EMPTY_CHART_SUBTITLE)
}

func TestRenderDashboardPage_EmptyRange(t *testing.T) {
	d, bounds := plotterDashboard(t, true)
	var buf bytes.Buffer

	err := RenderDashboardPage(&buf, d, bounds)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), EMPTY_CHART_SUBTITLE)
}

func TestGroupedBarSeriesOrder(t *testing.T) {
	d, _ := plotterDashboard(t, false)

	bar := WeekdayBar(d.Weekday)

	require.Len(t, bar.MultiSeries, 3)
	assert.Equal(t, "casual", bar.MultiSeries[0].Name)
	assert.Equal(t, "registered", bar.MultiSeries[1].Name)
	assert.Equal(t, "total", bar.MultiSeries[2].Name)
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{3292679, "3,292,679"},
		{-12345, "-12,345"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, FormatThousands(test.in))
	}
}

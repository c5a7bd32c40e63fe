package aggregator

import (
	"errors"
	"fmt"
	"time"

	"bikeshare-dashboard/models"
)

var ErrUnknownView = errors.New("unknown view")

// View names accepted by the HTTP surface.
const (
	ViewMonthly  = "monthly"
	ViewWeekday  = "weekday"
	ViewHourly   = "hourly"
	ViewSeasonal = "seasonal"
	ViewWeather  = "weather"
)

var ViewNames = []string{ViewMonthly, ViewWeekday, ViewHourly, ViewSeasonal, ViewWeather}

// MonthlyView resamples records to calendar months. Months without records
// are absent rather than zero-filled.
func MonthlyView(records []models.RideRecord) AggregatedView[string] {
	return AggregateBy(records, models.RideRecord.MonthKey)
}

func WeekdayView(records []models.RideRecord) AggregatedView[int] {
	return AggregateBy(records, func(r models.RideRecord) int { return r.Weekday })
}

func HourlyView(records []models.RideRecord) AggregatedView[int] {
	return AggregateBy(records, func(r models.RideRecord) int { return r.Hour })
}

func SeasonalView(records []models.RideRecord) AggregatedView[int] {
	return AggregateBy(records, func(r models.RideRecord) int { return r.Season })
}

func WeatherView(records []models.RideRecord) AggregatedView[int] {
	return AggregateBy(records, func(r models.RideRecord) int { return r.WeatherCondition })
}

// ViewRows computes the named view and returns its rows with string keys,
// for callers that serve any view through one code path.
func ViewRows(name string, records []models.RideRecord) ([]Row[string], error) {
	switch name {
	case ViewMonthly:
		return MonthlyView(records).Rows, nil
	case ViewWeekday:
		return StringKeys(WeekdayView(records)), nil
	case ViewHourly:
		return StringKeys(HourlyView(records)), nil
	case ViewSeasonal:
		return StringKeys(SeasonalView(records)), nil
	case ViewWeather:
		return StringKeys(WeatherView(records)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// StringKeys converts an int-keyed view into string-keyed rows.
func StringKeys(v AggregatedView[int]) []Row[string] {
	rows := make([]Row[string], len(v.Rows))
	for i, row := range v.Rows {
		rows[i] = Row[string]{GroupKey: fmt.Sprint(row.GroupKey), RideType: row.RideType, Count: row.Count}
	}
	return rows
}

// MonthLabel turns a "YYYY-MM" key into the short "Jan-11" axis label.
// Unparseable keys are returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan-06")
}

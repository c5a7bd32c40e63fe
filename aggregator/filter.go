package aggregator

import (
	"bikeshare-dashboard/models"
)

// Filter keeps the records whose date lies in r, both ends inclusive.
func Filter(records []models.RideRecord, r models.DateRange) []models.RideRecord {
	out := make([]models.RideRecord, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// Bounds returns the earliest and latest record dates. ok is false for an
// empty dataset.
func Bounds(records []models.RideRecord) (r models.DateRange, ok bool) {
	for i, rec := range records {
		d := models.TruncateDay(rec.Date)
		if i == 0 || d.Before(r.Start) {
			r.Start = d
		}
		if i == 0 || d.After(r.End) {
			r.End = d
		}
	}
	return r, len(records) > 0
}

// Summarize sums the ride counts of every record.
func Summarize(records []models.RideRecord) models.Summary {
	s := models.Summary{Records: len(records)}
	for _, r := range records {
		s.CasualRides += int64(r.Casual)
		s.RegisteredRides += int64(r.Registered)
		s.TotalRides += int64(r.Total)
	}
	return s
}

// Clusters projects each record onto (measure, total count), tagged by season.
func Clusters(records []models.RideRecord, m models.Measure) []models.ClusterPoint {
	points := make([]models.ClusterPoint, 0, len(records))
	for _, r := range records {
		points = append(points, models.ClusterPoint{X: measureOf(r, m), Count: r.Total, Season: r.Season})
	}
	return points
}

func measureOf(r models.RideRecord, m models.Measure) float64 {
	switch m {
	case models.MeasureATemp:
		return r.ATemp
	case models.MeasureHumidity:
		return r.Humidity
	case models.MeasureWindSpeed:
		return r.WindSpeed
	default:
		return r.Temp
	}
}

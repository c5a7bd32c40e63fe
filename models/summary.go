package models

// Summary holds the scalar metrics shown above the charts.
type Summary struct {
	Records         int   `json:"records"`
	TotalRides      int64 `json:"total_rides"`
	CasualRides     int64 `json:"casual_rides"`
	RegisteredRides int64 `json:"registered_rides"`
}

// Measure selects the weather column plotted against ride counts.
type Measure string

const (
	MeasureTemp      Measure = "temp"
	MeasureATemp     Measure = "atemp"
	MeasureHumidity  Measure = "hum"
	MeasureWindSpeed Measure = "windspeed"
)

var Measures = []Measure{MeasureTemp, MeasureATemp, MeasureHumidity, MeasureWindSpeed}

// ClusterPoint is one record projected onto (measure, total count), tagged by season.
type ClusterPoint struct {
	X      float64 `json:"x"`
	Count  int     `json:"count"`
	Season int     `json:"season"`
}

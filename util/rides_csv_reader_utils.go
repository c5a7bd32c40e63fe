package util

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"bikeshare-dashboard/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Source column names of the bike-share CSV.
const (
	COL_DATE       = "dteday"
	COL_HOUR       = "hr"
	COL_WEEKDAY    = "weekday"
	COL_SEASON     = "season"
	COL_WEATHER    = "weathersit"
	COL_CASUAL     = "casual"
	COL_REGISTERED = "registered"
	COL_TOTAL      = "cnt"
	COL_TEMP       = "temp"
	COL_ATEMP      = "atemp"
	COL_HUMIDITY   = "hum"
	COL_WINDSPEED  = "windspeed"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidRecord = errors.New("invalid record")
)

var requiredColumns = []string{
	COL_DATE, COL_HOUR, COL_WEEKDAY, COL_SEASON, COL_WEATHER,
	COL_CASUAL, COL_REGISTERED, COL_TOTAL,
	COL_TEMP, COL_ATEMP, COL_HUMIDITY, COL_WINDSPEED,
}

var columnTypes = map[string]series.Type{
	COL_DATE:       series.String,
	COL_HOUR:       series.Int,
	COL_WEEKDAY:    series.Int,
	COL_SEASON:     series.Int,
	COL_WEATHER:    series.Int,
	COL_CASUAL:     series.Int,
	COL_REGISTERED: series.Int,
	COL_TOTAL:      series.Int,
	COL_TEMP:       series.Float,
	COL_ATEMP:      series.Float,
	COL_HUMIDITY:   series.Float,
	COL_WINDSPEED:  series.Float,
}

// ReadRideRecordsFromFile loads ride records from a CSV file on disk.
func ReadRideRecordsFromFile(filePath string) ([]models.RideRecord, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}
	defer f.Close()
	return ReadRideRecordsFromCSV(f)
}

// ReadRideRecordsFromCSV parses the bike-share CSV and validates every row.
// Extra columns are ignored.
func ReadRideRecordsFromCSV(r io.Reader) ([]models.RideRecord, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", df.Err)
	}

	names := df.Names()
	for _, col := range requiredColumns {
		if !slices.Contains(names, col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	ints := make(map[string][]int)
	for _, col := range []string{COL_HOUR, COL_WEEKDAY, COL_SEASON, COL_WEATHER, COL_CASUAL, COL_REGISTERED, COL_TOTAL} {
		vals, err := df.Col(col).Int()
		if err != nil {
			return nil, fmt.Errorf("%w: column %s: %v", ErrInvalidRecord, col, err)
		}
		ints[col] = vals
	}
	dates := df.Col(COL_DATE).Records()
	temp := df.Col(COL_TEMP).Float()
	atemp := df.Col(COL_ATEMP).Float()
	hum := df.Col(COL_HUMIDITY).Float()
	wind := df.Col(COL_WINDSPEED).Float()

	records := make([]models.RideRecord, df.Nrow())
	for i := range records {
		line := i + 2 // header is line 1
		d, err := models.ParseDate(dates[i])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad %s %q", ErrInvalidRecord, line, COL_DATE, dates[i])
		}
		rec := models.RideRecord{
			Date:             d,
			Hour:             ints[COL_HOUR][i],
			Weekday:          ints[COL_WEEKDAY][i],
			Season:           ints[COL_SEASON][i],
			WeatherCondition: ints[COL_WEATHER][i],
			Casual:           ints[COL_CASUAL][i],
			Registered:       ints[COL_REGISTERED][i],
			Total:            ints[COL_TOTAL][i],
			Temp:             temp[i],
			ATemp:            atemp[i],
			Humidity:         hum[i],
			WindSpeed:        wind[i],
		}
		if err := validateRecord(rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, line, err)
		}
		records[i] = rec
	}
	return records, nil
}

func validateRecord(r models.RideRecord) error {
	switch {
	case r.Hour < 0 || r.Hour > 23:
		return fmt.Errorf("%s %d out of range", COL_HOUR, r.Hour)
	case r.Weekday < 0 || r.Weekday > 6:
		return fmt.Errorf("%s %d out of range", COL_WEEKDAY, r.Weekday)
	case r.Season < 1 || r.Season > 4:
		return fmt.Errorf("%s %d out of range", COL_SEASON, r.Season)
	case r.WeatherCondition < 1 || r.WeatherCondition > 4:
		return fmt.Errorf("%s %d out of range", COL_WEATHER, r.WeatherCondition)
	case r.Casual < 0 || r.Registered < 0:
		return fmt.Errorf("negative ride count")
	case r.Total != r.Casual+r.Registered:
		return fmt.Errorf("%s %d != %s %d + %s %d", COL_TOTAL, r.Total, COL_CASUAL, r.Casual, COL_REGISTERED, r.Registered)
	}
	for _, m := range []struct {
		col string
		val float64
	}{
		{COL_TEMP, r.Temp},
		{COL_ATEMP, r.ATemp},
		{COL_HUMIDITY, r.Humidity},
		{COL_WINDSPEED, r.WindSpeed},
	} {
		// gota reads blank or non-numeric float cells as NaN
		if math.IsNaN(m.val) || math.IsInf(m.val, 0) {
			return fmt.Errorf("%s is not a number", m.col)
		}
	}
	return nil
}

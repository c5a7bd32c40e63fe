package models

import "time"

// RideRecord is one row of the bike-share usage dataset.
type RideRecord struct {
	Date             time.Time `json:"date"`
	Hour             int       `json:"hour"`
	Weekday          int       `json:"weekday"`
	Season           int       `json:"season"`
	WeatherCondition int       `json:"weather_condition"`
	Casual           int       `json:"casual"`
	Registered       int       `json:"registered"`
	Total            int       `json:"total"`
	Temp             float64   `json:"temp"`
	ATemp            float64   `json:"atemp"`
	Humidity         float64   `json:"humidity"`
	WindSpeed        float64   `json:"windspeed"`
}

// MonthKey returns the calendar month of the record as "YYYY-MM".
func (r RideRecord) MonthKey() string {
	return r.Date.Format("2006-01")
}

package models

// RideType names one of the three series computed per group key.
type RideType string

const (
	RideTypeCasual     RideType = "casual"
	RideTypeRegistered RideType = "registered"
	RideTypeTotal      RideType = "total"
)

// RideTypes is the fixed series order. Chart colors depend on it.
var RideTypes = []RideType{RideTypeCasual, RideTypeRegistered, RideTypeTotal}

// SeasonNames maps season codes to display names.
var SeasonNames = map[int]string{
	1: "Spring",
	2: "Summer",
	3: "Fall",
	4: "Winter",
}

// WeatherNames maps weather condition codes to display names.
var WeatherNames = map[int]string{
	1: "Clear",
	2: "Slightly Bad",
	3: "Bad",
	4: "Very Bad",
}

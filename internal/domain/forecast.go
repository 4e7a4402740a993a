package domain

import "time"

// ForecastPoint is one predicted day of aggregate revenue.
type ForecastPoint struct {
	Date  time.Time
	Value float64
}

package weather

import (
	"errors"
	"time"
)

var (
	ErrUnavailable = errors.New("weather: network unavailable")
	ErrStatus      = errors.New("weather: bad response status")
	ErrParse       = errors.New("weather: can't parse payload")
)

// Current is the current-conditions half of a snapshot.
type Current struct {
	Temperature float64
	Condition   string
	Icon        string
	Humidity    int
	Pressure    int
}

// DayForecast is one day of the multi-day half.
type DayForecast struct {
	Date      time.Time
	MinTemp   float64
	MaxTemp   float64
	Condition string
	Icon      string
}

// Snapshot holds what the feed produced this cycle. Either half may be
// missing when its fetch failed; a missing half is nil/empty, never stale
// data from an earlier cycle.
type Snapshot struct {
	Current  *Current
	Forecast []DayForecast
}

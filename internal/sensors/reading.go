package sensors

import "time"

// Source identifies one logical measurement channel on the station.
type Source int

const (
	Temperature Source = iota
	Humidity
	Pressure
	Altitude
	Light
)

func (s Source) String() string {
	switch s {
	case Temperature:
		return "temperature"
	case Humidity:
		return "humidity"
	case Pressure:
		return "pressure"
	case Altitude:
		return "altitude"
	case Light:
		return "light"
	default:
		return "unknown"
	}
}

// Unit is the display/upload unit attached to a reading.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
	Percent    Unit = "%"
	HPa        Unit = "hPa"
	Meter      Unit = "m"
	Lux        Unit = "lux"
)

// Reading is one measurement produced within the current cycle. A failed
// sensor yields Valid=false with the error kept for logging; the value is
// a sentinel and must not be rendered or uploaded.
type Reading struct {
	Source Source
	Value  float64
	Unit   Unit
	At     time.Time
	Valid  bool
	Err    error
}

// Invalid builds the placeholder reading for a source whose sensor failed.
func Invalid(src Source, at time.Time, err error) Reading {
	return Reading{Source: src, Value: 0, Unit: unitFor(src, Celsius), At: at, Valid: false, Err: err}
}

func unitFor(src Source, temp Unit) Unit {
	switch src {
	case Temperature:
		return temp
	case Humidity:
		return Percent
	case Pressure:
		return HPa
	case Altitude:
		return Meter
	case Light:
		return Lux
	default:
		return ""
	}
}

// ConvertTemp converts a temperature-bearing reading to the wanted unit.
// Non-temperature readings and readings already in the wanted unit pass
// through unchanged, which makes the conversion idempotent.
func ConvertTemp(r Reading, to Unit) Reading {
	if r.Unit != Celsius && r.Unit != Fahrenheit {
		return r
	}
	if r.Unit == to {
		return r
	}

	switch to {
	case Fahrenheit:
		r.Value = r.Value*9/5 + 32
	case Celsius:
		r.Value = (r.Value - 32) * 5 / 9
	default:
		return r
	}
	r.Unit = to

	return r
}

// CelsiusToUnit converts a raw Celsius value, for payloads that never carry
// a Reading (weather API temperatures arrive in Kelvin and get converted
// to Celsius first).
func CelsiusToUnit(c float64, to Unit) float64 {
	if to == Fahrenheit {
		return c*9/5 + 32
	}

	return c
}

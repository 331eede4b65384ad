package display

import "fmt"

// Page tags one screen of the rotation. The configured order is fixed at
// boot and never changes at runtime.
type Page int

const (
	PageClock Page = iota
	PageWeather
	PageForecast
	PageSensors
	PageAtmosphere
)

func (p Page) String() string {
	switch p {
	case PageClock:
		return "clock"
	case PageWeather:
		return "weather"
	case PageForecast:
		return "forecast"
	case PageSensors:
		return "sensors"
	case PageAtmosphere:
		return "atmosphere"
	default:
		return "unknown"
	}
}

func (p Page) title() string {
	switch p {
	case PageClock:
		return "Date Time"
	case PageWeather:
		return "Currently"
	case PageForecast:
		return "Forecast"
	case PageSensors:
		return "Sensors #1"
	case PageAtmosphere:
		return "Sensors #2"
	default:
		return ""
	}
}

// AllPages returns the full rotation in its natural order.
func AllPages() []Page {
	return []Page{PageClock, PageWeather, PageForecast, PageSensors, PageAtmosphere}
}

func ParsePage(s string) (Page, error) {
	for _, p := range AllPages() {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown page %q", s)
}

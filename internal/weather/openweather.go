package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/log"
)

const (
	kelvinOffset = 273.15
	maxForecast  = 7
)

// Feed fetches current conditions and the daily forecast from OpenWeather.
// The two halves are independent requests against independent endpoints;
// each degrades on its own and missing optional fields never fail a parse.
type Feed struct {
	apiKey      string
	city        string
	lat, lon    float64
	currentURL  string
	forecastURL string
	tempUnit    sensors.Unit

	client *http.Client
}

type Opts struct {
	APIKey      string
	City        string
	Lat, Lon    float64
	CurrentURL  string
	ForecastURL string
	TempUnit    sensors.Unit
	Timeout     time.Duration
}

func NewFeed(o Opts) *Feed {
	return &Feed{
		apiKey:      o.APIKey,
		city:        o.City,
		lat:         o.Lat,
		lon:         o.Lon,
		currentURL:  o.CurrentURL,
		forecastURL: o.ForecastURL,
		tempUnit:    o.TempUnit,
		client:      &http.Client{Timeout: o.Timeout},
	}
}

// Fetch always returns a usable snapshot. The error, when not nil, joins
// the per-half failures for the cycle record.
func (f *Feed) Fetch(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	cur, curErr := f.fetchCurrent(ctx)
	if curErr != nil {
		log.Erro.Printf("can't fetch current conditions: %s", curErr.Error())
	} else {
		snap.Current = cur
	}

	days, fcErr := f.fetchForecast(ctx)
	if fcErr != nil {
		log.Erro.Printf("can't fetch forecast: %s", fcErr.Error())
	} else {
		snap.Forecast = days
	}

	return snap, errors.Join(curErr, fcErr)
}

// currentPayload mirrors the /data/2.5/weather response; extra fields are
// ignored by the decoder.
type currentPayload struct {
	Main struct {
		Temp     float64 `json:"temp"` // Kelvin
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Icon        string `json:"icon"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (f *Feed) fetchCurrent(ctx context.Context) (*Current, error) {
	q := url.Values{}
	q.Set("q", f.city)
	q.Set("appid", f.apiKey)

	var payload currentPayload
	if err := f.get(ctx, f.currentURL, q, &payload); err != nil {
		return nil, err
	}

	cur := &Current{
		Temperature: sensors.CelsiusToUnit(payload.Main.Temp-kelvinOffset, f.tempUnit),
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
	}
	if len(payload.Weather) > 0 {
		cur.Condition = payload.Weather[0].Description
		cur.Icon = payload.Weather[0].Icon
	}

	return cur, nil
}

// forecastPayload mirrors the onecall response, daily list only.
type forecastPayload struct {
	Daily []struct {
		DT   int64 `json:"dt"`
		Temp struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Weather []struct {
			Icon        string `json:"icon"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"daily"`
}

func (f *Feed) fetchForecast(ctx context.Context) ([]DayForecast, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", f.lat))
	q.Set("lon", fmt.Sprintf("%g", f.lon))
	q.Set("exclude", "current,minutely,hourly,alerts")
	q.Set("appid", f.apiKey)

	var payload forecastPayload
	if err := f.get(ctx, f.forecastURL, q, &payload); err != nil {
		return nil, err
	}

	days := make([]DayForecast, 0, maxForecast)
	for i, d := range payload.Daily {
		if i == 0 {
			continue // index 0 is today, the current half covers it
		}
		if len(days) == maxForecast {
			break
		}

		day := DayForecast{
			Date:    time.Unix(d.DT, 0),
			MinTemp: sensors.CelsiusToUnit(d.Temp.Min-kelvinOffset, f.tempUnit),
			MaxTemp: sensors.CelsiusToUnit(d.Temp.Max-kelvinOffset, f.tempUnit),
		}
		if len(d.Weather) > 0 {
			day.Condition = d.Weather[0].Description
			day.Icon = d.Weather[0].Icon
		}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	return days, nil
}

func (f *Feed) get(ctx context.Context, base string, q url.Values, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %s: %d", ErrStatus, base, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("%w: %s", ErrParse, err.Error())
	}

	return nil
}

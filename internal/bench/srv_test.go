package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effevee/weatherstation/internal/metrics"
	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/internal/station"
	"github.com/effevee/weatherstation/internal/weather"
)

type fakeRunner struct {
	out station.CycleOutcome
	err error
}

func (f *fakeRunner) RunCycle(context.Context) (station.CycleOutcome, error) {
	return f.out, f.err
}

type fakeMetrics struct {
	gauges map[string][]float64
	vals   map[string][]metrics.Value
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		gauges: map[string][]float64{},
		vals:   map[string][]metrics.Value{},
	}
}

func (f *fakeMetrics) Gauge(key string, val float64) {
	f.gauges[key] = append(f.gauges[key], val)
}

func (f *fakeMetrics) Values(key string, _ time.Duration) []metrics.Value {
	return f.vals[key]
}

func healthyOutcome() station.CycleOutcome {
	return station.CycleOutcome{
		Start:     time.Now(),
		Connected: true,
		Readings: []sensors.Reading{
			{Source: sensors.Temperature, Value: 21.5, Unit: sensors.Celsius, Valid: true},
			{Source: sensors.Humidity, Value: 60, Unit: sensors.Percent, Valid: true},
			{Source: sensors.Pressure, Value: 1013, Unit: sensors.HPa, Valid: true},
			{Source: sensors.Light, Value: 420, Unit: sensors.Lux, Valid: true},
		},
		Weather: weather.Snapshot{
			Current: &weather.Current{Temperature: 22.4, Condition: "broken clouds"},
			Forecast: []weather.DayForecast{
				{Date: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
					MinTemp: 14, MaxTemp: 24, Condition: "clear sky"},
			},
		},
	}
}

func TestServer_Record_GaugesValidReadings(t *testing.T) {
	m := newFakeMetrics()
	s := New(&fakeRunner{}, m, time.Second)

	out := healthyOutcome()
	out.Readings[1].Valid = false // humidity dropped this cycle
	s.record(out)

	assert.Equal(t, []float64{21.5}, m.gauges[temperatureKey])
	assert.Empty(t, m.gauges[humidityKey], "invalid readings never reach the timeline")
	assert.Equal(t, []float64{1013}, m.gauges[pressureKey])
	assert.Equal(t, []float64{420}, m.gauges[luminanceKey])
	assert.Equal(t, 1, s.cycles)
}

func TestServer_StatusPage(t *testing.T) {
	m := newFakeMetrics()
	m.vals[temperatureKey] = []metrics.Value{{V: 21.0}, {V: 21.5}, {V: 22.0}}

	s := New(&fakeRunner{}, m, time.Second)
	s.record(healthyOutcome())

	page := s.statusPage()

	assert.Contains(t, page, "🟢 OK")
	assert.Contains(t, page, "1 cycles")
	assert.Contains(t, page, "temperature")
	assert.Contains(t, page, "21.50 C")
	assert.Contains(t, page, "Outside: 22.4, broken clouds")
	assert.Contains(t, page, "Thu   14.0 /  24.0  clear sky")
	assert.Contains(t, page, "T:\n", "temperature plot present")
	assert.NotContains(t, page, "H:\n", "no humidity samples, no plot")
}

func TestServer_StatusPage_Degraded(t *testing.T) {
	s := New(&fakeRunner{}, newFakeMetrics(), time.Second)

	out := healthyOutcome()
	out.UploadErr = assert.AnError
	out.Readings[0].Valid = false
	s.record(out)

	page := s.statusPage()

	assert.Contains(t, page, "🟡 degraded")
	assert.Contains(t, page, "temperature  --")
}

func TestServer_Run_StopsWithRunner(t *testing.T) {
	s := New(&fakeRunner{err: assert.AnError}, newFakeMetrics(), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.Run(ctx)
	require.ErrorIs(t, err, assert.AnError)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		dur  time.Duration
		want string
	}{
		{5 * time.Minute, "(uptime: 5m)"},
		{90 * time.Minute, "(uptime: 1h 30m)"},
		{26*time.Hour + 5*time.Minute, "(uptime: 1d 2h 5m)"},
		{30 * time.Second, "(uptime: 1m)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.dur), tt.dur)
	}
}

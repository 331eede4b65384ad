package bench

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/effevee/weatherstation/internal/metrics"
	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/internal/station"
	"github.com/effevee/weatherstation/log"
	"github.com/effevee/weatherstation/utils/bp"
)

const (
	temperatureKey = "current_temperature"
	humidityKey    = "current_humidity"
	pressureKey    = "current_pressure"
	luminanceKey   = "current_luminance"

	plotWindow = 24 * time.Hour
	plotRows   = 4
)

// CycleRunner is the controller surface the bench loop needs.
type CycleRunner interface {
	RunCycle(ctx context.Context) (station.CycleOutcome, error)
}

type Metrics interface {
	Gauge(key string, val float64)
	Values(key string, dur time.Duration) []metrics.Value
}

// Server keeps the station cycling without suspension and serves the
// latest outcome on a status page. Development tool; the battery build
// never runs it.
type Server struct {
	webSrv  *http.Server
	runner  CycleRunner
	metrics Metrics
	pause   time.Duration

	mu        sync.RWMutex
	last      station.CycleOutcome
	cycles    int
	startTime time.Time
}

func New(runner CycleRunner, m Metrics, pause time.Duration) *Server {
	return &Server{
		runner:    runner,
		metrics:   m,
		pause:     pause,
		startTime: time.Now(),
	}
}

func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info.Printf("start cycling with %s pause", s.pause)
		return s.runCycles(ctx)
	})
	g.Go(func() error {
		log.Info.Println("start status server on http://localhost:8080")
		return s.runWebServer(ctx)
	})

	return g.Wait()
}

func (s *Server) runCycles(ctx context.Context) error {
	for {
		out, err := s.runner.RunCycle(ctx)
		if err != nil {
			return err
		}

		s.record(out)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pause):
		}
	}
}

func (s *Server) record(out station.CycleOutcome) {
	s.mu.Lock()
	s.last = out
	s.cycles++
	s.mu.Unlock()

	for _, r := range out.Readings {
		if !r.Valid {
			continue
		}
		switch r.Source {
		case sensors.Temperature:
			s.metrics.Gauge(temperatureKey, r.Value)
		case sensors.Humidity:
			s.metrics.Gauge(humidityKey, r.Value)
		case sensors.Pressure:
			s.metrics.Gauge(pressureKey, r.Value)
		case sensors.Light:
			s.metrics.Gauge(luminanceKey, r.Value)
		}
	}
}

func (s *Server) runWebServer(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, s.statusPage())
	})

	s.webSrv = &http.Server{
		Addr:              ":8080",
		Handler:           mux,
		ReadHeaderTimeout: 1 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.webSrv.Shutdown(shutdownCtx)
	}()

	err := s.webSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (s *Server) statusPage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString(s.title())

	for _, r := range s.last.Readings {
		if !r.Valid {
			b.WriteString(fmt.Sprintf("%-12s --\n", r.Source))
			continue
		}
		b.WriteString(fmt.Sprintf("%-12s %8.2f %s\n", r.Source, r.Value, r.Unit))
	}

	if cur := s.last.Weather.Current; cur != nil {
		b.WriteString(fmt.Sprintf("\nOutside: %.1f, %s\n", cur.Temperature, cur.Condition))
	}
	for _, day := range s.last.Weather.Forecast {
		b.WriteString(fmt.Sprintf("%s  %5.1f / %5.1f  %s\n",
			day.Date.Format("Mon"), day.MinTemp, day.MaxTemp, day.Condition))
	}

	b.WriteString("\n" + s.plot("T", temperatureKey))
	b.WriteString("\n" + s.plot("H", humidityKey))

	return b.String()
}

func (s *Server) title() string {
	uptime := formatUptime(time.Since(s.startTime))

	status := "🟢 OK"
	if s.last.Degraded() {
		status = "🟡 degraded"
	}

	return fmt.Sprintf("Station: %s, %d cycles %s\n\n", status, s.cycles, uptime)
}

func (s *Server) plot(label, key string) string {
	vals := s.metrics.Values(key, plotWindow)
	if len(vals) == 0 {
		return ""
	}

	data := make([]float64, 0, len(vals))
	for _, v := range vals {
		data = append(data, v.V)
	}

	return label + ":\n" + bp.SimplePlot(plotRows, data)
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("(uptime: %dd %dh %dm)", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("(uptime: %dh %dm)", hours, mins)
	default:
		return fmt.Sprintf("(uptime: %dm)", mins)
	}
}

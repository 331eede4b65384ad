package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/effevee/weatherstation/internal/bench"
	"github.com/effevee/weatherstation/internal/clock"
	"github.com/effevee/weatherstation/internal/config"
	"github.com/effevee/weatherstation/internal/display"
	"github.com/effevee/weatherstation/internal/indicator"
	"github.com/effevee/weatherstation/internal/metrics"
	"github.com/effevee/weatherstation/internal/netlink"
	"github.com/effevee/weatherstation/internal/notifier"
	"github.com/effevee/weatherstation/internal/power"
	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/internal/station"
	"github.com/effevee/weatherstation/internal/telemetry"
	"github.com/effevee/weatherstation/internal/weather"
	"github.com/effevee/weatherstation/log"
)

const metricsRetention = 2 * time.Hour

// Dev build: dummy radio and sensors, console display, no suspension.
// The bench server keeps cycling and serves the latest outcome on :8080.
func main() {
	var (
		cfgPath = flag.String("config", "config.yaml", "config file")
		offline = flag.Bool("offline", false, "simulate a dead radio")
		pause   = flag.Duration("pause", 30*time.Second, "pause between bench cycles")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Erro.Printf("can't load config: %s", err.Error())
		os.Exit(1)
	}

	unit := sensors.Celsius
	if cfg.Sensors.Fahrenheit {
		unit = sensors.Fahrenheit
	}

	ctrl := station.New(station.Opts{
		Interval: time.Duration(cfg.Station.IntervalSeconds) * time.Second,
		Network: netlink.New(&netlink.DummyRadio{Offline: *offline},
			cfg.Wifi.SSID, cfg.Wifi.Password, cfg.Wifi.MaxTries),
		Clock: clock.New(cfg.Clock.NTPHost, cfg.Clock.TimezoneHours, cfg.Clock.DST,
			clock.Cadence(cfg.Clock.Sync), clock.NoopSetter{}),
		Sensors: sensors.NewHub(unit,
			sensors.NewDummy("AM2320", sensors.Temperature, sensors.Humidity),
			sensors.NewDummy("BMP180", sensors.Pressure, sensors.Altitude),
			sensors.NewDummy("BH1750", sensors.Light),
		),
		Weather: weather.NewFeed(weather.Opts{
			APIKey:      cfg.OpenWeather.APIKey,
			City:        cfg.OpenWeather.City,
			Lat:         cfg.OpenWeather.Lat,
			Lon:         cfg.OpenWeather.Lon,
			CurrentURL:  cfg.OpenWeather.CurrentURL,
			ForecastURL: cfg.OpenWeather.ForecastURL,
			TempUnit:    unit,
			Timeout:     time.Duration(cfg.OpenWeather.TimeoutSeconds) * time.Second,
		}),
		Display: display.NewPager(display.Console{}, cfg.Pages(),
			cfg.Display.IconDir, time.Millisecond),
		Telemetry: telemetry.NewThingSpeak(cfg.ThingSpeak.URL, cfg.ThingSpeak.WriteKey,
			time.Duration(cfg.ThingSpeak.TimeoutSeconds)*time.Second),
		Power:     power.NewBench(),
		Debug:     indicator.StaticDebug(false),
		Indicator: indicator.Noop{},
		Notifier:  notifier.NewNoop(),
	})

	m, dumpFn := metrics.New(metrics.WithRetention(metricsRetention), metrics.WithBackup())
	server := bench.New(ctrl, m, *pause)

	ctx, cancel := context.WithCancel(context.Background())
	go graceful(cancel, dumpFn)

	if err := server.Run(ctx); err != nil && err != context.Canceled {
		log.Erro.Printf("can't run bench: %s", err.Error())
		os.Exit(1)
	}
}

func graceful(cancel context.CancelFunc, dumpFn metrics.DumpFn) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	log.Info.Println("bench shutdown...")

	signal.Stop(c)
	cancel()

	log.Info.Println("try make a dump to restore it next time...")
	if err := dumpFn(); err != nil {
		log.Erro.Printf("can't make a metrics dump: %s", err.Error())
	} else {
		log.Info.Println("done")
	}

	log.Info.Println("bye")

	os.Exit(0)
}

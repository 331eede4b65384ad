package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/d2r2/go-logger"
	"periph.io/x/host/v3"

	"github.com/effevee/weatherstation/internal/clock"
	"github.com/effevee/weatherstation/internal/config"
	"github.com/effevee/weatherstation/internal/display"
	"github.com/effevee/weatherstation/internal/indicator"
	"github.com/effevee/weatherstation/internal/netlink"
	"github.com/effevee/weatherstation/internal/notifier"
	"github.com/effevee/weatherstation/internal/power"
	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/internal/station"
	"github.com/effevee/weatherstation/internal/telemetry"
	"github.com/effevee/weatherstation/internal/weather"
	"github.com/effevee/weatherstation/log"
)

var revision = "HEAD"

func main() {
	setupLogger()
	log.Info.Printf("⛅ weather station, revision: %s", revision)

	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Erro.Printf("can't load config: %s", err.Error())
		os.Exit(1)
	}

	if _, err := host.Init(); err != nil {
		log.Erro.Printf("can't init gpio/i2c host: %s", err.Error())
		os.Exit(1)
	}

	ntf := makeNotifier(cfg)
	led := makeLED(cfg, ntf)

	ctrl := station.New(station.Opts{
		Interval:  time.Duration(cfg.Station.IntervalSeconds) * time.Second,
		Network:   makeNetwork(cfg, led, ntf),
		Clock:     makeClock(cfg, led, ntf),
		Sensors:   makeSensors(cfg, led, ntf),
		Weather:   makeWeather(cfg),
		Display:   makePager(cfg, led, ntf),
		Telemetry: makeTelemetry(cfg),
		Power:     makeSleeper(cfg, led, ntf),
		Debug:     makeJumper(cfg, led, ntf),
		Indicator: led,
		Notifier:  ntf,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go graceful(cancel)

	if err := ctrl.Run(ctx); err != nil {
		log.Erro.Printf("can't run station: %s", err.Error())
		os.Exit(1)
	}
}

func graceful(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	log.Info.Println("station shutdown...")

	signal.Stop(c)
	cancel()

	os.Exit(0)
}

// die is the boot-time fatal path: a driver that can't even be
// constructed ends in the error indication, same as a mid-cycle fault.
func die(led station.Indicator, ntf station.Notifier, err error) {
	log.Erro.Printf("fatal at boot: %s", err.Error())
	if nerr := ntf.Notify("Weather station fault", err.Error()); nerr != nil {
		log.Erro.Printf("can't notify: %s", nerr.Error())
	}

	led.Trouble(context.Background())
	os.Exit(1)
}

func makeNotifier(cfg config.Config) station.Notifier {
	if cfg.Ntfy.URL == "" {
		return notifier.NewNoop()
	}

	return notifier.NewNtfy(cfg.Ntfy.URL)
}

func makeLED(cfg config.Config, ntf station.Notifier) station.Indicator {
	led, err := indicator.NewLED(cfg.Station.LEDPin)
	if err != nil {
		// no indicator to blink; notifying is all that's left
		log.Erro.Printf("fatal at boot: %s", err.Error())
		_ = ntf.Notify("Weather station fault", err.Error())
		os.Exit(1)
	}

	return led
}

func makeNetwork(cfg config.Config, led station.Indicator, ntf station.Notifier) station.Network {
	radio, err := netlink.NewNMCLIRadio(cfg.Wifi.Interface)
	if err != nil {
		die(led, ntf, err)
	}

	return netlink.New(radio, cfg.Wifi.SSID, cfg.Wifi.Password, cfg.Wifi.MaxTries)
}

func makeClock(cfg config.Config, led station.Indicator, ntf station.Notifier) station.Clock {
	set, err := clock.NewSystemSetter()
	if err != nil {
		die(led, ntf, err)
	}

	return clock.New(cfg.Clock.NTPHost, cfg.Clock.TimezoneHours, cfg.Clock.DST,
		clock.Cadence(cfg.Clock.Sync), set)
}

func makeSensors(cfg config.Config, led station.Indicator, ntf station.Notifier) station.SensorBank {
	am2320, err := sensors.NewAM2320(cfg.Sensors.Bus)
	if err != nil {
		die(led, ntf, err)
	}
	bmp180, err := sensors.NewBMP180(cfg.Sensors.Bus)
	if err != nil {
		die(led, ntf, err)
	}
	bh1750, err := sensors.NewBH1750(cfg.Sensors.Bus)
	if err != nil {
		die(led, ntf, err)
	}

	return sensors.NewHub(tempUnit(cfg), am2320, bmp180, bh1750)
}

func makeWeather(cfg config.Config) station.Forecaster {
	return weather.NewFeed(weather.Opts{
		APIKey:      cfg.OpenWeather.APIKey,
		City:        cfg.OpenWeather.City,
		Lat:         cfg.OpenWeather.Lat,
		Lon:         cfg.OpenWeather.Lon,
		CurrentURL:  cfg.OpenWeather.CurrentURL,
		ForecastURL: cfg.OpenWeather.ForecastURL,
		TempUnit:    tempUnit(cfg),
		Timeout:     time.Duration(cfg.OpenWeather.TimeoutSeconds) * time.Second,
	})
}

func makePager(cfg config.Config, led station.Indicator, ntf station.Notifier) station.Renderer {
	oled, err := display.NewOLED(cfg.Display.Bus)
	if err != nil {
		die(led, ntf, err)
	}

	return display.NewPager(oled, cfg.Pages(), cfg.Display.IconDir,
		time.Duration(cfg.Display.DwellSeconds)*time.Second)
}

func makeTelemetry(cfg config.Config) station.Uploader {
	if cfg.ThingSpeak.Transport == "mqtt" {
		return telemetry.NewMQTT(telemetry.MQTTOpts{
			Broker:    cfg.ThingSpeak.MQTT.Broker,
			Port:      cfg.ThingSpeak.MQTT.Port,
			ClientID:  cfg.ThingSpeak.MQTT.ClientID,
			Username:  cfg.ThingSpeak.MQTT.Username,
			Password:  cfg.ThingSpeak.MQTT.Password,
			ChannelID: cfg.ThingSpeak.MQTT.ChannelID,
		})
	}

	return telemetry.NewThingSpeak(cfg.ThingSpeak.URL, cfg.ThingSpeak.WriteKey,
		time.Duration(cfg.ThingSpeak.TimeoutSeconds)*time.Second)
}

func makeSleeper(cfg config.Config, led station.Indicator, ntf station.Notifier) station.Sleeper {
	slp, err := power.NewRTCWake(cfg.Station.WakeMode)
	if err != nil {
		die(led, ntf, err)
	}

	return slp
}

func makeJumper(cfg config.Config, led station.Indicator, ntf station.Notifier) station.DebugInput {
	if cfg.Station.DebugPin == "" {
		return indicator.StaticDebug(false)
	}

	jmp, err := indicator.NewJumper(cfg.Station.DebugPin)
	if err != nil {
		die(led, ntf, err)
	}

	return jmp
}

func tempUnit(cfg config.Config) sensors.Unit {
	if cfg.Sensors.Fahrenheit {
		return sensors.Fahrenheit
	}

	return sensors.Celsius
}

func setupLogger() {
	log.Debg.Off()

	for _, pkg := range []string{"i2c", "bsbmp", "aosong", "bh1750"} {
		if err := logger.ChangePackageLogLevel(pkg, logger.InfoLevel); err != nil {
			log.Erro.Printf("can't setup %s logger to INFO: %s", pkg, err.Error())
		}
	}
}

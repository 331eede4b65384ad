package config

import (
	"errors"
	"fmt"

	"github.com/effevee/weatherstation/internal/display"
)

// Validate rejects configs the control loop could not run with. Optional
// integrations (ntfy, MQTT) are only checked when enabled.
func Validate(cfg Config) error {
	var errs []error

	if cfg.Station.IntervalSeconds <= 0 {
		errs = append(errs, errors.New("station.interval_seconds must be > 0"))
	}
	if cfg.Station.WakeMode != "off" && cfg.Station.WakeMode != "mem" {
		errs = append(errs, fmt.Errorf("station.wake_mode %q (allowed: off, mem)", cfg.Station.WakeMode))
	}

	if cfg.Wifi.SSID == "" {
		errs = append(errs, errors.New("wifi.ssid is required"))
	}
	if cfg.Wifi.MaxTries <= 0 {
		errs = append(errs, errors.New("wifi.max_tries must be > 0"))
	}

	if cfg.Clock.Sync != "auto" && cfg.Clock.Sync != "always" {
		errs = append(errs, fmt.Errorf("clock.sync %q (allowed: auto, always)", cfg.Clock.Sync))
	}

	for _, p := range cfg.Display.Pages {
		if _, err := display.ParsePage(p); err != nil {
			errs = append(errs, fmt.Errorf("display.pages: %w", err))
		}
	}
	if cfg.Display.DwellSeconds <= 0 {
		errs = append(errs, errors.New("display.dwell_seconds must be > 0"))
	}

	if cfg.OpenWeather.APIKey == "" {
		errs = append(errs, errors.New("openweather.api_key is required"))
	}
	if cfg.OpenWeather.City == "" {
		errs = append(errs, errors.New("openweather.city is required"))
	}

	switch cfg.ThingSpeak.Transport {
	case "http":
		if cfg.ThingSpeak.WriteKey == "" {
			errs = append(errs, errors.New("thingspeak.write_key is required"))
		}
	case "mqtt":
		if cfg.ThingSpeak.MQTT.Broker == "" || cfg.ThingSpeak.MQTT.ChannelID == "" {
			errs = append(errs, errors.New("thingspeak.mqtt needs broker and channel_id"))
		}
	default:
		errs = append(errs, fmt.Errorf("thingspeak.transport %q (allowed: http, mqtt)", cfg.ThingSpeak.Transport))
	}

	return errors.Join(errs...)
}

// Pages converts the configured page names; Validate ran first, so a
// failure here is a programming error.
func (c Config) Pages() []display.Page {
	out := make([]display.Page, 0, len(c.Display.Pages))
	for _, s := range c.Display.Pages {
		p, err := display.ParsePage(s)
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}

	return out
}

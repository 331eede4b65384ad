package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the whole boot configuration. It is loaded once, validated,
// and passed around by value; nothing mutates it afterwards.
type Config struct {
	Station     Station     `yaml:"station"`
	Wifi        Wifi        `yaml:"wifi"`
	Clock       Clock       `yaml:"clock"`
	Sensors     Sensors     `yaml:"sensors"`
	Display     Display     `yaml:"display"`
	OpenWeather OpenWeather `yaml:"openweather"`
	ThingSpeak  ThingSpeak  `yaml:"thingspeak"`
	Ntfy        Ntfy        `yaml:"ntfy"`
}

type Station struct {
	IntervalSeconds int    `yaml:"interval_seconds"`
	LEDPin          string `yaml:"led_pin"`
	DebugPin        string `yaml:"debug_pin"`
	WakeMode        string `yaml:"wake_mode"` // rtcwake mode: off, mem
}

type Wifi struct {
	SSID      string `yaml:"ssid"`
	Password  string `yaml:"password"`
	Interface string `yaml:"interface"`
	MaxTries  int    `yaml:"max_tries"`
}

type Clock struct {
	NTPHost       string `yaml:"ntp_host"`
	TimezoneHours int    `yaml:"timezone_hours"`
	DST           bool   `yaml:"dst"`
	Sync          string `yaml:"sync"` // auto, always
}

type Sensors struct {
	Bus        int  `yaml:"bus"`
	Fahrenheit bool `yaml:"fahrenheit"`
}

type Display struct {
	Bus          string   `yaml:"bus"` // periph bus name, "" for default
	Pages        []string `yaml:"pages"`
	DwellSeconds int      `yaml:"dwell_seconds"`
	IconDir      string   `yaml:"icon_dir"`
}

type OpenWeather struct {
	APIKey         string  `yaml:"api_key"`
	City           string  `yaml:"city"` // "City,CC"
	Lat            float64 `yaml:"lat"`
	Lon            float64 `yaml:"lon"`
	CurrentURL     string  `yaml:"current_url"`
	ForecastURL    string  `yaml:"forecast_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

type ThingSpeak struct {
	WriteKey       string `yaml:"write_key"`
	URL            string `yaml:"url"`
	Transport      string `yaml:"transport"` // http, mqtt
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MQTT           MQTT   `yaml:"mqtt"`
}

type MQTT struct {
	Broker    string `yaml:"broker"`
	Port      int    `yaml:"port"`
	ClientID  string `yaml:"client_id"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	ChannelID string `yaml:"channel_id"`
}

type Ntfy struct {
	URL string `yaml:"url"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("can't read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

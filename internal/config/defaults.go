package config

const (
	defaultInterval    = 900
	defaultMaxTries    = 20
	defaultDwell       = 5
	defaultTimeout     = 10
	defaultNTPHost     = "pool.ntp.org"
	defaultCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
	defaultForecastURL = "https://api.openweathermap.org/data/2.5/onecall"
	defaultUpdateURL   = "https://api.thingspeak.com/update"
	defaultMQTTPort    = 1883
)

var defaultPages = []string{"clock", "weather", "forecast", "sensors", "atmosphere"}

func applyDefaults(cfg *Config) {
	if cfg.Station.IntervalSeconds == 0 {
		cfg.Station.IntervalSeconds = defaultInterval
	}
	if cfg.Station.WakeMode == "" {
		cfg.Station.WakeMode = "off"
	}

	if cfg.Wifi.MaxTries == 0 {
		cfg.Wifi.MaxTries = defaultMaxTries
	}
	if cfg.Wifi.Interface == "" {
		cfg.Wifi.Interface = "wlan0"
	}

	if cfg.Clock.NTPHost == "" {
		cfg.Clock.NTPHost = defaultNTPHost
	}
	if cfg.Clock.Sync == "" {
		cfg.Clock.Sync = "auto"
	}

	if cfg.Sensors.Bus == 0 {
		cfg.Sensors.Bus = 1
	}

	if len(cfg.Display.Pages) == 0 {
		cfg.Display.Pages = defaultPages
	}
	if cfg.Display.DwellSeconds == 0 {
		cfg.Display.DwellSeconds = defaultDwell
	}
	if cfg.Display.IconDir == "" {
		cfg.Display.IconDir = "img"
	}

	if cfg.OpenWeather.CurrentURL == "" {
		cfg.OpenWeather.CurrentURL = defaultCurrentURL
	}
	if cfg.OpenWeather.ForecastURL == "" {
		cfg.OpenWeather.ForecastURL = defaultForecastURL
	}
	if cfg.OpenWeather.TimeoutSeconds == 0 {
		cfg.OpenWeather.TimeoutSeconds = defaultTimeout
	}

	if cfg.ThingSpeak.URL == "" {
		cfg.ThingSpeak.URL = defaultUpdateURL
	}
	if cfg.ThingSpeak.Transport == "" {
		cfg.ThingSpeak.Transport = "http"
	}
	if cfg.ThingSpeak.TimeoutSeconds == 0 {
		cfg.ThingSpeak.TimeoutSeconds = defaultTimeout
	}
	if cfg.ThingSpeak.MQTT.Port == 0 {
		cfg.ThingSpeak.MQTT.Port = defaultMQTTPort
	}
}

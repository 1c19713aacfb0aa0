package tour

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads its textual YAML form, for
// example "1s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Settings carries the run time settings of a tour run. Service keys come
// from the environment, everything else from an optional YAML file with
// flags overriding both.
type Settings struct {
	// WeatherAPIKey authenticates against the weather forecast service
	WeatherAPIKey string `yaml:"weather_api_key"`
	// MapsAPIKey authenticates against the places search service
	MapsAPIKey string `yaml:"maps_api_key"`
	// PlatformAPIKey authenticates against the agent platform
	PlatformAPIKey string `yaml:"platform_api_key"`
	// PlatformURL overrides the agent platform endpoint
	PlatformURL string `yaml:"platform_url"`
	// WeatherURL overrides the weather forecast endpoint
	WeatherURL string `yaml:"weather_url"`
	// Model the platform agent runs on
	Model string `yaml:"model"`
	// PollInterval paces execution polling
	PollInterval Duration `yaml:"poll_interval"`
	// Timeout bounds a whole run, zero waits forever
	Timeout Duration `yaml:"timeout"`
}

// LoadSettings reads a YAML settings file. An empty path yields zero
// settings, missing keys keep their zero values.
func LoadSettings(path string) (Settings, error) {
	var settings Settings
	if path == "" {
		return settings, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(bs, &settings); err != nil {
		return settings, fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}

// MergeEnv overlays service keys from the environment. Environment values
// win over file values, a missing key is not an error: it surfaces as a
// request failure downstream.
func (s *Settings) MergeEnv() {
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		s.WeatherAPIKey = v
	}
	if v := os.Getenv("MAPS_API_KEY"); v != "" {
		s.MapsAPIKey = v
	}
	if v := os.Getenv("JULEP_API_KEY"); v != "" {
		s.PlatformAPIKey = v
	}
}

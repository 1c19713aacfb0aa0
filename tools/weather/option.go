package weather

import (
	"net/http"
	"time"
)

type Option func(*Config)

func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.apiKey = key
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}

// WithClock fixes the reference time the 24 hour selection horizon is
// anchored to. Tests use it, production code keeps the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.clock = clock
	}
}

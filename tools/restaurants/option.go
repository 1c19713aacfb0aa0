package restaurants

import "googlemaps.github.io/maps"

type Option func(*Config)

func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.apiKey = key
	}
}

func WithLanguage(lang string) Option {
	return func(c *Config) {
		c.language = lang
	}
}

func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.maxResults = n
	}
}

// WithMapsClient injects a prebuilt places client. Without it the tool
// builds one from the configured API key on first use.
func WithMapsClient(clt *maps.Client) Option {
	return func(c *Config) {
		c.client = clt
	}
}

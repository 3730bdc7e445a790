package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type CommonHTTP struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type TicketmasterConfig struct {
	BaseURL  string     `yaml:"base_url"` // default https://app.ticketmaster.com/discovery/v2/events
	APIKey   string     `yaml:"api_key"`  // empty disables the adapter
	PageSize int        `yaml:"page_size"`
	HTTP     CommonHTTP `yaml:"http"`
}

type EventbriteConfig struct {
	BaseURL string     `yaml:"base_url"` // default https://www.eventbriteapi.com/v3/events/search/
	APIKey  string     `yaml:"api_key"`  // empty disables the adapter
	HTTP    CommonHTTP `yaml:"http"`
}

type SourceConfig struct {
	Type         string             `yaml:"type"` // "ticketmaster" | "eventbrite"
	Ticketmaster TicketmasterConfig `yaml:"ticketmaster"`
	Eventbrite   EventbriteConfig   `yaml:"eventbrite"`
}

type CacheConfig struct {
	MaxEntries int           `yaml:"max_entries"` // default 100
	TTL        time.Duration `yaml:"ttl"`         // default 1h
}

type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Cache   CacheConfig    `yaml:"cache"`
	Sources []SourceConfig `yaml:"sources"`
}

// Default returns the configuration used when no file is supplied: both
// adapters present but disabled until a credential arrives via env.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Cache:  CacheConfig{MaxEntries: 100, TTL: time.Hour},
		Sources: []SourceConfig{
			{Type: "ticketmaster"},
			{Type: "eventbrite"},
		},
	}
}

// Load reads a YAML config file. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = 100
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = time.Hour
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	return cfg, nil
}

// ApplyEnv overlays credentials from the environment onto the config.
// An adapter with no key in either place stays disabled.
func (c *Config) ApplyEnv() {
	tmKey := os.Getenv("TICKETMASTER_API_KEY")
	ebKey := os.Getenv("EVENTBRITE_API_KEY")
	for i := range c.Sources {
		switch c.Sources[i].Type {
		case "ticketmaster":
			if tmKey != "" {
				c.Sources[i].Ticketmaster.APIKey = tmKey
			}
		case "eventbrite":
			if ebKey != "" {
				c.Sources[i].Eventbrite.APIKey = ebKey
			}
		}
	}
}

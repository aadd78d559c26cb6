package config

import "time"

// DefaultOnlineCheckInterval is used when no positive interval is configured.
const DefaultOnlineCheckInterval = 3 * time.Second

// Config holds runtime settings for the gophterms CLI.
//
// Fields:
//   - ServerURL: base URL of the gophterms HTTP server.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabaseFile: path of the local SQLite store.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	DatabaseFile        string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = DefaultOnlineCheckInterval
	c.RequestTimeout = 10 * time.Second
	c.DatabaseFile = "data/gophterms.db"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

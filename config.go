package prodcrawl

import "time"

// Storage backends.
const (
	StorageFS     = "fs"
	StorageSQLite = "sqlite"
)

// Config holds the settings for a crawl run.
type Config struct {
	Domains []string      `mapstructure:"domains"`
	Quota   int           `mapstructure:"quota"`
	Workers int           `mapstructure:"workers"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Storage StorageConfig `mapstructure:"storage"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// FetchConfig configures network access.
type FetchConfig struct {
	Timeout      time.Duration   `mapstructure:"timeout"`
	UserAgent    string          `mapstructure:"user_agent"`
	MaxBodyBytes int64           `mapstructure:"max_body_bytes"`
	RetryDelays  []time.Duration `mapstructure:"retry_delays"`
}

// StorageConfig selects where product URLs are written.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	DBPath  string `mapstructure:"db_path"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.Quota <= 0 {
		return Errorf(EINVALID, "quota must be > 0")
	}
	if c.Workers <= 0 {
		return Errorf(EINVALID, "workers must be > 0")
	}
	if c.Fetch.Timeout <= 0 {
		return Errorf(EINVALID, "fetch.timeout must be > 0")
	}
	if c.Fetch.MaxBodyBytes < 0 {
		return Errorf(EINVALID, "fetch.max_body_bytes must be >= 0")
	}
	for _, d := range c.Fetch.RetryDelays {
		if d < 0 {
			return Errorf(EINVALID, "fetch.retry_delays must not be negative")
		}
	}
	switch c.Storage.Backend {
	case StorageFS:
		if c.Storage.Dir == "" {
			return Errorf(EINVALID, "storage.dir required for the fs backend")
		}
	case StorageSQLite:
		if c.Storage.DBPath == "" {
			return Errorf(EINVALID, "storage.db_path required for the sqlite backend")
		}
	default:
		return Errorf(EINVALID, "unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return Errorf(EINVALID, "unknown log format %q", c.Log.Format)
	}
	return nil
}

// Package viper loads prodcrawl configuration from a file and the
// environment using spf13/viper.
package viper

import (
	"strings"
	"time"

	"github.com/fwojciec/prodcrawl"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, so fetch.timeout
// is read from PRODCRAWL_FETCH_TIMEOUT.
const EnvPrefix = "PRODCRAWL"

// Defaults used when neither the config file nor the environment set a key.
const (
	DefaultQuota        = 1000
	DefaultWorkers      = 4
	DefaultTimeout      = 10 * time.Second
	DefaultUserAgent    = "prodcrawl/0.1"
	DefaultMaxBodyBytes = 10 << 20
)

// LoadConfig builds a Config from defaults, the optional file at path and
// PRODCRAWL_* environment variables, in increasing order of precedence.
// The result is not validated: callers apply their own overrides first and
// then call Config.Validate.
func LoadConfig(path string) (prodcrawl.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return prodcrawl.Config{}, prodcrawl.Errorf(prodcrawl.EINVALID, "read config %s: %v", path, err)
		}
	}

	var cfg prodcrawl.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return prodcrawl.Config{}, prodcrawl.Errorf(prodcrawl.EINVALID, "unmarshal config: %v", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("domains", []string{})
	v.SetDefault("quota", DefaultQuota)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("fetch.timeout", DefaultTimeout)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("fetch.retry_delays", []time.Duration{})
	v.SetDefault("storage.backend", prodcrawl.StorageFS)
	v.SetDefault("storage.dir", ".")
	v.SetDefault("storage.db_path", "prodcrawl.db")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

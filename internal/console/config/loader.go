package config

import (
	"net/url"

	"github.com/spf13/viper"

	"github.com/chiquitav2/user-console/pkg/errors"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

// NewLoaderWithViper uses an existing viper instance, e.g. one that command
// line flags have already been bound to.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	if v == nil {
		v = viper.New()
	}
	return &Loader{v: v}
}

// SetConfigFile makes Load read exactly this file instead of searching the
// default locations. The file must then exist.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// Load loads configuration from files and environment variables.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()
	l.setupEnvVars()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("error reading config file "+l.configFile, err)
		}
		return l.unmarshal()
	}

	l.setupConfigPaths()

	// The config file is optional
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.NewConfigError("error reading config file", err)
		}
	}

	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError("failed to unmarshal config", err)
	}

	if err := l.validate(&cfg); err != nil {
		return nil, errors.NewConfigError("configuration validation failed", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func (l *Loader) setDefaults() {
	l.v.SetDefault("base_url", "http://localhost:8080")
	l.v.SetDefault("token", "")
	l.v.SetDefault("timeout", 30)
	l.v.SetDefault("log_level", "info")
	l.v.SetDefault("log_format", "text")
	l.v.SetDefault("notification_duration", 3000)
}

// setupConfigPaths configures where to search for config files.
func (l *Loader) setupConfigPaths() {
	l.v.SetConfigName(".user-console")
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath("/etc/user-console")
	l.v.AddConfigPath("$HOME")
	l.v.AddConfigPath(".")
}

// setupEnvVars configures environment variable handling.
func (l *Loader) setupEnvVars() {
	l.v.SetEnvPrefix("USER_CONSOLE")
	l.v.AutomaticEnv()
}

// validate validates the configuration.
func (l *Loader) validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return errors.NewInputError("base_url is required", nil)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewInputError("base_url must be an absolute http(s) URL: "+cfg.BaseURL, nil)
	}

	if cfg.Timeout < 1 {
		return errors.NewInputError("timeout must be at least 1 second", nil)
	}

	if cfg.NotificationDuration < 0 {
		return errors.NewInputError("notification_duration must not be negative", nil)
	}

	validLogLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return errors.NewInputError("invalid log_level: "+cfg.LogLevel+" (must be trace, debug, info, warn, or error)", nil)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return errors.NewInputError("invalid log_format: "+cfg.LogFormat+" (must be text or json)", nil)
	}

	return nil
}

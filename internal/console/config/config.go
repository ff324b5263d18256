package config

import "time"

// Config holds the console configuration.
type Config struct {
	BaseURL              string `mapstructure:"base_url"`
	Token                string `mapstructure:"token"`
	Timeout              int    `mapstructure:"timeout"`
	LogLevel             string `mapstructure:"log_level"`
	LogFormat            string `mapstructure:"log_format"`
	NotificationDuration int    `mapstructure:"notification_duration"`
}

// RequestTimeout is the transport timeout for a single API call
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// NotificationTTL is how long notifications stay visible
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationDuration) * time.Millisecond
}

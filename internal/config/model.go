package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Debug   bool   `mapstructure:"debug"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) GetAPIBaseURL() string {
	return strings.TrimSuffix(c.API.BaseURL, "/")
}

func (c *Config) HasAPIBaseURL() bool {
	return len(c.API.BaseURL) > 0
}

func (c *Config) SetAPIBaseURL(baseURL string) error {
	parsedUrl, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	if len(parsedUrl.Scheme) == 0 || len(parsedUrl.Host) == 0 {
		return fmt.Errorf("invalid API base URL: %s must include a scheme and host", baseURL)
	}
	c.API.BaseURL = parsedUrl.String()
	return nil
}

// GetAPIHostname returns the host of the API without scheme or port.
func (c *Config) GetAPIHostname() string {
	parsedUrl, err := url.Parse(c.API.BaseURL)
	if err != nil || len(parsedUrl.Hostname()) == 0 {
		return "localhost"
	}
	return parsedUrl.Hostname()
}

func (c *Config) GetStoragePath() string {
	return c.Storage.Path
}

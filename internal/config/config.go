// Package config loads the client configuration from an optional yaml
// file with an environment-variable overlay.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/fairway-club/clubhouse-api/internal/logging"
	"github.com/fairway-club/clubhouse-api/internal/metrics"
	"github.com/fairway-club/clubhouse-api/internal/session"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// envPrefix scopes the environment overlay. A double underscore
// separates nesting levels so single underscores stay usable inside
// key names: GOLF_BACKEND__BASE_URL -> backend.base_url.
const envPrefix = "GOLF_"

const defaultTimeout = 10 * time.Second

// defaultMetricsAddr is the conventional Prometheus exporter port.
const defaultMetricsAddr = ":9464"

type Config struct {
	Backend   Backend                 `koanf:"backend"`
	Log       logging.Config          `koanf:"log"`
	Session   Session                 `koanf:"session"`
	Telemetry metrics.TelemetryConfig `koanf:"telemetry"`
}

// Backend holds the connection settings for the hosted backend.
type Backend struct {
	BaseURL string        `koanf:"base_url"`
	AnonKey string        `koanf:"anon_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// Session holds the on-disk session location. An empty path means the
// user config directory default.
type Session struct {
	Path string `koanf:"path"`
}

// Load reads the yaml file at path (skipped when path is empty or the
// file does not exist) and overlays GOLF_-prefixed environment
// variables on top.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Backend: Backend{Timeout: defaultTimeout},
		Log:     logging.Config{Level: "info", Format: "text", Service: "golfctl"},
	}

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat config %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// transformEnvKey maps GOLF_BACKEND__BASE_URL to backend.base_url and
// skips everything outside the prefix.
func transformEnvKey(key, value string) (string, any) {
	if !strings.HasPrefix(key, envPrefix) {
		return "", nil
	}
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "__", ".")
	return key, value
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return errors.Errorf("backend.base_url %q must be an http(s) url", c.Backend.BaseURL)
	}
	if c.Backend.AnonKey == "" {
		return errors.New("backend.anon_key is required")
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = defaultTimeout
	}
	if c.Telemetry.Enabled && c.Telemetry.MetricsAddr == "" {
		c.Telemetry.MetricsAddr = defaultMetricsAddr
	}
	return nil
}

// SessionPath resolves the configured session file location, falling
// back to the per-user default.
func (c *Config) SessionPath() (string, error) {
	if c.Session.Path != "" {
		return c.Session.Path, nil
	}
	return session.DefaultPath()
}

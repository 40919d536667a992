// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wagnerlima/glyco-studio/internal/structure"
)

// EnvPrefix prefixes every environment variable, e.g. GLYCO_DATA_DIR.
const EnvPrefix = "GLYCO"

// AuthConfig guards the HTTP transport.
type AuthConfig struct {
	// static token required on /mcp; empty leaves the endpoint open
	BearerToken string `mapstructure:"bearer-token"`

	// public URL of this server, advertised in resource metadata
	ResourceURL string `mapstructure:"resource-url"`

	// authorization server that hands out BearerToken
	ServerURL string `mapstructure:"server-url"`
}

// RateConfig throttles the HTTP MCP endpoint.
type RateConfig struct {
	// sustained requests per second, 0 disables throttling
	Limit float64 `mapstructure:"limit"`

	Burst int `mapstructure:"burst"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the root-level settings struct and is a mix
// of settings available in glyco.yaml, the environment and
// those available from the command line
type Config struct {
	// stdio or http
	Transport string `mapstructure:"transport"`

	// HTTP listen port
	Port string `mapstructure:"port"`

	// directory holding _meta.db, campaigns/ and archive/
	DataDir string `mapstructure:"data-dir"`

	// backbone preset used when a request names none
	Preset string `mapstructure:"preset"`

	Auth AuthConfig `mapstructure:"auth"`
	Rate RateConfig `mapstructure:"rate"`
	Log  LogConfig  `mapstructure:"log"`
}

var defaults = map[string]any{
	"transport":         "stdio",
	"port":              "8081",
	"data-dir":          "./data",
	"preset":            structure.DefaultPreset,
	"auth.bearer-token": "",
	"auth.resource-url": "",
	"auth.server-url":   "",
	"rate.limit":        20.0,
	"rate.burst":        40,
	"log.level":         "info",
	"log.format":        "text",
}

// Unprefixed variables shared with the OAuth front server.
var aliases = map[string]string{
	"port":              "PORT",
	"auth.bearer-token": "MCP_BEARER_TOKEN",
	"auth.resource-url": "MCP_RESOURCE_URL",
	"auth.server-url":   "OAUTH_SERVER_BASE_URL",
}

// Init registers defaults and environment bindings on v and reads the
// config file. file may be empty, in which case glyco.yaml is looked up in
// the working directory and $HOME/.glyco; a missing file is not an error.
func Init(v *viper.Viper, file string) error {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for key, alias := range aliases {
		prefixed := EnvPrefix + "_" + strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToUpper(key))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return err
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("glyco")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".glyco"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// New decodes v into a Config and validates it.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown transport %q (use stdio or http)", c.Transport)
	}
	if c.DataDir == "" {
		return errors.New("data-dir is required")
	}
	if _, err := structure.LookupPreset(c.Preset); err != nil {
		return err
	}
	if c.Rate.Limit < 0 || c.Rate.Burst < 0 {
		return errors.New("rate limit and burst must not be negative")
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (use text or json)", c.Log.Format)
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// Logger builds a logger writing to w in the configured format.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	lvl, _ := l.level()
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

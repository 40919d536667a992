package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func load(t *testing.T, file string) (Config, error) {
	t.Helper()
	v := viper.New()
	if err := Init(v, file); err != nil {
		return Config{}, err
	}
	return New(v)
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := load(t, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Transport != "stdio" || c.Port != "8081" || c.DataDir != "./data" || c.Preset != "alpha" {
		t.Errorf("defaults = %+v", c)
	}
	if c.Rate.Limit != 20 || c.Rate.Burst != 40 {
		t.Errorf("rate = %+v", c.Rate)
	}
	if c.Log.Level != "info" || c.Log.Format != "text" {
		t.Errorf("log = %+v", c.Log)
	}
}

func TestEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GLYCO_TRANSPORT", "http")
	t.Setenv("GLYCO_DATA_DIR", "/var/lib/glyco")
	t.Setenv("GLYCO_RATE_LIMIT", "2.5")
	t.Setenv("GLYCO_LOG_FORMAT", "json")
	t.Setenv("MCP_BEARER_TOKEN", "from-alias")
	t.Setenv("PORT", "9000")

	c, err := load(t, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Transport != "http" || c.DataDir != "/var/lib/glyco" || c.Rate.Limit != 2.5 || c.Log.Format != "json" {
		t.Errorf("config = %+v", c)
	}
	if c.Auth.BearerToken != "from-alias" {
		t.Errorf("bearer token = %q, want alias value", c.Auth.BearerToken)
	}
	if c.Port != "9000" {
		t.Errorf("port = %q, want 9000", c.Port)
	}
}

func TestPrefixedEnvBeatsAlias(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MCP_BEARER_TOKEN", "alias")
	t.Setenv("GLYCO_AUTH_BEARER_TOKEN", "prefixed")

	c, err := load(t, "")
	if err != nil {
		t.Fatal(err)
	}
	if c.Auth.BearerToken != "prefixed" {
		t.Errorf("bearer token = %q, want prefixed", c.Auth.BearerToken)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := `transport: http
preset: extended
auth:
  resource-url: https://glyco.example/mcp
rate:
  burst: 5
`
	if err := os.WriteFile(filepath.Join(dir, "glyco.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := load(t, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Transport != "http" || c.Preset != "extended" || c.Auth.ResourceURL != "https://glyco.example/mcp" || c.Rate.Burst != 5 {
		t.Errorf("config = %+v", c)
	}
	if c.Rate.Limit != 20 {
		t.Errorf("unset key lost its default: rate.limit = %v", c.Rate.Limit)
	}
}

func TestExplicitFileMustExist(t *testing.T) {
	if _, err := load(t, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Transport: "stdio", DataDir: "d", Preset: "alpha", Log: LogConfig{Level: "info", Format: "text"}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"transport", func(c *Config) { c.Transport = "grpc" }},
		{"data dir", func(c *Config) { c.DataDir = "" }},
		{"preset", func(c *Config) { c.Preset = "zigzag" }},
		{"rate", func(c *Config) { c.Rate.Limit = -1 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	LogConfig{Level: "warn", Format: "json"}.Logger(&buf).Info("hidden")
	LogConfig{Level: "warn", Format: "json"}.Logger(&buf).Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("log output = %q", out)
	}
}

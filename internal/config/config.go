// Package config loads the process-wide settings once at startup.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional YAML file, a .env file in the working directory, the process
// environment and finally explicit command-line overrides.
package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/security"
)

// Environment variable names.
const (
	EnvBaseURL        = "API_BASE_URL"
	EnvAPIKey         = "API_KEY"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvHTTPAddr       = "TODO_MCP_HTTP_ADDR"
	EnvRequestTimeout = "API_REQUEST_TIMEOUT"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:3000"

// Config holds validated settings. It is built once and never mutated.
type Config struct {
	BaseURL   string
	APIKey    string
	LogLevel  string
	LogFormat string
	// HTTPAddr, when set, serves MCP over streamable HTTP instead of stdio.
	HTTPAddr string
	// RequestTimeout bounds each outbound request. Zero means no client timeout.
	RequestTimeout time.Duration
}

// Options are command-line overrides. Empty fields are ignored.
type Options struct {
	ConfigFile string
	EnvFile    string
	BaseURL    string
	HTTPAddr   string
	LogLevel   string
}

// fileConfig mirrors the YAML config file.
type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	HTTPAddr       string `yaml:"http_addr"`
	RequestTimeout string `yaml:"request_timeout"`
}

// Load builds a Config from all sources and validates it.
// A missing API key yields an error matching errors.ErrConfiguration.
func Load(opts Options) (*Config, error) {
	raw := fileConfig{
		BaseURL:   DefaultBaseURL,
		LogLevel:  "info",
		LogFormat: "text",
	}

	if opts.ConfigFile != "" {
		if err := readFile(opts.ConfigFile, &raw); err != nil {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.ConfigurationWithCause("failed to load "+envFile, err)
	}

	overlay(&raw.BaseURL, os.Getenv(EnvBaseURL))
	overlay(&raw.APIKey, os.Getenv(EnvAPIKey))
	overlay(&raw.LogLevel, os.Getenv(EnvLogLevel))
	overlay(&raw.LogFormat, os.Getenv(EnvLogFormat))
	overlay(&raw.HTTPAddr, os.Getenv(EnvHTTPAddr))
	overlay(&raw.RequestTimeout, os.Getenv(EnvRequestTimeout))

	overlay(&raw.BaseURL, opts.BaseURL)
	overlay(&raw.HTTPAddr, opts.HTTPAddr)
	overlay(&raw.LogLevel, opts.LogLevel)

	return raw.validate()
}

func readFile(path string, into *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigurationWithCause("failed to read config file", err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return errors.ConfigurationWithCause("failed to parse config file", err)
	}
	return nil
}

func overlay(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func (f fileConfig) validate() (*Config, error) {
	if err := security.ValidateCredential(f.APIKey); err != nil {
		return nil, err
	}

	baseURL, err := security.NormalizeBaseURL(f.BaseURL)
	if err != nil {
		return nil, err
	}

	var timeout time.Duration
	if f.RequestTimeout != "" {
		timeout, err = time.ParseDuration(f.RequestTimeout)
		if err != nil {
			return nil, errors.ConfigurationWithCause("invalid request timeout", err)
		}
		if timeout < 0 {
			return nil, errors.Configuration("request timeout must not be negative")
		}
	}

	format := strings.ToLower(f.LogFormat)
	if format != "text" && format != "json" {
		return nil, errors.Configuration("log format must be text or json")
	}

	return &Config{
		BaseURL:        baseURL,
		APIKey:         f.APIKey,
		LogLevel:       f.LogLevel,
		LogFormat:      format,
		HTTPAddr:       f.HTTPAddr,
		RequestTimeout: timeout,
	}, nil
}

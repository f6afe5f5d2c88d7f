// Package config provides gateway configuration loaded from an optional YAML
// file and environment variables. All fields have safe defaults so the binary
// runs locally without any setup.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the gateway.
type Config struct {
	// HTTP listener
	Host string `yaml:"host"` // HOST, default: "0.0.0.0"
	Port int    `yaml:"port"` // PORT, default: 3333

	// Backend post-agent service
	BackendBaseURL string        `yaml:"backend_base_url"` // BACKEND_BASE_URL, default: "http://localhost:8080"
	BackendTimeout time.Duration `yaml:"backend_timeout"`  // BACKEND_TIMEOUT, default: 120s; 0 disables

	// Observability
	LogLevel     string `yaml:"log_level"`     // LOG_LEVEL, default: "info"
	LogFormat    string `yaml:"log_format"`    // LOG_FORMAT, default: "text"
	OTLPEndpoint string `yaml:"otlp_endpoint"` // OTEL_EXPORTER_OTLP_ENDPOINT, default: "" (export off)
	ServiceName  string `yaml:"service_name"`  // SERVICE_NAME, default: "linkedin-post-agent"
}

const (
	envKeyConfigFile     = "POSTAGENT_CONFIG"
	envKeyHost           = "HOST"
	envKeyPort           = "PORT"
	envKeyBackendBaseURL = "BACKEND_BASE_URL"
	envKeyBackendTimeout = "BACKEND_TIMEOUT"
	envKeyLogLevel       = "LOG_LEVEL"
	envKeyLogFormat      = "LOG_FORMAT"
	envKeyOTLPEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envKeyServiceName    = "SERVICE_NAME"
)

const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 3333
	DefaultBackendBaseURL = "http://localhost:8080"
	DefaultBackendTimeout = 120 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultServiceName    = "linkedin-post-agent"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		BackendBaseURL: DefaultBackendBaseURL,
		BackendTimeout: DefaultBackendTimeout,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		ServiceName:    DefaultServiceName,
	}
}

// Load applies, in order, defaults, the YAML file named by POSTAGENT_CONFIG
// (if set) and environment variables.
func Load() (Config, error) {
	return LoadFile(ConfigFileFromEnv())
}

// LoadFile is Load with an explicit YAML file path. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFileFromEnv returns the YAML file path named by POSTAGENT_CONFIG.
func ConfigFileFromEnv() string {
	return os.Getenv(envKeyConfigFile)
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	// Absent keys keep the values already in c.
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Host = envOr(envKeyHost, c.Host)
	c.BackendBaseURL = envOr(envKeyBackendBaseURL, c.BackendBaseURL)
	c.LogLevel = envOr(envKeyLogLevel, c.LogLevel)
	c.LogFormat = envOr(envKeyLogFormat, c.LogFormat)
	c.OTLPEndpoint = envOr(envKeyOTLPEndpoint, c.OTLPEndpoint)
	c.ServiceName = envOr(envKeyServiceName, c.ServiceName)

	if v := os.Getenv(envKeyPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, envKeyPort, v)
		}
		c.Port = port
	}
	if v := os.Getenv(envKeyBackendTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, envKeyBackendTimeout, v, err)
		}
		c.BackendTimeout = d
	}
	return nil
}

// Validate reports the first setting the gateway cannot start with.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	u, err := url.Parse(c.BackendBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend base url %q must be an absolute http(s) URL", ErrInvalidConfig, c.BackendBaseURL)
	}
	if c.BackendTimeout < 0 {
		return fmt.Errorf("%w: backend timeout %s is negative", ErrInvalidConfig, c.BackendTimeout)
	}
	return nil
}

// Addr is the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

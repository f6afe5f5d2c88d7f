package main

import (
	"github.com/spf13/cobra"

	"github.com/arno-dev/postagent-mcp/internal/infra/config"
)

const (
	flagConfig         = "config"
	flagBackendURL     = "backend-url"
	flagBackendTimeout = "backend-timeout"
	flagLogLevel       = "log-level"
	flagLogFormat      = "log-format"
	flagHost           = "host"
	flagPort           = "port"
)

func addListenFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagHost, "", "Listen host (default: $HOST or 0.0.0.0)")
	cmd.Flags().IntP(flagPort, "p", 0, "Listen port (default: $PORT or 3333)")
}

// loadConfig layers explicitly set flags over the file and environment
// configuration, then validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	fs := cmd.Flags()

	path, _ := fs.GetString(flagConfig)
	if path == "" {
		path = config.ConfigFileFromEnv()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, exitError(exitUsage, "load config: %v", err)
	}

	if fs.Changed(flagHost) {
		cfg.Host, _ = fs.GetString(flagHost)
	}
	if fs.Changed(flagPort) {
		cfg.Port, _ = fs.GetInt(flagPort)
	}
	if fs.Changed(flagBackendURL) {
		cfg.BackendBaseURL, _ = fs.GetString(flagBackendURL)
	}
	if fs.Changed(flagBackendTimeout) {
		cfg.BackendTimeout, _ = fs.GetDuration(flagBackendTimeout)
	}
	if fs.Changed(flagLogLevel) {
		cfg.LogLevel, _ = fs.GetString(flagLogLevel)
	}
	if fs.Changed(flagLogFormat) {
		cfg.LogFormat, _ = fs.GetString(flagLogFormat)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, exitError(exitUsage, "%v", err)
	}
	return cfg, nil
}

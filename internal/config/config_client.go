package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

// ClientConfig configures the command-line companions of the server: the
// device simulator and the terminal monitor.
type ClientConfig struct {
	// ServerURL is the origin of the VitaScope server.
	// Env: VITASCOPE_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: VITASCOPE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Interval is the pause between two simulated readings.
	// Env: VITASCOPE_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// Refresh is the polling period of the terminal monitor.
	// Env: VITASCOPE_REFRESH
	Refresh time.Duration `env:"REFRESH"`

	// DeviceID identifies the simulated device.
	// Env: VITASCOPE_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// Count limits the number of simulated readings; 0 means unlimited.
	// Env: VITASCOPE_COUNT
	Count int `env:"COUNT"`

	// LogFile receives the logs of the terminal monitor.
	// Env: VITASCOPE_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

type clientEnv struct {
	Client ClientConfig `envPrefix:"VITASCOPE_"`
}

// GetClientConfig loads the client configuration from VITASCOPE_* variables,
// then from args, then from built-in defaults. For every field the first
// non-zero value wins.
func GetClientConfig(args []string) (*ClientConfig, error) {
	var fromEnv clientEnv
	if err := parseEnv(&fromEnv); err != nil {
		return nil, err
	}

	fromFlags, err := parseClientFlags(args)
	if err != nil {
		return nil, err
	}

	cfg := new(ClientConfig)
	for _, src := range []*ClientConfig{&fromEnv.Client, fromFlags, clientDefaults()} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, fmt.Errorf("error merging client configs: %w", err)
		}
	}

	return cfg, cfg.validate()
}

func parseClientFlags(args []string) (*ClientConfig, error) {
	fs := flag.NewFlagSet(clientName(), flag.ContinueOnError)

	cfg := &ClientConfig{}
	fs.StringVar(&cfg.ServerURL, "s", "", "VitaScope server URL")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 5s)")
	fs.DurationVar(&cfg.Interval, "i", 0, "Interval between simulated readings")
	fs.DurationVar(&cfg.Refresh, "r", 0, "Monitor refresh period")
	fs.StringVar(&cfg.DeviceID, "device", "", "Simulated device identifier")
	fs.IntVar(&cfg.Count, "n", 0, "Number of readings to send, 0 for unlimited")
	fs.StringVar(&cfg.LogFile, "log", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func clientDefaults() *ClientConfig {
	return &ClientConfig{
		ServerURL:      "http://127.0.0.1:5000",
		RequestTimeout: 5 * time.Second,
		Interval:       time.Second,
		Refresh:        10 * time.Second,
		DeviceID:       "sim-001",
		LogFile:        "vitascope-monitor.log",
	}
}

func (c *ClientConfig) validate() error {
	var errs []error
	if c.ServerURL == "" {
		errs = append(errs, fmt.Errorf("%w: empty server url", ErrInvalidClientConfigs))
	}
	if c.Interval <= 0 || c.Refresh <= 0 || c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: non-positive interval or timeout", ErrInvalidClientConfigs))
	}
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("%w: negative count", ErrInvalidClientConfigs))
	}
	return errors.Join(errs...)
}

func clientName() string {
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "vitascope-client"
}

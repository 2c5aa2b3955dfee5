package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type appConfig struct {
	address         string
	discover        bool
	discoverTimeout time.Duration
	mode            int
	logFormat       string
	logLevel        string
	metricsAddr     string
	logMetricsEvery time.Duration
	keepaliveEvery  time.Duration
}

func parseFlags() (*appConfig, bool) {
	cfg := &appConfig{}
	address := flag.String("address", "", "Device address host:port (default: mDNS discovery, falling back to 192.168.2.1:5100)")
	discover := flag.Bool("discover", true, "Attempt mDNS discovery when -address is empty (falls back to 192.168.2.1:5100)")
	discoverTimeout := flag.Duration("discover-timeout", 2*time.Second, "mDNS discovery timeout")
	mode := flag.Int("mode", 9, "Detection mode to arm (see protocol.Mode* constants; default 9 = outdoor)")
	logFormat := flag.String("log-format", "text", "Log format: text|json")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	metricsAddr := flag.String("metrics-addr", "", "Metrics HTTP listen address (e.g., :9100); empty disables")
	logMetricsEvery := flag.Duration("log-metrics-interval", 0, "If >0, periodically log metrics counters")
	keepaliveEvery := flag.Duration("keepalive-interval", 5*time.Second, "Interval between keepalive status polls while idle")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	setFlags := map[string]struct{}{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = struct{}{} })

	cfg.address = *address
	cfg.discover = *discover
	cfg.discoverTimeout = *discoverTimeout
	cfg.mode = *mode
	cfg.logFormat = *logFormat
	cfg.logLevel = *logLevel
	cfg.metricsAddr = *metricsAddr
	cfg.logMetricsEvery = *logMetricsEvery
	cfg.keepaliveEvery = *keepaliveEvery

	if err := applyEnvOverrides(cfg, setFlags); err != nil {
		fmt.Printf("environment override error: %v\n", err)
		return nil, *showVersion
	}
	if err := cfg.validate(); err != nil {
		fmt.Printf("configuration error: %v\n", err)
		return nil, *showVersion
	}
	return cfg, *showVersion
}

func (c *appConfig) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	switch c.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format: %s", c.logFormat)
	}
	switch c.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level: %s", c.logLevel)
	}
	if c.mode < 1 || c.mode > 16 {
		return fmt.Errorf("mode must be between 1 and 16 (got %d)", c.mode)
	}
	if c.discoverTimeout <= 0 {
		return fmt.Errorf("discover-timeout must be > 0")
	}
	if c.keepaliveEvery <= 0 {
		return fmt.Errorf("keepalive-interval must be > 0")
	}
	return nil
}

// applyEnvOverrides maps IRONSIGHT_CLIENT_* environment variables to
// config fields unless a corresponding flag was explicitly set (flags
// always win over environment).
func applyEnvOverrides(c *appConfig, set map[string]struct{}) error {
	var firstErr error
	get := func(k string) (string, bool) { v, ok := os.LookupEnv(k); return strings.TrimSpace(v), ok }

	if _, ok := set["address"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_ADDRESS"); ok && v != "" {
			c.address = v
		}
	}
	if _, ok := set["discover"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_DISCOVER"); ok && v != "" {
			switch strings.ToLower(v) {
			case "1", "true", "yes", "on":
				c.discover = true
			case "0", "false", "no", "off":
				c.discover = false
			}
		}
	}
	if _, ok := set["mode"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_MODE"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.mode = n
			} else if firstErr == nil {
				firstErr = fmt.Errorf("invalid IRONSIGHT_CLIENT_MODE: %w", err)
			}
		}
	}
	if _, ok := set["log-format"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_LOG_FORMAT"); ok && v != "" {
			c.logFormat = v
		}
	}
	if _, ok := set["log-level"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_LOG_LEVEL"); ok && v != "" {
			c.logLevel = v
		}
	}
	if _, ok := set["metrics-addr"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_METRICS"); ok {
			c.metricsAddr = v
		}
	}
	if _, ok := set["keepalive-interval"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_KEEPALIVE_INTERVAL"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				c.keepaliveEvery = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid IRONSIGHT_CLIENT_KEEPALIVE_INTERVAL: %w", err)
			}
		}
	}
	if _, ok := set["log-metrics-interval"]; !ok {
		if v, ok := get("IRONSIGHT_CLIENT_LOG_METRICS_INTERVAL"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d >= 0 {
				c.logMetricsEvery = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid IRONSIGHT_CLIENT_LOG_METRICS_INTERVAL: %w", err)
			}
		}
	}
	return firstErr
}

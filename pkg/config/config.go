// Package config loads worker pool configuration from YAML or JSON files
// with environment variable overrides. The pool core itself takes a plain
// capacity integer; this package is the boundary where operators feed it.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix for environment variable overrides
// (THREADED_CAPACITY, THREADED_QUEUE_WARN, THREADED_METRICS_ADDR).
const EnvPrefix = "THREADED"

// PoolConfig configures a worker pool and its surrounding plumbing.
type PoolConfig struct {
	// Capacity is the fixed number of workers. Must be at least 1.
	Capacity int `yaml:"capacity" json:"capacity"`

	// QueueWarn is the queue depth at which operators should be warned.
	// The queue is unbounded by design; this only drives log noise.
	QueueWarn int `yaml:"queue_warn" json:"queue_warn"`

	// MetricsAddr is the listen address for the metrics endpoint.
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
}

// Default returns the configuration used when no file is given.
func Default() PoolConfig {
	return PoolConfig{
		Capacity:    runtime.NumCPU(),
		QueueWarn:   1000,
		MetricsAddr: ":9100",
	}
}

// Validate rejects configurations the pool would refuse at construction.
// Catching Capacity < 1 here turns a runtime contract panic into a
// load-time error.
func (c PoolConfig) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.QueueWarn < 0 {
		return fmt.Errorf("queue_warn must not be negative, got %d", c.QueueWarn)
	}
	if c.MetricsAddr != "" && !strings.Contains(c.MetricsAddr, ":") {
		return fmt.Errorf("metrics_addr %q is not a host:port address", c.MetricsAddr)
	}
	return nil
}

// Load loads configuration from a file, detecting the format by extension
// (.json is JSON, everything else is treated as YAML).
func Load(path string) (PoolConfig, error) {
	cfg := Default()
	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(path, &cfg)
	} else {
		err = LoadYAML(path, &cfg)
	}
	if err != nil {
		return PoolConfig{}, err
	}
	return cfg, nil
}

// LoadWithEnv loads configuration from a file and applies THREADED_*
// environment variable overrides on top, then validates the result.
func LoadWithEnv(path string) (PoolConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return PoolConfig{}, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return PoolConfig{}, fmt.Errorf("failed to apply env overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return PoolConfig{}, err
	}
	return cfg, nil
}

func (c *PoolConfig) applyEnvOverrides() error {
	if err := envInt(EnvPrefix+"_CAPACITY", &c.Capacity); err != nil {
		return err
	}
	if err := envInt(EnvPrefix+"_QUEUE_WARN", &c.QueueWarn); err != nil {
		return err
	}
	if v := os.Getenv(EnvPrefix + "_METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	return nil
}

func envInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer value %q for %s", v, key)
	}
	*target = n
	return nil
}

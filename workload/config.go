package workload

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultMaxKey bounds the random keys: keys are drawn from [0, DefaultMaxKey).
const DefaultMaxKey = 100_000_000

var ErrInvalidConfig = errors.New("invalid workload config")

// Config describes one run of the workload.
type Config struct {
	InitialKeys   int     `yaml:"initial_keys"`
	TotalOps      int     `yaml:"total_ops"`
	SearchPercent float64 `yaml:"search_percent"`
	InsertPercent float64 `yaml:"insert_percent"`
	Threads       int     `yaml:"threads"`
	Seed          uint64  `yaml:"seed"`
	MaxKey        int     `yaml:"max_key"`
	// Dump keeps the final list keys in the report.
	Dump bool `yaml:"dump"`
}

// DefaultConfig returns the parameters used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		InitialKeys:   1000,
		TotalOps:      100000,
		SearchPercent: 0.99,
		InsertPercent: 0.005,
		Threads:       1,
		Seed:          1,
		MaxKey:        DefaultMaxKey,
	}
}

// DeletePercent is the share of operations left to deletes.
func (c Config) DeletePercent() float64 {
	return 1 - c.SearchPercent - c.InsertPercent
}

// OpsPerThread is TotalOps / Threads; the remainder is not executed.
func (c Config) OpsPerThread() int {
	return c.TotalOps / c.Threads
}

// Dropped is the number of operations lost to integer division.
func (c Config) Dropped() int {
	return c.TotalOps % c.Threads
}

func (c Config) Validate() error {
	switch {
	case c.InitialKeys < 0:
		return fmt.Errorf("%w: initial_keys must be non-negative, got %d", ErrInvalidConfig, c.InitialKeys)
	case c.TotalOps < 0:
		return fmt.Errorf("%w: total_ops must be non-negative, got %d", ErrInvalidConfig, c.TotalOps)
	case c.Threads < 1:
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidConfig, c.Threads)
	case c.MaxKey < 1:
		return fmt.Errorf("%w: max_key must be positive, got %d", ErrInvalidConfig, c.MaxKey)
	case c.SearchPercent < 0 || c.SearchPercent > 1:
		return fmt.Errorf("%w: search_percent must be in [0, 1], got %g", ErrInvalidConfig, c.SearchPercent)
	case c.InsertPercent < 0 || c.InsertPercent > 1:
		return fmt.Errorf("%w: insert_percent must be in [0, 1], got %g", ErrInvalidConfig, c.InsertPercent)
	case c.SearchPercent+c.InsertPercent > 1:
		return fmt.Errorf("%w: search_percent + insert_percent must not exceed 1, got %g",
			ErrInvalidConfig, c.SearchPercent+c.InsertPercent)
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	// пустой файл - значения по умолчанию
	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Package config loads heap tuning and type aliases from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/pvalue/internal/logging"
	"github.com/aretw0/pvalue/pkg/types"
	"github.com/aretw0/pvalue/pkg/value"
)

// DefaultPath is where the CLI looks when no --config flag is given.
const DefaultPath = "pvalue.yaml"

// Config is the decoded configuration file.
//
//	heap:
//	  max_cells: 100000
//	  seq_min_capacity: 4
//	map:
//	  load_factor: 1.0
//	log:
//	  level: debug
//	types:
//	  Point: "(x: int, y: int)"
//	  Path: "seq[Point]"
type Config struct {
	Heap  HeapConfig        `mapstructure:"heap"`
	Map   MapConfig         `mapstructure:"map"`
	Log   LogConfig         `mapstructure:"log"`
	Types map[string]string `mapstructure:"types"`
}

type HeapConfig struct {
	MaxCells       int64 `mapstructure:"max_cells"`
	SeqMinCapacity int   `mapstructure:"seq_min_capacity"`
}

type MapConfig struct {
	LoadFactor float64 `mapstructure:"load_factor"`
}

type LogConfig struct {
	Level slog.Level `mapstructure:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Heap: HeapConfig{SeqMinCapacity: value.DefaultSeqMinCapacity},
		Map:  MapConfig{LoadFactor: value.DefaultLoadFactor},
		Log:  LogConfig{Level: slog.LevelInfo},
	}
}

// Load reads path. A missing file is not an error: the defaults are returned.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode copies raw onto cfg. Unknown keys are rejected and log levels
// may be given by name.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(levelHook),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func levelHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(slog.Level(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	level, err := logging.LookupLevel(data.(string))
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Validate rejects settings no heap could honor.
func (c Config) Validate() error {
	if c.Heap.MaxCells < 0 {
		return fmt.Errorf("heap.max_cells must not be negative, got %d", c.Heap.MaxCells)
	}
	if c.Heap.SeqMinCapacity <= 0 {
		return fmt.Errorf("heap.seq_min_capacity must be positive, got %d", c.Heap.SeqMinCapacity)
	}
	if c.Map.LoadFactor <= 0 {
		return fmt.Errorf("map.load_factor must be positive, got %g", c.Map.LoadFactor)
	}
	if _, err := c.TypeEnv(); err != nil {
		return err
	}
	return nil
}

// TypeEnv resolves the declared type aliases.
func (c Config) TypeEnv() (types.Env, error) {
	return types.ParseEnv(c.Types)
}

// HeapOptions converts the heap and map sections into heap options.
func (c Config) HeapOptions() []value.Option {
	return []value.Option{
		value.WithLimits(value.Limits{MaxCells: c.Heap.MaxCells}),
		value.WithSeqMinCapacity(c.Heap.SeqMinCapacity),
		value.WithLoadFactor(c.Map.LoadFactor),
	}
}

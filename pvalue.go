package pvalue

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/pvalue/internal/config"
	"github.com/aretw0/pvalue/internal/logging"
	"github.com/aretw0/pvalue/pkg/observability"
	"github.com/aretw0/pvalue/pkg/registry"
	"github.com/aretw0/pvalue/pkg/types"
	"github.com/aretw0/pvalue/pkg/value"
)

// Version is the release of the module.
const Version = "0.1.0"

// Runtime bundles a heap with the collaborators it is usually built with:
// configuration, logger, foreign registry, type aliases and a metrics collector.
type Runtime struct {
	Config    config.Config
	Logger    *slog.Logger
	Registry  *registry.Registry
	Heap      *value.Heap
	Types     types.Env
	Collector *observability.HeapCollector

	configPath string
	configSet  bool
	heapOpts   []value.Option
	labels     prometheus.Labels
}

// Option defines a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithConfig uses cfg instead of reading a file.
func WithConfig(cfg config.Config) Option {
	return func(r *Runtime) {
		r.Config = cfg
		r.configSet = true
	}
}

// WithConfigFile reads the configuration from path. A missing file yields defaults.
func WithConfigFile(path string) Option {
	return func(r *Runtime) {
		r.configPath = path
	}
}

// WithLogger sets a custom structured logger. Without it a logger is built
// from the configured level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.Logger = logger
	}
}

// WithRegistry injects a foreign registry, e.g. one shared by several runtimes.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runtime) {
		r.Registry = reg
	}
}

// WithHeapOptions appends heap options after the configured ones, so they win.
func WithHeapOptions(opts ...value.Option) Option {
	return func(r *Runtime) {
		r.heapOpts = append(r.heapOpts, opts...)
	}
}

// WithMetricLabels sets constant labels on every heap metric.
func WithMetricLabels(labels prometheus.Labels) Option {
	return func(r *Runtime) {
		r.labels = labels
	}
}

// New builds a Runtime. Configuration comes from WithConfig, then
// WithConfigFile, then the defaults.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}

	if !r.configSet {
		r.Config = config.Default()
		if r.configPath != "" {
			cfg, err := config.Load(r.configPath)
			if err != nil {
				return nil, err
			}
			r.Config = cfg
		}
	} else if err := r.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if r.Logger == nil {
		r.Logger = logging.New(r.Config.Log.Level)
	}
	if r.Registry == nil {
		r.Registry = registry.NewRegistry(registry.WithLogger(r.Logger))
	}

	env, err := r.Config.TypeEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid type aliases: %w", err)
	}
	r.Types = env

	heapOpts := append(r.Config.HeapOptions(),
		value.WithLogger(r.Logger),
		value.WithRegistry(r.Registry),
	)
	r.Heap = value.NewHeap(append(heapOpts, r.heapOpts...)...)
	r.Collector = observability.NewHeapCollector(r.Heap, r.labels)

	r.Logger.Debug("runtime ready",
		"max_cells", r.Config.Heap.MaxCells,
		"load_factor", r.Config.Map.LoadFactor,
		"aliases", len(r.Types))
	return r, nil
}

// ParseType parses a type, resolving the configured aliases.
func (r *Runtime) ParseType(s string) (types.Type, error) {
	return types.ParseWith(s, r.Types)
}

// Default parses s and returns the default value of that type.
func (r *Runtime) Default(s string) (*value.Value, error) {
	t, err := r.ParseType(s)
	if err != nil {
		return nil, err
	}
	return r.Heap.MkDefaultValue(t)
}

// RegisterMetrics registers the heap collector with reg.
func (r *Runtime) RegisterMetrics(reg prometheus.Registerer) error {
	return reg.Register(r.Collector)
}

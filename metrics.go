package component

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "component").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the init duration histogram buckets.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithMetricsSubsystem sets the metrics subsystem.
func WithMetricsSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithMetricsConstLabels sets constant labels.
func WithMetricsConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithMetricsBuckets sets the histogram buckets.
func WithMetricsBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithMetricsRegistry sets the registry collectors are registered with.
func WithMetricsRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "component",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the initializer and resolver collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	instancesTotal *prometheus.CounterVec
	initDuration   *prometheus.HistogramVec
	initErrors     *prometheus.CounterVec
	resolvesTotal  *prometheus.CounterVec
	hooksTotal     *prometheus.CounterVec
}

// NewMetrics registers the collectors and returns them.
//
// Metrics collected:
//   - component_instances_total: instances initialized, by path (root|internal)
//   - component_init_duration_seconds: init duration, by path
//   - component_init_errors_total: failed initializations, by path
//   - component_resolves_total: resolve steps, by outcome (base|cached|recomputed)
//   - component_hooks_total: dispatched lifecycle hooks, by hook
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&config)
		}
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		instancesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances_total",
			Help:        "Total number of component instances initialized",
			ConstLabels: config.ConstLabels,
		}, []string{"path"}),

		initDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "init_duration_seconds",
			Help:        "Component instance initialization duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		initErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "init_errors_total",
			Help:        "Total number of failed component initializations",
			ConstLabels: config.ConstLabels,
		}, []string{"path"}),

		resolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolves_total",
			Help:        "Total number of definition resolve steps by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		hooksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hooks_total",
			Help:        "Total number of lifecycle hooks dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"hook"}),
	}
}

func (m *Metrics) observeInit(path string, took time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.initErrors.WithLabelValues(path).Inc()
		return
	}
	m.instancesTotal.WithLabelValues(path).Inc()
	m.initDuration.WithLabelValues(path).Observe(took.Seconds())
}

func (m *Metrics) observeResolve(outcome ResolveOutcome) {
	if m == nil {
		return
	}
	m.resolvesTotal.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) observeHook(hook string) {
	if m == nil {
		return
	}
	m.hooksTotal.WithLabelValues(hook).Inc()
}

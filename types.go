package component

import (
	"github.com/goliatone/go-component/pkg/activity"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Initializer.
type Option func(*initConfig)

type initConfig struct {
	logger         Logger
	metrics        *Metrics
	tracer         trace.Tracer
	performance    bool
	debug          bool
	activityHooks  activity.Hooks
	activityConfig activity.Config

	proxy      ProxyInstaller
	lifecycle  LifecycleInitializer
	events     EventsInitializer
	render     RenderInitializer
	injections InjectionResolver
	state      StateInitializer
	provide    ProvideRegistrar
	hooks      HookDispatcher
	mounter    Mounter
}

func applyOptions(opts []Option) initConfig {
	cfg := initConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLogger records init and resolve events.
func WithLogger(logger Logger) Option {
	return func(cfg *initConfig) {
		cfg.logger = logger
	}
}

// WithMetrics records Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(cfg *initConfig) {
		cfg.metrics = m
	}
}

// WithTracer sets the tracer used for performance spans. Defaults to the
// global tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(cfg *initConfig) {
		cfg.tracer = tracer
	}
}

// WithPerformance enables a span around each instance initialization.
func WithPerformance(enabled bool) Option {
	return func(cfg *initConfig) {
		cfg.performance = enabled
	}
}

// WithDebug installs a debug render proxy instead of aliasing the instance as
// its own proxy. Without WithProxyInstaller the *Proxy installer is used.
func WithDebug(enabled bool) Option {
	return func(cfg *initConfig) {
		cfg.debug = enabled
	}
}

// WithActivityHooks emits a lifecycle event to hooks for every dispatched
// hook. Nil hooks are dropped.
func WithActivityHooks(hooks activity.Hooks, channel string) Option {
	normalized := make(activity.Hooks, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			normalized = append(normalized, hook)
		}
	}
	return func(cfg *initConfig) {
		cfg.activityHooks = normalized
		cfg.activityConfig = activity.Config{Enabled: true, Channel: channel}
	}
}

// WithProxyInstaller sets the debug-mode proxy installer.
func WithProxyInstaller(p ProxyInstaller) Option {
	return func(cfg *initConfig) { cfg.proxy = p }
}

// WithLifecycle replaces the lifecycle initializer.
func WithLifecycle(l LifecycleInitializer) Option {
	return func(cfg *initConfig) { cfg.lifecycle = l }
}

// WithEvents replaces the events initializer.
func WithEvents(e EventsInitializer) Option {
	return func(cfg *initConfig) { cfg.events = e }
}

// WithRender replaces the render initializer.
func WithRender(r RenderInitializer) Option {
	return func(cfg *initConfig) { cfg.render = r }
}

// WithInjections replaces the injection resolver.
func WithInjections(i InjectionResolver) Option {
	return func(cfg *initConfig) { cfg.injections = i }
}

// WithState sets the state initializer. Without one, state initialization is
// a no-op.
func WithState(s StateInitializer) Option {
	return func(cfg *initConfig) { cfg.state = s }
}

// WithProvide replaces the provide registrar.
func WithProvide(p ProvideRegistrar) Option {
	return func(cfg *initConfig) { cfg.provide = p }
}

// WithHookDispatcher replaces the lifecycle hook dispatcher.
func WithHookDispatcher(h HookDispatcher) Option {
	return func(cfg *initConfig) { cfg.hooks = h }
}

// WithMounter replaces the mounter. Defaults to a TreeMounter.
func WithMounter(m Mounter) Option {
	return func(cfg *initConfig) { cfg.mounter = m }
}

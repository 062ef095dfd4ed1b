package component

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-component/pkg/activity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/goliatone/go-component"

// Init paths, used as the "path" label of init metrics and log events.
const (
	PathRoot     = "root"
	PathInternal = "internal"
)

// Initializer runs the bootstrap sequence of new instances. The zero value is
// not usable; construct one with NewInitializer.
type Initializer struct {
	logger      Logger
	metrics     *Metrics
	tracer      trace.Tracer
	performance bool
	debug       bool
	emitter     *activity.Emitter
	resolver    *Resolver

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

// NewInitializer builds an Initializer. Collaborators left unset use the
// package defaults.
func NewInitializer(opts ...Option) *Initializer {
	cfg := applyOptions(opts)
	in := &Initializer{
		logger:      cfg.logger,
		metrics:     cfg.metrics,
		tracer:      cfg.tracer,
		performance: cfg.performance,
		debug:       cfg.debug,
		emitter:     activity.NewEmitter(cfg.activityHooks, cfg.activityConfig),
		proxy:       cfg.proxy,
		lifecycle:   cfg.lifecycle,
		events:      cfg.events,
		render:      cfg.render,
		injections:  cfg.injections,
		state:       cfg.state,
		provide:     cfg.provide,
		hooks:       cfg.hooks,
		mounter:     cfg.mounter,
	}
	if in.logger == nil {
		in.logger = noopLogger{}
	}
	if in.tracer == nil {
		in.tracer = otel.Tracer(defaultTracerName)
	}
	if in.lifecycle == nil {
		in.lifecycle = defaultLifecycle{}
	}
	if in.events == nil {
		in.events = defaultEvents{}
	}
	if in.render == nil {
		in.render = defaultRender{}
	}
	if in.injections == nil {
		in.injections = defaultInjections{}
	}
	if in.state == nil {
		in.state = noopState{}
	}
	if in.provide == nil {
		in.provide = defaultProvide{}
	}
	if in.hooks == nil {
		in.hooks = optionsHookDispatcher{}
	}
	if in.mounter == nil {
		in.mounter = NewTreeMounter(in)
	}
	if in.debug && in.proxy == nil {
		in.proxy = NewDebugProxyInstaller(nil)
	}
	in.resolver = NewResolver(ResolverWithLogger(in.logger), ResolverWithMetrics(in.metrics))
	return in
}

// Resolver returns the resolver used for definition chains.
func (in *Initializer) Resolver() *Resolver {
	return in.resolver
}

// New allocates an instance of def and initializes it.
func (in *Initializer) New(def *Definition, supplied *Options) (*Instance, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}
	inst := NewInstance(def)
	if err := in.Init(inst, supplied); err != nil {
		return inst, err
	}
	return inst, nil
}

// Init runs InitContext with a background context.
func (in *Initializer) Init(inst *Instance, supplied *Options) error {
	return in.InitContext(context.Background(), inst, supplied)
}

// InitContext initializes inst exactly once. Failures from any step are
// returned unmodified and leave the instance unusable; it must not be
// initialized again.
func (in *Initializer) InitContext(ctx context.Context, inst *Instance, supplied *Options) error {
	if inst == nil {
		return ErrNilInstance
	}
	if inst.Definition == nil {
		return ErrNilDefinition
	}
	if inst.initialized {
		return ErrAlreadyInitialized
	}
	if ctx == nil {
		ctx = context.Background()
	}

	path := PathRoot
	if IsInternal(supplied) {
		path = PathInternal
	}
	start := time.Now()

	inst.UID = nextUID()
	inst.frameworkInternal = true
	inst.initialized = true

	err := in.create(ctx, inst, supplied, path)
	if err == nil {
		if target := inst.Options.Value(KeyEl); isMountTarget(target) {
			err = in.mounter.Mount(ctx, inst, target)
		}
	}

	took := time.Since(start)
	in.metrics.observeInit(path, took, err)
	in.logger.LogInit(InitLogEvent{
		UID:      inst.UID,
		Name:     inst.Name(),
		Path:     path,
		Mounted:  inst.mounted,
		Duration: took,
		Err:      err,
	})
	if err != nil {
		in.emit(ctx, activity.BuildInitFailedEvent(lifecycleInput(inst, "", path), err))
	}
	return err
}

// isMountTarget reports whether an el option designates a target. nil, false
// and the empty string do not.
func isMountTarget(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	default:
		return true
	}
}

// create runs everything up to and including the created hook.
func (in *Initializer) create(ctx context.Context, inst *Instance, supplied *Options, path string) (err error) {
	if in.performance {
		var span trace.Span
		ctx, span = in.tracer.Start(ctx, "component.init",
			trace.WithAttributes(
				attribute.Int64("component.uid", int64(inst.UID)),
				attribute.String("component.path", path),
			),
		)
		defer func() {
			span.SetName("component.init " + inst.Name())
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.End()
		}()
	}

	options, err := in.instanceOptions(inst, supplied, path)
	if err != nil {
		return err
	}
	inst.Options = options

	if in.debug {
		if err := in.proxy.InstallProxy(inst); err != nil {
			return err
		}
	} else {
		inst.RenderProxy = inst
	}
	inst.Self = inst

	if err := in.lifecycle.InitLifecycle(inst); err != nil {
		return err
	}
	if err := in.events.InitEvents(inst); err != nil {
		return err
	}
	if err := in.render.InitRender(inst); err != nil {
		return err
	}
	if err := in.callHook(ctx, inst, HookBeforeCreate); err != nil {
		return err
	}
	if err := in.injections.InitInjections(inst); err != nil {
		return err
	}
	if err := in.state.InitState(inst); err != nil {
		return err
	}
	if err := in.provide.InitProvide(inst); err != nil {
		return err
	}
	return in.callHook(ctx, inst, HookCreated)
}

func (in *Initializer) instanceOptions(inst *Instance, supplied *Options, path string) (*Options, error) {
	resolved := in.resolver.Resolve(inst.Definition)
	if path == PathInternal {
		return buildInternalOptions(resolved, supplied)
	}
	if supplied == nil {
		supplied = NewOptions(nil)
	}
	return inst.Definition.Merger().Merge(resolved, supplied, inst), nil
}

// callHook dispatches hook and reports it once it succeeded.
func (in *Initializer) callHook(ctx context.Context, inst *Instance, hook string) error {
	if err := in.hooks.CallHook(inst, hook); err != nil {
		return err
	}
	in.metrics.observeHook(hook)
	in.emit(ctx, activity.BuildHookEvent(lifecycleInput(inst, hook, "")))
	return nil
}

// emit drops hook failures; activity sinks never fail an initialization.
func (in *Initializer) emit(ctx context.Context, event activity.Event) {
	if !in.emitter.Enabled() {
		return
	}
	_ = in.emitter.Emit(ctx, event)
}

func lifecycleInput(inst *Instance, hook, path string) activity.LifecycleEventInput {
	input := activity.LifecycleEventInput{
		UID:        inst.UID,
		Component:  strings.Trim(inst.Name(), "<>"),
		Hook:       hook,
		Path:       path,
		OccurredAt: time.Now(),
	}
	if inst.Parent != nil {
		parent := inst.Parent.UID
		input.ParentUID = &parent
	}
	return input
}

var defaultInitializer = NewInitializer()

// Init initializes inst with the default collaborators.
func Init(inst *Instance, supplied *Options) error {
	return defaultInitializer.Init(inst, supplied)
}

// New creates and initializes an instance of def with the default
// collaborators.
func New(def *Definition, supplied *Options) (*Instance, error) {
	return defaultInitializer.New(def, supplied)
}

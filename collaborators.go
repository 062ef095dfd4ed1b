package component

import "context"

// ProxyInstaller installs the debug-mode render proxy on an instance.
type ProxyInstaller interface {
	InstallProxy(inst *Instance) error
}

// LifecycleInitializer sets up the parent/children/root/refs relationships.
type LifecycleInitializer interface {
	InitLifecycle(inst *Instance) error
}

// EventsInitializer sets up custom-event wiring.
type EventsInitializer interface {
	InitEvents(inst *Instance) error
}

// RenderInitializer sets up slots and the element-creation function.
type RenderInitializer interface {
	InitRender(inst *Instance) error
}

// InjectionResolver resolves injected values from ancestors.
type InjectionResolver interface {
	InitInjections(inst *Instance) error
}

// StateInitializer sets up props, methods, data, computed values and
// watchers.
type StateInitializer interface {
	InitState(inst *Instance) error
}

// ProvideRegistrar resolves the values an instance provides to descendants.
type ProvideRegistrar interface {
	InitProvide(inst *Instance) error
}

// Mounter mounts an instance onto a target.
type Mounter interface {
	Mount(ctx context.Context, inst *Instance, target any) error
}

// ProxyInstallerFunc adapts a function to ProxyInstaller.
type ProxyInstallerFunc func(inst *Instance) error

// InstallProxy implements ProxyInstaller.
func (f ProxyInstallerFunc) InstallProxy(inst *Instance) error { return f(inst) }

// LifecycleInitializerFunc adapts a function to LifecycleInitializer.
type LifecycleInitializerFunc func(inst *Instance) error

// InitLifecycle implements LifecycleInitializer.
func (f LifecycleInitializerFunc) InitLifecycle(inst *Instance) error { return f(inst) }

// EventsInitializerFunc adapts a function to EventsInitializer.
type EventsInitializerFunc func(inst *Instance) error

// InitEvents implements EventsInitializer.
func (f EventsInitializerFunc) InitEvents(inst *Instance) error { return f(inst) }

// RenderInitializerFunc adapts a function to RenderInitializer.
type RenderInitializerFunc func(inst *Instance) error

// InitRender implements RenderInitializer.
func (f RenderInitializerFunc) InitRender(inst *Instance) error { return f(inst) }

// InjectionResolverFunc adapts a function to InjectionResolver.
type InjectionResolverFunc func(inst *Instance) error

// InitInjections implements InjectionResolver.
func (f InjectionResolverFunc) InitInjections(inst *Instance) error { return f(inst) }

// StateInitializerFunc adapts a function to StateInitializer.
type StateInitializerFunc func(inst *Instance) error

// InitState implements StateInitializer.
func (f StateInitializerFunc) InitState(inst *Instance) error { return f(inst) }

// ProvideRegistrarFunc adapts a function to ProvideRegistrar.
type ProvideRegistrarFunc func(inst *Instance) error

// InitProvide implements ProvideRegistrar.
func (f ProvideRegistrarFunc) InitProvide(inst *Instance) error { return f(inst) }

// MounterFunc adapts a function to Mounter.
type MounterFunc func(ctx context.Context, inst *Instance, target any) error

// Mount implements Mounter.
func (f MounterFunc) Mount(ctx context.Context, inst *Instance, target any) error {
	return f(ctx, inst, target)
}

type noopState struct{}

func (noopState) InitState(*Instance) error { return nil }

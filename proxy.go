package component

import (
	"fmt"
	"log/slog"
	"strings"
)

// Proxy is the debug-mode render proxy. Reads go through the instance's
// state tables and unknown names are reported instead of silently yielding
// nil.
type Proxy struct {
	inst *Instance
	warn func(msg string)
}

// NewDebugProxyInstaller returns a ProxyInstaller that sets a *Proxy as the
// render proxy. warn receives one message per unknown lookup; nil writes to
// slog.Default at warn level.
func NewDebugProxyInstaller(warn func(msg string)) ProxyInstaller {
	if warn == nil {
		warn = func(msg string) { slog.Default().Warn(msg) }
	}
	return ProxyInstallerFunc(func(inst *Instance) error {
		inst.RenderProxy = &Proxy{inst: inst, warn: warn}
		return nil
	})
}

// Instance returns the proxied instance.
func (p *Proxy) Instance() *Instance {
	return p.inst
}

// Get resolves name against props, data, computed values, injections and
// methods, in that order. Names starting with "$" or "_" are reserved and
// never reported.
func (p *Proxy) Get(name string) (any, bool) {
	inst := p.inst
	for _, table := range []map[string]any{inst.Props, inst.Data, inst.Computed, inst.Injected} {
		if value, ok := table[name]; ok {
			return value, true
		}
	}
	if method, ok := inst.Methods[name]; ok {
		return method, true
	}
	if !strings.HasPrefix(name, "$") && !strings.HasPrefix(name, "_") {
		p.warn(fmt.Sprintf("component: property %q is not defined on %s but referenced during render", name, inst.Name()))
	}
	return nil, false
}

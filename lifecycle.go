package component

// defaultLifecycle links the instance into the instance tree. Abstract
// instances are skipped when picking the parent.
type defaultLifecycle struct{}

func (defaultLifecycle) InitLifecycle(inst *Instance) error {
	parent, _ := inst.Options.Value(KeyParent).(*Instance)
	if parent != nil && !isAbstract(inst) {
		for isAbstract(parent) && parent.Parent != nil {
			parent = parent.Parent
		}
		parent.Children = append(parent.Children, inst)
	}

	inst.Parent = parent
	if parent != nil {
		inst.Root = parent.Root
	} else {
		inst.Root = inst
	}
	inst.Children = nil
	inst.Refs = map[string]any{}

	inst.mounted = false
	inst.inactive = false
	inst.beingDestroyed = false
	inst.destroyed = false
	return nil
}

func isAbstract(inst *Instance) bool {
	if inst == nil || inst.Options == nil {
		return false
	}
	abstract, _ := inst.Options.Value(KeyAbstract).(bool)
	return abstract
}

// defaultEvents creates the listener table and attaches the listeners the
// parent declared on the placeholder node.
type defaultEvents struct{}

func (defaultEvents) InitEvents(inst *Instance) error {
	inst.Events = map[string][]any{}
	listeners := asMap(inst.Options.Value(KeyParentListeners))
	for name, handler := range listeners {
		inst.Events[name] = append(inst.Events[name], asList(handler)...)
	}
	return nil
}

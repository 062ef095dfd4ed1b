package component

import "errors"

var (
	// ErrInvalidOption reports an option value of an unsupported shape.
	ErrInvalidOption = errors.New("component: invalid option value")
	// ErrNilInstance is returned when Init receives no instance.
	ErrNilInstance = errors.New("component: instance is nil")
	// ErrNilDefinition is returned when an instance has no definition.
	ErrNilDefinition = errors.New("component: definition is nil")
	// ErrAlreadyInitialized is returned by a second Init on the same instance.
	ErrAlreadyInitialized = errors.New("component: instance already initialized")
	// ErrMissingParentVnode is returned by the internal options path when the
	// supplied options carry no parent vnode.
	ErrMissingParentVnode = errors.New("component: internal instantiation requires a parent vnode")
)

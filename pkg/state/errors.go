package state

import "errors"

var (
	// ErrMissingProp is returned when a required prop has no value.
	ErrMissingProp = errors.New("state: missing required prop")
	// ErrInvalidProp is returned when a prop value fails its type or validator.
	ErrInvalidProp = errors.New("state: invalid prop value")
	// ErrConflict is returned when a name is declared by two state kinds.
	ErrConflict = errors.New("state: name already declared")
	// ErrUnknownMethod is returned when a method or watcher names an unknown
	// function.
	ErrUnknownMethod = errors.New("state: unknown method")
	// ErrUnknownKey is returned by Set for keys that are not data or props.
	ErrUnknownKey = errors.New("state: unknown state key")
)

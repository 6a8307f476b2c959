package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefined is wrapped by lookups and assignments that find no binding.
var ErrUndefined = errors.New("undefined variable")

// Environment provides lexical scoping for risl runtime values.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w '%s'", ErrUndefined, name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefined, name)
}

// Ancestor returns the environment depth levels up the chain, or nil if the
// chain is shorter than that.
func (e *Environment) Ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth && env != nil; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from exactly the environment depth levels up.
func (e *Environment) GetAt(depth int, name string) (Value, bool) {
	env := e.Ancestor(depth)
	if env == nil {
		return nil, false
	}
	v, ok := env.values[name]
	return v, ok
}

// AssignAt overwrites name in exactly the environment depth levels up. It
// reports false when that environment holds no such binding.
func (e *Environment) AssignAt(depth int, name string, value Value) bool {
	env := e.Ancestor(depth)
	if env == nil {
		return false
	}
	if _, ok := env.values[name]; !ok {
		return false
	}
	env.values[name] = value
	return true
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear drops every binding in this scope.
func (e *Environment) Clear() {
	clear(e.values)
}

// Extend returns a new child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

package ivy

import "fmt"

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// Validate walks the registered dependency graph depth-first and reports the
// first unregistered [Name] dependency or dependency cycle it finds. It
// constructs nothing and registers nothing: unregistered [*Type]
// dependencies are accepted because [Registry.Get] would register them on
// demand.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make(map[string]visitState)
	for _, name := range r.sortedNames() {
		if err := r.validate(Name(name), "", states, nil); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) validate(id Identifier, dependent string, states map[string]visitState, stack []string) error {
	name, typ, err := r.identify(id)
	if err != nil {
		return err
	}

	switch states[name] {
	case visiting:
		return circularError(name, stack)
	case visited:
		return nil
	}

	h, ok := r.store.handler(name)
	if !ok {
		if typ != nil {
			states[name] = visited
			return nil
		}
		return fmt.Errorf("%w: %q required by %s", ErrUnregisteredDependency, name, dependent)
	}

	states[name] = visiting
	stack = append(stack, name)

	for _, dep := range h.inject {
		if err := r.validate(dep, name, states, stack); err != nil {
			return err
		}
	}
	for _, p := range r.store.propertiesOf(name) {
		if err := r.validate(p.target, name, states, stack); err != nil {
			return err
		}
	}

	states[name] = visited
	return nil
}

package ivy

import "errors"

var (
	// ErrUnregisteredDependency is returned when a [Name] is resolved but no
	// handler is registered under it. A bare name has no type to fall back
	// on, so it is never auto-registered.
	ErrUnregisteredDependency = errors.New("unregistered dependency")

	// ErrNameResolution is returned when a [Type] has no discoverable
	// declared name and no explicit name was supplied.
	ErrNameResolution = errors.New("cannot resolve type name")

	// ErrCircularDependency is returned when resolution re-enters an
	// identifier that is already being constructed. The error message
	// includes the full chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInvalidConstructor is returned when a type handle was created from
	// something other than func(deps...) T or func(deps...) (T, error).
	ErrInvalidConstructor = errors.New("invalid constructor")

	// ErrInvalidType is returned when a nil type handle is registered.
	ErrInvalidType = errors.New("invalid type handle")

	// ErrInjectArity is returned when more constructor dependencies are
	// declared than the constructor accepts.
	ErrInjectArity = errors.New("too many constructor dependencies")

	// ErrDependencyType is returned when a resolved dependency cannot be
	// passed to the constructor parameter it was declared for.
	ErrDependencyType = errors.New("dependency type mismatch")

	// ErrPropertyInjection is returned when a property dependency cannot be
	// assigned to the constructed instance.
	ErrPropertyInjection = errors.New("property injection failed")
)

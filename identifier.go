package ivy

import (
	"fmt"
	"reflect"
	"sync"
)

// Identifier names something the registry can resolve. It is implemented by
// exactly two types: [Name], a plain string identifier, and [*Type], a type
// handle that carries its own constructor.
type Identifier interface {
	fmt.Stringer
	identifier()
}

// Name is a string identifier. A name can only be resolved once a handler
// has been registered under it.
type Name string

func (n Name) String() string { return string(n) }

func (Name) identifier() {}

// Type is a registrable type handle: a constructor together with the name
// the type is known by. Handles are compared by identity, so create each one
// once (typically as a package-level variable) and reuse it.
//
// Constructor errors and missing names are recorded on the handle and
// reported the first time it is registered or resolved.
type Type struct {
	name        string
	constructor reflect.Value
	out         reflect.Type
	err         error
}

// TypeOf creates a handle from a constructor with the signature
// func(deps...) T or func(deps...) (T, error). The handle's name is the
// declared name of T, or of its element type when T is a pointer.
func TypeOf(constructor any) *Type {
	return newType("", constructor)
}

// NamedType is like [TypeOf] but uses an explicit name.
func NamedType(name string, constructor any) *Type {
	return newType(name, constructor)
}

var typeHandles sync.Map // reflect.Type -> *Type

// TypeFor returns the zero-configuration handle for S. Its constructor
// returns new(S) and its name is S's declared name. Repeated calls for the
// same S return the same handle.
//
// When S has size zero (struct{} and the like), new(S) may return the same
// address on every call, so transient instances of S are not guaranteed to
// be distinct pointers. Give such types a field or compare them by value.
func TypeFor[S any]() *Type {
	rt := reflect.TypeOf((*S)(nil)).Elem()
	if h, ok := typeHandles.Load(rt); ok {
		return h.(*Type)
	}
	h, _ := typeHandles.LoadOrStore(rt, newType("", func() *S { return new(S) }))
	return h.(*Type)
}

func newType(name string, constructor any) *Type {
	t := &Type{name: name}
	if constructor == nil {
		t.err = fmt.Errorf("%w: constructor is nil", ErrInvalidConstructor)
		return t
	}

	val := reflect.ValueOf(constructor)
	typ := val.Type()

	switch {
	case typ.Kind() != reflect.Func:
		t.err = fmt.Errorf("%w: %s is not a function", ErrInvalidConstructor, typ)
	case typ.IsVariadic():
		t.err = fmt.Errorf("%w: %s is variadic", ErrInvalidConstructor, typ)
	case typ.NumOut() == 0 || typ.NumOut() > 2:
		t.err = fmt.Errorf("%w: %s must return (T) or (T, error)", ErrInvalidConstructor, typ)
	case typ.NumOut() == 2 && !typ.Out(1).Implements(errorType):
		t.err = fmt.Errorf("%w: second return value of %s must implement error", ErrInvalidConstructor, typ)
	}
	if t.err != nil {
		return t
	}

	t.constructor = val
	t.out = typ.Out(0)
	if t.name == "" {
		t.name = declaredName(t.out)
	}
	return t
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func declaredName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Name returns the handle's own name. It fails with [ErrNameResolution] when
// the constructed type is unnamed and no explicit name was given, or with
// [ErrInvalidConstructor] when the handle was built from an invalid
// constructor.
func (t *Type) Name() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	if t.name == "" {
		return "", fmt.Errorf("%w: %s", ErrNameResolution, t.out)
	}
	return t.name, nil
}

// Out returns the type the constructor produces, or nil for an invalid
// handle.
func (t *Type) Out() reflect.Type { return t.out }

func (t *Type) String() string {
	switch {
	case t == nil:
		return "<nil>"
	case t.name != "":
		return t.name
	case t.out != nil:
		return t.out.String()
	default:
		return "<invalid>"
	}
}

func (*Type) identifier() {}

// isNil reports whether id is a nil interface or a nil [*Type].
func isNil(id Identifier) bool {
	if id == nil {
		return true
	}
	t, ok := id.(*Type)
	return ok && t == nil
}

// numIn reports how many arguments the constructor accepts.
func (t *Type) numIn() int {
	return t.constructor.Type().NumIn()
}

// identify normalizes an identifier to its canonical name and, when known,
// its type handle. A registered handle resolves to the name it was
// registered under, which may be a [WithName] override.
func (r *Registry) identify(id Identifier) (string, *Type, error) {
	switch v := id.(type) {
	case Name:
		if h, ok := r.store.handler(string(v)); ok {
			return string(v), h.typ, nil
		}
		return string(v), nil, nil
	case *Type:
		if v == nil {
			return "", nil, ErrInvalidType
		}
		if name, ok := r.store.typeName(v); ok {
			return name, v, nil
		}
		name, err := v.Name()
		if err != nil {
			return "", v, err
		}
		return name, v, nil
	default:
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidType, id)
	}
}

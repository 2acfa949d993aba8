package ivy

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Registry methods
// ---------------------------------------------------------------------------

// Get returns a fully resolved instance for id.
//
// An unregistered [*Type] is registered on the fly as a transient with no
// dependencies, so Get works for any valid type handle. An unregistered
// [Name] fails with [ErrUnregisteredDependency]. Prefer the generic [Get]
// helper over calling this method directly.
func (r *Registry) Get(id Identifier) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, err := r.resolve(id, nil)
	if err != nil {
		return nil, err
	}
	return inst.Interface(), nil
}

// ---------------------------------------------------------------------------
// Generic helpers
// ---------------------------------------------------------------------------

// Get is a generic helper that resolves id and converts the instance to T:
//
//	svc, err := ivy.Get[*UserService](r, userServiceType)
func Get[T any](r *Registry, id Identifier) (T, error) {
	var zero T

	v, err := r.Get(id)
	if err != nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s resolved to %T, not %s", ErrDependencyType, id, v, reflect.TypeOf((*T)(nil)).Elem())
	}
	return out, nil
}

// MustGet is like [Get] but panics on error. It is meant for program
// initialization, where a missing dependency is a programming error.
func MustGet[T any](r *Registry, id Identifier) T {
	v, err := Get[T](r, id)
	if err != nil {
		panic(err)
	}
	return v
}

// Make resolves the zero-configuration handle [TypeFor] of S, or whatever
// handler is registered under S's declared name:
//
//	cfg, err := ivy.Make[Config](r)
func Make[S any](r *Registry) (*S, error) {
	return Get[*S](r, TypeFor[S]())
}

// ---------------------------------------------------------------------------
// Internal
// ---------------------------------------------------------------------------

// resolve turns id into an instance. stack holds the names currently being
// constructed on this call path and is used to detect cycles. Callers hold
// the write lock.
func (r *Registry) resolve(id Identifier, stack []string) (reflect.Value, error) {
	name, typ, err := r.identify(id)
	if err != nil {
		return reflect.Value{}, err
	}

	for _, s := range stack {
		if s == name {
			return reflect.Value{}, circularError(name, stack)
		}
	}

	h, ok := r.store.handler(name)
	if !ok {
		if typ == nil {
			return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnregisteredDependency, name)
		}
		if h, err = r.set(typ, nil); err != nil {
			return reflect.Value{}, err
		}
		if h == nil {
			return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnregisteredDependency, name)
		}
		r.logger.Debug("auto-registered", zap.String("name", name))
	}

	if h.lifetime == Singleton {
		if inst, ok := r.store.singleton(name); ok {
			return inst, nil
		}
	}

	inst, err := r.construct(h, append(stack, name))
	if err != nil {
		return reflect.Value{}, err
	}

	if h.lifetime == Singleton {
		r.store.setSingleton(name, inst)
		r.logger.Debug("singleton cached", zap.String("name", name))
	}
	return inst, nil
}

// construct calls the handler's constructor with its resolved constructor
// dependencies, then assigns its property dependencies. Nothing is cached
// here; a failure anywhere discards the partially built instance.
func (r *Registry) construct(h *handler, stack []string) (reflect.Value, error) {
	fnType := h.typ.constructor.Type()
	args := make([]reflect.Value, fnType.NumIn())

	for i := range args {
		paramType := fnType.In(i)
		if i >= len(h.inject) {
			args[i] = reflect.Zero(paramType)
			continue
		}

		dep, err := r.resolve(h.inject[i], stack)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("resolving %s for %s: %w", h.inject[i], h.name, err)
		}

		arg, ok := assignable(dep, paramType)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s argument %d wants %s, %s is %s",
				ErrDependencyType, h.name, i, paramType, h.inject[i], dep.Type())
		}
		args[i] = arg
	}

	results := h.typ.constructor.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, fmt.Errorf("constructing %s: %w", h.name, results[1].Interface().(error))
	}
	inst := results[0]

	for _, p := range r.store.propertiesOf(h.name) {
		dep, err := r.resolve(p.target, stack)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("resolving %s for %s.%s: %w", p.target, h.name, p.name, err)
		}
		if err := injectProperty(inst, p.name, dep); err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w", h.name, err)
		}
	}

	return inst, nil
}

// injectProperty assigns dep to the field of inst that matches prop: the
// field tagged `ivy:"prop"`, otherwise the field whose name equals prop
// ignoring case.
func injectProperty(inst reflect.Value, prop string, dep reflect.Value) error {
	v := inst
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a non-nil pointer to struct", ErrPropertyInjection, inst.Type())
	}

	sv := v.Elem()
	field, ok := findField(sv.Type(), prop)
	if !ok {
		return fmt.Errorf("%w: %s has no field for property %q", ErrPropertyInjection, sv.Type(), prop)
	}

	fv := sv.FieldByIndex(field.Index)
	if !fv.CanSet() {
		return fmt.Errorf("%w: field %s.%s is not exported", ErrPropertyInjection, sv.Type(), field.Name)
	}

	arg, ok := assignable(dep, fv.Type())
	if !ok {
		return fmt.Errorf("%w: field %s.%s is %s, dependency is %s",
			ErrPropertyInjection, sv.Type(), field.Name, fv.Type(), dep.Type())
	}
	fv.Set(arg)
	return nil
}

func findField(t reflect.Type, prop string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Tag.Get("ivy") == prop {
			return f, true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); strings.EqualFold(f.Name, prop) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// assignable adapts v so it can be stored in a slot of type t. Values of
// interface type are unwrapped when the slot wants the concrete type.
func assignable(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if v.Type().AssignableTo(t) {
		return v, true
	}
	if v.Kind() != reflect.Interface {
		return reflect.Value{}, false
	}
	if v.IsNil() {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	if e := v.Elem(); e.Type().AssignableTo(t) {
		return e, true
	}
	return reflect.Value{}, false
}

func circularError(name string, stack []string) error {
	chain := make([]string, len(stack)+1)
	copy(chain, stack)
	chain[len(stack)] = name

	return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(chain, " -> "))
}

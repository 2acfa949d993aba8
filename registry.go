package ivy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry maps identifiers to construction handlers and caches singleton
// instances. Use [New] for an isolated registry or [Default] for the
// process-wide one.
//
// All methods are safe for concurrent use. A single lock serializes every
// operation, and dependency resolution runs entirely under that lock, so
// constructors must not call back into the registry that is constructing
// them. Express such needs through [WithInject] or [WithProperty] instead.
type Registry struct {
	mu     sync.RWMutex
	store  *store
	logger *zap.Logger
}

// RegistryOption configures a [Registry] created by [New].
type RegistryOption func(*Registry)

// WithLogger sets the logger used for debug events. The default discards
// everything.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty [Registry].
func New(opts ...RegistryOption) *Registry {
	r := &Registry{
		store:  newStore(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry. It is created empty on first
// use and lives until the process exits; call [Registry.Flush] to reset it
// between tests.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Set registers t. The first registration wins: when t is already registered,
// or its resolved name is taken, Set does nothing and returns nil.
//
// Dependencies named by [WithInject] and [WithProperty] are not registered or
// constructed here; they resolve lazily on the first [Registry.Get] of t.
func (r *Registry) Set(t *Type, opts ...Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.set(t, opts)
	return err
}

// Provide registers several entries in order, as if [Registry.Set] was
// called for each. It stops at the first failing entry; entries before it
// stay registered.
func (r *Registry) Provide(entries ...Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range entries {
		if _, err := r.set(e.Type, e.options()); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Type, err)
		}
	}
	return nil
}

// set creates and stores a handler. It returns a nil handler when the
// registration was ignored because the type or name is already taken.
func (r *Registry) set(t *Type, opts []Option) (*handler, error) {
	if t == nil {
		return nil, ErrInvalidType
	}
	if t.err != nil {
		return nil, t.err
	}

	s := settings{lifetime: Transient}
	for _, opt := range opts {
		opt(&s)
	}
	for i, id := range s.inject {
		if isNil(id) {
			return nil, fmt.Errorf("%w: nil dependency %d for %s", ErrInvalidType, i, t)
		}
	}
	for _, p := range s.properties {
		if isNil(p.target) {
			return nil, fmt.Errorf("%w: nil target for property %q of %s", ErrInvalidType, p.name, t)
		}
	}

	if _, ok := r.store.typeName(t); ok {
		return nil, nil
	}

	name := s.name
	if name == "" {
		n, err := t.Name()
		if err != nil {
			return nil, err
		}
		name = n
	}

	if r.store.hasHandler(name) {
		return nil, nil
	}

	if len(s.inject) > t.numIn() {
		return nil, fmt.Errorf("%w: %s accepts %d, got %d", ErrInjectArity, name, t.numIn(), len(s.inject))
	}

	h := &handler{
		name:     name,
		typ:      t,
		inject:   s.inject,
		lifetime: s.lifetime,
	}
	r.store.setHandler(h)
	for _, p := range s.properties {
		r.store.setProperty(name, p.name, p.target)
	}

	r.logger.Debug("registered",
		zap.String("name", name),
		zap.Stringer("lifetime", h.lifetime),
		zap.Int("inject", len(h.inject)),
		zap.Int("properties", len(s.properties)),
	)
	return h, nil
}

// SetPropertyDependency wires property prop of owner to target, replacing
// any previous target for the same property. An unregistered [*Type] owner
// is registered first with default options; a [Name] owner must already be
// registered. The target itself is resolved lazily.
//
// Only instances constructed afterwards see the new wiring. An already
// cached singleton is left untouched.
func (r *Registry) SetPropertyDependency(owner Identifier, prop string, target Identifier) error {
	if prop == "" {
		return fmt.Errorf("%w: empty property name", ErrPropertyInjection)
	}
	if isNil(target) {
		return fmt.Errorf("%w: nil target for property %q", ErrInvalidType, prop)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name, typ, err := r.identify(owner)
	if err != nil {
		return err
	}

	if !r.store.hasHandler(name) {
		if typ == nil {
			return fmt.Errorf("%w: %q", ErrUnregisteredDependency, name)
		}
		if _, err := r.set(typ, nil); err != nil {
			return err
		}
	}

	r.store.setProperty(name, prop, target)
	r.logger.Debug("property dependency set",
		zap.String("name", name),
		zap.String("property", prop),
		zap.Stringer("target", target),
	)
	return nil
}

// Has reports whether a handler is registered for id.
func (r *Registry) Has(id Identifier) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, _, err := r.identify(id)
	if err != nil {
		return false
	}
	return r.store.hasHandler(name)
}

// IsSingleton reports whether id is registered and has already produced a
// cached singleton instance. It reflects cache population, not the declared
// lifetime; use [Registry.Registrations] for that.
func (r *Registry) IsSingleton(id Identifier) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, _, err := r.identify(id)
	if err != nil || !r.store.hasHandler(name) {
		return false
	}
	_, ok := r.store.singleton(name)
	return ok
}

// Remove deletes the handler for id together with its property wiring and
// cached singleton. It reports whether anything was removed.
//
// Handlers are keyed by name. A [*Type] that is not registered itself stands
// for its declared name, so it removes whatever handler holds that name, even
// one registered for a different type. [Registry.Has] and
// [Registry.SetPropertyDependency] look handles up the same way.
func (r *Registry) Remove(id Identifier) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, _, err := r.identify(id)
	if err != nil {
		return false
	}
	if !r.store.deleteHandler(name) {
		return false
	}
	r.logger.Debug("removed", zap.String("name", name))
	return true
}

// Flush clears every handler and cached singleton, returning the registry to
// its empty initial state. Cached instances are dropped without being
// closed; see [Registry.Shutdown].
func (r *Registry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.clear()
	r.logger.Debug("flushed")
}

// Shutdown closes every cached singleton that implements [io.Closer], in
// reverse order of creation, and then flushes the registry. The context
// controls the overall deadline; if it expires, remaining closers are
// skipped and the context error is included in the result.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.store.created) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		name := r.store.created[i]
		inst, ok := r.store.singleton(name)
		if !ok || !inst.CanInterface() {
			continue
		}
		closer, ok := inst.Interface().(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", name, err))
		}
	}

	r.store.clear()
	r.logger.Debug("shut down", zap.Int("errors", len(errs)))
	return errors.Join(errs...)
}

// Registration is a read-only snapshot of one handler.
type Registration struct {
	Name       string
	Type       reflect.Type
	Lifetime   Lifetime
	Inject     []string
	Properties map[string]string
	Cached     bool
}

// Registrations returns a snapshot of every handler, sorted by name.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration, 0, len(r.store.handlers))
	for name, h := range r.store.handlers {
		reg := Registration{
			Name:       name,
			Type:       h.typ.out,
			Lifetime:   h.lifetime,
			Inject:     make([]string, len(h.inject)),
			Properties: make(map[string]string),
		}
		for i, id := range h.inject {
			reg.Inject[i] = r.displayName(id)
		}
		for _, p := range r.store.propertiesOf(name) {
			reg.Properties[p.name] = r.displayName(p.target)
		}
		_, reg.Cached = r.store.singleton(name)
		out = append(out, reg)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// displayName is the canonical name of id when it can be resolved, and its
// string form otherwise.
func (r *Registry) displayName(id Identifier) string {
	if name, _, err := r.identify(id); err == nil {
		return name
	}
	return fmt.Sprint(id)
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.store.handlers))
	for name := range r.store.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package ivy

import "sort"

// settings collects the options of a single registration before a handler is
// created from it.
type settings struct {
	name       string
	inject     []Identifier
	properties propertyTable
	lifetime   Lifetime
}

// Option configures a handler during registration.
type Option func(*settings)

// WithName registers the type under name instead of its declared name.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithInject sets the ordered constructor dependencies. The resolved values
// are passed positionally to the constructor.
func WithInject(ids ...Identifier) Option {
	return func(s *settings) {
		s.inject = append([]Identifier(nil), ids...)
	}
}

// WithProperty adds a property dependency. After construction, target is
// resolved and assigned to the struct field matching prop.
func WithProperty(prop string, target Identifier) Option {
	return func(s *settings) {
		s.properties.set(prop, target)
	}
}

// WithProperties adds several property dependencies at once. They are
// applied in property-name order.
func WithProperties(props map[string]Identifier) Option {
	return func(s *settings) {
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.properties.set(k, props[k])
		}
	}
}

// WithLifetime sets the [Lifetime] of the handler. The default is
// [Transient].
func WithLifetime(l Lifetime) Option {
	return func(s *settings) {
		s.lifetime = l
	}
}

// AsSingleton is shorthand for WithLifetime(Singleton).
func AsSingleton() Option {
	return WithLifetime(Singleton)
}

// Entry is one registration passed to [Registry.Provide]. The zero values of
// the optional fields mean "use the default".
type Entry struct {
	Type             *Type
	Name             string
	Inject           []Identifier
	InjectProperties map[string]Identifier
	Singleton        bool
}

func (e Entry) options() []Option {
	var opts []Option
	if e.Name != "" {
		opts = append(opts, WithName(e.Name))
	}
	if len(e.Inject) > 0 {
		opts = append(opts, WithInject(e.Inject...))
	}
	if len(e.InjectProperties) > 0 {
		opts = append(opts, WithProperties(e.InjectProperties))
	}
	if e.Singleton {
		opts = append(opts, AsSingleton())
	}
	return opts
}

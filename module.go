package ivy

import "fmt"

// Module installs a group of registrations at once. Modules replace
// annotation-style registration: declare the wiring next to the types and
// install it during program initialization.
type Module interface {
	Install(r *Registry) error
}

// ModuleFunc adapts a plain function to [Module].
type ModuleFunc func(r *Registry) error

// Install calls f(r).
func (f ModuleFunc) Install(r *Registry) error { return f(r) }

// Table is a declarative [Module]: installing it provides every entry in
// order.
//
//	var Services = ivy.Table{
//		{Type: loggerType, Singleton: true},
//		{Type: repoType, Inject: []ivy.Identifier{loggerType}},
//	}
type Table []Entry

// Install provides the table's entries to r.
func (t Table) Install(r *Registry) error {
	return r.Provide(t...)
}

// Install installs each module in order and stops at the first error.
func (r *Registry) Install(modules ...Module) error {
	for i, m := range modules {
		if err := m.Install(r); err != nil {
			return fmt.Errorf("installing module %d: %w", i, err)
		}
	}
	return nil
}

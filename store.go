package ivy

import "reflect"

// handler is the stored construction strategy for one name.
type handler struct {
	name     string
	typ      *Type
	inject   []Identifier
	lifetime Lifetime
}

type property struct {
	name   string
	target Identifier
}

// propertyTable keeps property dependencies in insertion order. Setting an
// existing property replaces its target in place.
type propertyTable []property

func (p *propertyTable) set(name string, target Identifier) {
	for i := range *p {
		if (*p)[i].name == name {
			(*p)[i].target = target
			return
		}
	}
	*p = append(*p, property{name: name, target: target})
}

// store holds everything the registry owns, keyed by canonical name. It has
// no behavior beyond storage and retrieval; callers hold the registry lock.
type store struct {
	handlers   map[string]*handler
	properties map[string]propertyTable
	singletons map[string]reflect.Value
	types      map[*Type]string

	// created records singleton names in the order they were cached.
	// Shutdown iterates it in reverse.
	created []string
}

func newStore() *store {
	s := &store{}
	s.clear()
	return s
}

func (s *store) handler(name string) (*handler, bool) {
	h, ok := s.handlers[name]
	return h, ok
}

func (s *store) setHandler(h *handler) {
	s.handlers[h.name] = h
	s.types[h.typ] = h.name
}

func (s *store) hasHandler(name string) bool {
	_, ok := s.handlers[name]
	return ok
}

// deleteHandler drops the handler together with its property table and
// cached singleton.
func (s *store) deleteHandler(name string) bool {
	h, ok := s.handlers[name]
	if !ok {
		return false
	}
	delete(s.handlers, name)
	delete(s.types, h.typ)
	delete(s.properties, name)
	s.deleteSingleton(name)
	return true
}

func (s *store) typeName(t *Type) (string, bool) {
	name, ok := s.types[t]
	return name, ok
}

func (s *store) propertiesOf(name string) propertyTable {
	return s.properties[name]
}

func (s *store) setProperty(name, prop string, target Identifier) {
	table := s.properties[name]
	table.set(prop, target)
	s.properties[name] = table
}

func (s *store) singleton(name string) (reflect.Value, bool) {
	v, ok := s.singletons[name]
	return v, ok
}

func (s *store) setSingleton(name string, v reflect.Value) {
	if _, ok := s.singletons[name]; !ok {
		s.created = append(s.created, name)
	}
	s.singletons[name] = v
}

func (s *store) deleteSingleton(name string) {
	if _, ok := s.singletons[name]; !ok {
		return
	}
	delete(s.singletons, name)
	for i, n := range s.created {
		if n == name {
			s.created = append(s.created[:i], s.created[i+1:]...)
			break
		}
	}
}

func (s *store) clear() {
	s.handlers = make(map[string]*handler)
	s.properties = make(map[string]propertyTable)
	s.singletons = make(map[string]reflect.Value)
	s.types = make(map[*Type]string)
	s.created = nil
}

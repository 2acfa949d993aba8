package ivy

// Lifetime controls how many instances of a handler the registry creates.
type Lifetime int

const (
	// Transient is the default lifetime. A new instance is constructed on
	// every [Registry.Get] call.
	Transient Lifetime = iota

	// Singleton means the instance is constructed on the first
	// [Registry.Get] call and the cached value is returned afterwards.
	// Constructors that return a struct value rather than a pointer hand
	// out copies of the cached value. Return a pointer to share mutations.
	Singleton
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

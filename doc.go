// Package ivy provides a lightweight inversion-of-control registry for Go.
//
// A [Registry] maps identifiers to construction handlers. An identifier is
// either a [Name] or a [*Type] handle, which pairs a constructor with the
// name the type is known by. Dependencies are declared per registration and
// resolved lazily the first time the dependent type is requested.
//
// # Quick Start
//
//	var (
//		loggerType  = ivy.TypeOf(NewLogger)
//		serviceType = ivy.TypeOf(NewUserService)
//	)
//
//	r := ivy.New()
//	r.Set(loggerType, ivy.AsSingleton())
//	r.Set(serviceType, ivy.WithInject(loggerType))
//
//	svc, err := ivy.Get[*UserService](r, serviceType)
//
// Requesting a handle that was never registered registers it on the fly as a
// transient with no dependencies. Requesting a [Name] that was never
// registered fails with [ErrUnregisteredDependency].
//
// # Lifetimes
//
// [Transient] (default): a fresh instance on every [Registry.Get] call.
//
// [Singleton]: constructed on first use and cached until the handler is
// removed or the registry is flushed.
//
//	r.Set(configType, ivy.AsSingleton())
//
// # Constructor and Property Injection
//
// [WithInject] lists identifiers whose instances are passed positionally to
// the constructor. [WithProperty] and [Registry.SetPropertyDependency] assign
// instances to struct fields after construction, matching the field tagged
// `ivy:"name"` or the field with that name:
//
//	type Handler struct {
//		Repo *Repository `ivy:"repo"`
//	}
//
//	r.SetPropertyDependency(handlerType, "repo", repoType)
//
// Registration is idempotent: the first [Registry.Set] for a type or name
// wins and later calls are ignored.
package ivy

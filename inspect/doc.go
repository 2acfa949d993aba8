// Package inspect exposes a read-only view of an [ivy.Registry] over HTTP.
//
//	GET /registrations          all handlers, sorted by name
//	GET /registrations/{name}   one handler, 404 if unknown
//	GET /validate               result of ivy.Registry.Validate
//
// Successful responses are wrapped as {"data": ...}; failures as
// {"message": ...}.
//
//	http.ListenAndServe(":8080", inspect.NewHandler(ivy.Default()))
package inspect

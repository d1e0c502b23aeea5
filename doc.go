// Package crudkit is a scaffolding layer for building CRUD-style JSON HTTP
// resource endpoints on top of chi.
//
// The library separates each endpoint's read behavior (query processors) from
// its write behavior (command processors) and composes them into HTTP verb
// handlers. Application code declares, per resource, a serializer schema and a
// set of processor factories; crudkit wires them to routes, sequences
// permission checks, filtering, pagination and serialization, and maps the
// error taxonomy to HTTP status codes.
//
// # Layout
//
//   - crudkit (this package): the shared error taxonomy — ValidationError and
//     HTTPError with a catalog of status-coded sentinels.
//   - processor: request context, command/query contracts, capability
//     strategies (filter, paginate, permission check) and the object lookup
//     algorithm.
//   - serializer: statically declared schemas that validate request bodies and
//     shape response payloads.
//   - paginate: limit/offset pagination with a typed page envelope.
//   - binder: reflection-based query and path parameter binding.
//   - resource: verb handler composition and chi route registration.
//
// # Minimal resource
//
//	res := resource.New[Task](schema,
//		resource.WithRetrieve(func(req processor.Request, caps processor.Capabilities[Task]) processor.Query[Task] {
//			return &getTask{Base: processor.NewBase(req, caps, processor.Lookup{}), store: store}
//		}),
//		resource.WithCapabilities(processor.Capabilities[Task]{
//			Paginator: paginate.LimitOffset[Task]{},
//		}),
//	)
//	r := chi.NewRouter()
//	r.Mount("/tasks", res)
//
// The modules/tasks package is a complete worked resource: five processors,
// three store backends and a Router that mounts the full verb set.
//
// Processors never outlive a request: the resource layer constructs a fresh
// processor.Request and processor per call and discards both once the
// response is rendered. The library owns no persistent state; stores,
// authorization and filtering arrive through narrow interfaces.
package crudkit

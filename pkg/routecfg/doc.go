// Package routecfg defines the declarative route configuration schema,
// loading from local files or S3, and validation.
//
// A configuration describes a tree of routes, each with an optional set
// of modals, entity-parameter support, and access rules. Validation is
// a pure function from a raw configuration to a result carrying errors
// and warnings; the router only accepts a configuration that validated
// without errors.
package routecfg

// Package router resolves request paths against a declaratively
// configured navigation tree.
//
// The Index is built once from a validated configuration and holds
// three lookup structures: routes by id, routes by full path key, and
// modals by id. The Matcher resolves a path plus query string into a
// MatchResult, disambiguating static segments, entity identifiers, and
// modal identifiers; BuildURL is the inverse operation.
//
// Matching is pure: the index is read-only after construction and a
// MatchResult is never mutated once returned, so a Matcher is safe for
// concurrent readers.
package router

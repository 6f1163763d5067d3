// Package errors provides structured navigation errors with stable codes.
//
// Every failure surfaced by the router carries a code (e.g. "W101") so
// callers and log pipelines can match on it without parsing messages.
// Codes are registered in registry.go together with a default message
// and detail text.
package errors

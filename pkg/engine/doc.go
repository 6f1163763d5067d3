// Package engine orchestrates navigation: it matches target URLs,
// runs guards and access checks, mutates history, and delegates
// rendering and modal display to injected collaborators. Every
// failure path resolves to either a replacement navigation with a
// notice or a structured error result; the one deliberate exception
// is an unresolvable modal origin, which panics.
package engine

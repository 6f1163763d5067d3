package router

import (
	"regexp"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/routecfg"
)

// Entry is an indexed route: the node plus its position in the tree.
type Entry struct {
	// Route is the configured node.
	Route *routecfg.RouteNode

	// FullPath is the ordered path-segment list from the root to this
	// route, e.g. ["corpus", "browse"].
	FullPath []string

	// ParentPath is FullPath without the route's own segment.
	ParentPath []string

	// entityRe is the compiled entity pattern, set when entity support
	// is enabled.
	entityRe *regexp.Regexp
}

// Key returns the full-path lookup key ("corpus/browse").
func (e *Entry) Key() string {
	return strings.Join(e.FullPath, "/")
}

// ModalEntry is an indexed modal together with its owning route.
type ModalEntry struct {
	// Modal is the configured modal node.
	Modal *routecfg.ModalNode

	// Owner is the route the modal is declared on.
	Owner *Entry

	// entityRe is the compiled entity pattern, set when entity support
	// is enabled.
	entityRe *regexp.Regexp
}

// MatchResult is the outcome of resolving a path against the index.
// Instances are immutable once returned.
type MatchResult struct {
	// Success reports whether a route was resolved.
	Success bool

	// Route is the matched route node (deepest static match). Nil when
	// Success is false and no ancestor was found.
	Route *routecfg.RouteNode

	// FullPath is the reconstructed path-segment list including the
	// modal and entity suffixes, in index order: route path, then
	// modalId, then entityId, then secondaryEntityId.
	FullPath []string

	// EntityID is the captured primary entity segment in its original
	// (still URL-encoded) form, empty when none was captured.
	EntityID string

	// SecondaryEntityID is the captured secondary entity segment.
	SecondaryEntityID string

	// ModalID is the captured modal identifier.
	ModalID string

	// Modal is the resolved modal node when ModalID is set.
	Modal *routecfg.ModalNode

	// Params maps the configured paramName(s) to captured values.
	Params map[string]string

	// QueryParams holds the parsed query string (first value per key).
	QueryParams map[string]string

	// MatchedSegments counts consumed path segments.
	MatchedSegments int

	// TotalSegments counts all path segments in the input.
	TotalSegments int

	// Partial is true when the match succeeded but trailing segments
	// could not be consumed; Route then names the deepest valid
	// ancestor.
	Partial bool

	// IsDefault is true when the empty path resolved the default route.
	IsDefault bool

	// Err carries failure detail when Success is false.
	Err error
}

// Param returns a captured parameter by name.
func (m *MatchResult) Param(name string) string {
	return m.Params[name]
}

// Path returns the reconstructed URL path ("/" + joined segments).
func (m *MatchResult) Path() string {
	return "/" + strings.Join(m.FullPath, "/")
}

// NavigationEntry describes a route that should appear in menus.
type NavigationEntry struct {
	RouteID  string
	Path     string
	Order    int
	Icon     string
	Badge    string
	Children []NavigationEntry
}

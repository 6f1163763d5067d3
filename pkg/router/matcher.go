package router

import (
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/routecfg"
)

// Matcher resolves URL paths against the route index and builds URLs
// back from route ids. Match is pure with respect to the index; the
// only mutation point is Rebuild, which swaps the whole index under
// the write lock.
type Matcher struct {
	mu     sync.RWMutex
	idx    *Index
	logger *slog.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithLogger sets the logger used for non-fatal match diagnostics.
func WithLogger(l *slog.Logger) MatcherOption {
	return func(m *Matcher) {
		m.logger = l
	}
}

// NewMatcher builds the index for cfg and returns a ready Matcher.
// Index construction errors (duplicate ids, bad entity patterns) are
// fatal.
func NewMatcher(cfg *routecfg.Config, opts ...MatcherOption) (*Matcher, error) {
	idx, err := BuildIndex(cfg)
	if err != nil {
		return nil, err
	}
	m := &Matcher{
		idx:    idx,
		logger: slog.Default().With("component", "matcher"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Rebuild replaces the index with one built from cfg. The old index
// stays in place when the build fails.
func (m *Matcher) Rebuild(cfg *routecfg.Config) error {
	idx, err := BuildIndex(cfg)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.idx = idx
	m.mu.Unlock()
	return nil
}

// Index returns the current index snapshot.
func (m *Matcher) Index() *Index {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idx
}

// Match resolves a path (optionally carrying a query string) into a
// MatchResult. Static segments always win over entity and modal
// interpretation; classification of a non-static segment tries, in
// order: modal id, route entity id, modal entity parameter(s).
func (m *Matcher) Match(pathWithQuery string) *MatchResult {
	idx := m.Index()

	canonPath, rawQuery, _, err := CanonicalizePath(pathWithQuery)
	if err != nil {
		return &MatchResult{
			Params:      map[string]string{},
			QueryParams: map[string]string{},
			Err:         errors.New("W100").Wrap(err),
		}
	}

	segments := splitPath(canonPath)
	queryParams := parseQuery(rawQuery)

	if len(segments) == 0 {
		return m.matchDefault(idx, queryParams)
	}

	res := &MatchResult{
		Params:        map[string]string{},
		QueryParams:   queryParams,
		TotalSegments: len(segments),
	}

	// Greedy static walk: extend the current full-path key while each
	// prefix is registered.
	var current *Entry
	consumed := 0
	for consumed < len(segments) {
		key := strings.Join(segments[:consumed+1], "/")
		entry, ok := idx.ByPath(key)
		if !ok {
			break
		}
		current = entry
		consumed++
	}

	if current == nil {
		res.Err = errors.New("W100").
			WithDetail("no route matches %q", canonPath).
			WithSuggestion("check the leading path segment against the configured route tree")
		return res
	}

	var (
		modal        *ModalEntry
		modalPrimary bool
	)
	for consumed < len(segments) {
		seg := segments[consumed]

		if modal == nil {
			if me := accessibleModal(idx, current, seg); me != nil {
				modal = me
				res.ModalID = seg
				res.Modal = me.Modal
				consumed++
				continue
			}
		}

		if current.entityRe != nil && res.EntityID == "" {
			decoded, derr := url.PathUnescape(seg)
			if derr == nil && current.entityRe.MatchString(decoded) {
				res.EntityID = seg
				res.Params[current.Route.EntitySupport.EffectiveParamName()] = seg
				consumed++
				continue
			}
		}

		if modal != nil && modal.entityRe != nil {
			decoded, derr := url.PathUnescape(seg)
			if derr == nil && modal.entityRe.MatchString(decoded) {
				es := modal.Modal.EntitySupport
				if !modalPrimary {
					modalPrimary = true
					res.Params[es.EffectiveParamName()] = seg
					if res.EntityID == "" {
						res.EntityID = seg
					}
					consumed++
					continue
				}
				if es.SecondaryParam != "" && res.SecondaryEntityID == "" {
					res.SecondaryEntityID = seg
					res.Params[es.SecondaryParam] = seg
					consumed++
					continue
				}
			}
		}

		// First unclassifiable segment stops consumption; the rest is
		// reported only through the segment counts.
		break
	}

	res.Success = true
	res.Route = current.Route
	res.MatchedSegments = consumed
	res.Partial = consumed < len(segments)
	res.FullPath = reconstructPath(current, res)
	return res
}

func (m *Matcher) matchDefault(idx *Index, queryParams map[string]string) *MatchResult {
	defaultID := routecfg.DefaultRoute
	if cfg := idx.Config(); cfg != nil {
		defaultID = cfg.DefaultRouteID()
	}
	entry, ok := idx.ByID(defaultID)
	if !ok {
		return &MatchResult{
			Params:      map[string]string{},
			QueryParams: queryParams,
			Err: errors.New("W101").
				WithDetail("default route id %q is not in the index", defaultID),
		}
	}
	return &MatchResult{
		Success:     true,
		Route:       entry.Route,
		FullPath:    append([]string{}, entry.FullPath...),
		Params:      map[string]string{},
		QueryParams: queryParams,
		IsDefault:   true,
	}
}

// accessibleModal returns the modal entry registered under seg that is
// reachable from the current route, or nil. A modal is reachable when
// the current route is the consolidated modals route, when the modal
// is owned by the consolidated modals route, or when its owning route
// is the current route or a strict ancestor of it.
func accessibleModal(idx *Index, current *Entry, seg string) *ModalEntry {
	for _, me := range idx.Modals(seg) {
		if current.Route.ID == routecfg.ConsolidatedModalsRoute {
			return me
		}
		if me.Owner.Route.ID == routecfg.ConsolidatedModalsRoute {
			return me
		}
		if me.Owner == current || isStrictAncestor(me.Owner.FullPath, current.FullPath) {
			return me
		}
	}
	return nil
}

// isStrictAncestor reports whether a is a strict path-segment prefix
// of b.
func isStrictAncestor(a, b []string) bool {
	if len(a) >= len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// reconstructPath appends the captured dynamic segments to the matched
// route path: modalId, then entityId, then secondaryEntityId.
func reconstructPath(entry *Entry, res *MatchResult) []string {
	out := append([]string{}, entry.FullPath...)
	if res.ModalID != "" {
		out = append(out, res.ModalID)
	}
	if res.EntityID != "" {
		out = append(out, res.EntityID)
	}
	if res.SecondaryEntityID != "" {
		out = append(out, res.SecondaryEntityID)
	}
	return out
}

// parseQuery flattens a raw query string to its first value per key.
// A malformed query yields an empty map rather than a match failure.
func parseQuery(rawQuery string) map[string]string {
	out := map[string]string{}
	if rawQuery == "" {
		return out
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return out
	}
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

package router

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/routecfg"
)

// Index holds the three lookup structures built from a configuration:
// routes by id, routes by full-path key, and modals by id. It is built
// once and never patched incrementally; a configuration change means a
// full rebuild.
type Index struct {
	byID   map[string]*Entry
	byPath map[string]*Entry
	modals map[string][]*ModalEntry

	cfg *routecfg.Config
}

// BuildIndex constructs an Index from a validated configuration.
// A nil or empty configuration yields empty (but usable) indexes.
// Duplicate route ids or duplicate full-path keys are hard errors.
func BuildIndex(cfg *routecfg.Config) (*Index, error) {
	idx := &Index{
		byID:   make(map[string]*Entry),
		byPath: make(map[string]*Entry),
		modals: make(map[string][]*ModalEntry),
		cfg:    cfg,
	}
	if cfg == nil {
		return idx, nil
	}

	// Worklist traversal with copy-on-push path snapshots, so entries
	// never alias a shared parent-path slice.
	type item struct {
		node       *routecfg.RouteNode
		parentPath []string
	}
	var work []item
	for i := range cfg.Routes {
		work = append(work, item{node: &cfg.Routes[i], parentPath: nil})
	}

	for len(work) > 0 {
		it := work[0]
		work = work[1:]

		node := it.node
		fullPath := make([]string, 0, len(it.parentPath)+1)
		fullPath = append(fullPath, it.parentPath...)
		fullPath = append(fullPath, node.Path)

		entry := &Entry{
			Route:      node,
			FullPath:   fullPath,
			ParentPath: it.parentPath,
		}
		if node.EntitySupport.Enabled {
			re, err := regexp.Compile(node.EntitySupport.EffectivePattern())
			if err != nil {
				return nil, errors.New("W001").WithDetail("entity pattern on route %q does not compile", node.ID).Wrap(err)
			}
			entry.entityRe = re
		}

		if _, exists := idx.byID[node.ID]; exists {
			return nil, errors.New("W002").WithDetail("route id %q is declared more than once", node.ID)
		}
		idx.byID[node.ID] = entry

		key := entry.Key()
		if _, exists := idx.byPath[key]; exists {
			return nil, errors.New("W003").WithDetail("full path %q is declared more than once", key)
		}
		idx.byPath[key] = entry

		for j := range node.Modals {
			modal := &node.Modals[j]
			me := &ModalEntry{
				Modal: modal,
				Owner: entry,
			}
			if modal.EntitySupport.Enabled {
				re, err := regexp.Compile(modal.EntitySupport.EffectivePattern())
				if err != nil {
					return nil, errors.New("W001").WithDetail("entity pattern on modal %q does not compile", modal.ID).Wrap(err)
				}
				me.entityRe = re
			}
			idx.modals[modal.ID] = append(idx.modals[modal.ID], me)
		}

		for j := range node.Children {
			work = append(work, item{node: &node.Children[j], parentPath: fullPath})
		}
	}

	return idx, nil
}

// ByID looks up a route entry by id.
func (idx *Index) ByID(id string) (*Entry, bool) {
	e, ok := idx.byID[id]
	return e, ok
}

// ByPath looks up a route entry by full-path key ("corpus/browse").
func (idx *Index) ByPath(key string) (*Entry, bool) {
	e, ok := idx.byPath[key]
	return e, ok
}

// Modals returns all modal entries registered under an id.
func (idx *Index) Modals(id string) []*ModalEntry {
	return idx.modals[id]
}

// Len returns the number of indexed routes.
func (idx *Index) Len() int {
	return len(idx.byID)
}

// Config returns the configuration this index was built from.
func (idx *Index) Config() *routecfg.Config {
	return idx.cfg
}

// PathKeys returns every registered full-path key, sorted by length
// then lexically. Used by recovery to suggest nearby paths.
func (idx *Index) PathKeys() []string {
	keys := make([]string, 0, len(idx.byPath))
	for k := range idx.byPath {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// NavigationEntries returns the menu metadata tree for routes marked
// showInNavigation, siblings ordered by their configured order.
func (idx *Index) NavigationEntries() []NavigationEntry {
	if idx.cfg == nil {
		return nil
	}
	return navEntries(idx.cfg.Routes, nil)
}

func navEntries(routes []routecfg.RouteNode, parentPath []string) []NavigationEntry {
	var out []NavigationEntry
	for i := range routes {
		r := &routes[i]
		fullPath := append(append([]string{}, parentPath...), r.Path)
		children := navEntries(r.Children, fullPath)
		if !r.Navigation.ShowInNavigation && len(children) == 0 {
			continue
		}
		out = append(out, NavigationEntry{
			RouteID:  r.ID,
			Path:     "/" + strings.Join(fullPath, "/"),
			Order:    r.Navigation.Order,
			Icon:     r.Navigation.Icon,
			Badge:    r.Navigation.Badge,
			Children: children,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

package router

import (
	"net/url"
	"strings"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/routecfg"
)

// URLOptions carries the dynamic parts of a built URL.
type URLOptions struct {
	// ModalID selects a modal declared on the route.
	ModalID string

	// EntityID is the primary entity segment.
	EntityID string

	// SecondaryEntityID is the secondary entity segment, honored only
	// when the selected modal declares a secondaryParam.
	SecondaryEntityID string

	// Query holds explicit query parameters for the built URL.
	Query url.Values

	// CurrentQuery is the query of the current location; configured
	// preserve-parameters are copied from it when absent from Query.
	CurrentQuery url.Values
}

// BuildURL constructs a URL for a route id. Segment order is
// asymmetric: the consolidated modals route places the modal id before
// the entity id, every other route places the entity id first. An
// unknown route id or an undeclared modal id is an error; an entity id
// on a route without entity support is dropped with a warning.
func (m *Matcher) BuildURL(routeID string, opts URLOptions) (string, error) {
	idx := m.Index()

	entry, ok := idx.ByID(routeID)
	if !ok {
		return "", errors.New("W102").WithDetail("route id %q is not in the index", routeID)
	}

	var modal *ModalEntry
	if opts.ModalID != "" {
		modal = declaredModal(idx, entry, opts.ModalID)
		if modal == nil {
			return "", errors.New("W103").
				WithDetail("modal %q is not declared on route %q", opts.ModalID, routeID)
		}
	}

	entityID := opts.EntityID
	entityAllowed := entry.Route.EntitySupport.Enabled ||
		(modal != nil && modal.Modal.EntitySupport.Enabled)
	if entityID != "" && !entityAllowed {
		m.logger.Warn("dropping entity id on route without entity support",
			"route", routeID, "entityId", entityID)
		entityID = ""
	}

	segments := append([]string{}, entry.FullPath...)
	if routeID == routecfg.ConsolidatedModalsRoute {
		if opts.ModalID != "" {
			segments = append(segments, opts.ModalID)
		}
		if entityID != "" {
			segments = append(segments, entityID)
		}
	} else {
		if entityID != "" && entry.Route.EntitySupport.Enabled {
			segments = append(segments, entityID)
			entityID = ""
		}
		if opts.ModalID != "" {
			segments = append(segments, opts.ModalID)
		}
		if entityID != "" {
			segments = append(segments, entityID)
		}
	}
	if opts.SecondaryEntityID != "" && modal != nil && modal.Modal.EntitySupport.SecondaryParam != "" {
		segments = append(segments, opts.SecondaryEntityID)
	}

	query := mergeQuery(idx.Config(), opts.Query, opts.CurrentQuery)

	built := "/" + strings.Join(segments, "/")
	if encoded := query.Encode(); encoded != "" {
		built += "?" + encoded
	}
	return built, nil
}

// declaredModal resolves a modal id against a route. The consolidated
// modals route accepts any indexed modal; every other route only
// accepts modals declared on itself.
func declaredModal(idx *Index, entry *Entry, modalID string) *ModalEntry {
	for _, me := range idx.Modals(modalID) {
		if me.Owner == entry {
			return me
		}
	}
	if entry.Route.ID == routecfg.ConsolidatedModalsRoute {
		if all := idx.Modals(modalID); len(all) > 0 {
			return all[0]
		}
	}
	return nil
}

// mergeQuery copies configured preserve-parameters from the current
// location into the explicit query set when they are not already set.
func mergeQuery(cfg *routecfg.Config, query, current url.Values) url.Values {
	out := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	if current == nil {
		return out
	}
	preserve := routecfg.DefaultPreserveQueryParams()
	if cfg != nil {
		preserve = cfg.PreserveParams()
	}
	for _, p := range preserve {
		if out.Get(p) == "" && current.Get(p) != "" {
			out.Set(p, current.Get(p))
		}
	}
	return out
}

package engine

import (
	"context"

	"github.com/wayfind-dev/wayfind/pkg/routecfg"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// AccessDecision is the outcome of a permission check.
type AccessDecision struct {
	Allowed             bool
	Reason              string
	RequiredPermissions []string

	// Redirect, when set, names the URL to navigate to instead of the
	// denied target.
	Redirect string
}

// SecurityContext answers authentication and permission questions.
// Implemented by the host; the engine never computes permissions
// itself.
type SecurityContext interface {
	IsAuthenticated() bool
	HasRouterPermission(perms []string, enforceAll bool, routeID string) AccessDecision
}

// ViewFactory renders the view for a matched route.
type ViewFactory interface {
	RenderRoute(ctx context.Context, match *router.MatchResult) error
}

// ModalFactory shows and hides modal overlays.
type ModalFactory interface {
	ShowModal(ctx context.Context, modal *routecfg.ModalNode, match *router.MatchResult) error
	HideCurrentModal()
}

// GuardDecision is what a navigation guard returns.
type GuardDecision struct {
	Allowed bool
	Reason  string

	// Redirect, when set, restarts the navigation at this URL.
	Redirect string
}

// Guard is a predicate run before a navigation completes. Guards run
// sequentially in registration order; the first disallowing guard
// short-circuits the chain.
type Guard func(ctx context.Context, target string) GuardDecision

// Allow is the decision guards return on the happy path.
func Allow() GuardDecision { return GuardDecision{Allowed: true} }

// Deny blocks the navigation with a reason.
func Deny(reason string) GuardDecision {
	return GuardDecision{Reason: reason}
}

// RedirectTo restarts the navigation at url.
func RedirectTo(url string) GuardDecision {
	return GuardDecision{Redirect: url}
}

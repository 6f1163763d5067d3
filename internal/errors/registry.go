package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration errors (W001-W099)
	// ============================================

	"W001": {
		Category: CategoryConfig,
		Message:  "route configuration invalid",
		Detail:   "The route configuration failed validation. The router cannot start with an invalid configuration.",
	},
	"W002": {
		Category: CategoryConfig,
		Message:  "duplicate route id",
		Detail:   "Route ids must be unique across the whole tree. A duplicate id would silently shadow an earlier route.",
	},
	"W003": {
		Category: CategoryConfig,
		Message:  "duplicate route path among siblings",
		Detail:   "Sibling routes cannot share a path segment; the full-path key would be ambiguous.",
	},
	"W004": {
		Category: CategoryConfig,
		Message:  "unsupported configuration version",
	},

	// ============================================
	// Match errors (W100-W199)
	// ============================================

	"W100": {
		Category: CategoryMatch,
		Message:  "no matching route found",
		Detail:   "No static route segment matched the requested path.",
	},
	"W101": {
		Category: CategoryMatch,
		Message:  "default route not found",
		Detail:   "The configured default route id is not present in the route index.",
	},
	"W102": {
		Category: CategoryMatch,
		Message:  "route not found",
	},
	"W103": {
		Category: CategoryMatch,
		Message:  "modal not declared on route",
	},

	// ============================================
	// Navigation errors (W200-W299)
	// ============================================

	"W200": {
		Category: CategoryGuard,
		Message:  "navigation guard error",
		Detail:   "A navigation guard panicked. The navigation was denied.",
	},
	"W201": {
		Category: CategoryGuard,
		Message:  "guard redirect limit exceeded",
		Detail:   "Guards redirected more times than the configured ceiling. This usually indicates a redirect cycle.",
	},
	"W202": {
		Category: CategoryAccess,
		Message:  "access denied",
	},
	"W203": {
		Category: CategoryRender,
		Message:  "view render failed",
	},
	"W204": {
		Category: CategoryModal,
		Message:  "modal show failed",
	},
	"W205": {
		Category: CategoryGuard,
		Message:  "navigation already in flight",
		Detail:   "A navigation is being processed. This engine rejects concurrent navigations rather than queueing them.",
	},

	// ============================================
	// Origin-tracking errors (W300-W399)
	// ============================================

	"W300": {
		Category: CategoryOrigin,
		Message:  "modal origin could not be resolved",
		Detail:   "A modal is opening over a modal-routed URL and no origin could be recovered. A silently wrong origin corrupts back navigation, so this error is fatal.",
	},
}

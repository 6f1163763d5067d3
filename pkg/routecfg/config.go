package routecfg

const (
	// DefaultRoute is the route id resolved for the bare "/" path when
	// the configuration does not name one.
	DefaultRoute = "docs"

	// DefaultEntityPattern validates entity id segments for routes that
	// enable entity support without configuring their own pattern.
	DefaultEntityPattern = `^[A-Za-z0-9_\-./]+$`

	// ConsolidatedModalsRoute is the route id that grants access to any
	// modal in the tree and swaps the entity/modal segment order in
	// built URLs.
	ConsolidatedModalsRoute = "modals"

	// SupportedMajor is the highest configuration schema major version
	// this build understands.
	SupportedMajor = 1
)

// DefaultPreserveQueryParams are the query parameters copied from the
// current location into built URLs and forward navigations when the
// configuration does not list its own set.
func DefaultPreserveQueryParams() []string {
	return []string{"s", "key"}
}

// Config is the root of a route configuration document.
type Config struct {
	// Schema is the optional $schema reference, ignored at runtime.
	Schema string `yaml:"$schema,omitempty" json:"$schema,omitempty"`

	// Version is the configuration schema version (semver).
	Version string `yaml:"version" json:"version"`

	// GlobalSettings apply across the whole tree.
	GlobalSettings GlobalSettings `yaml:"globalSettings,omitempty" json:"globalSettings,omitempty"`

	// Routes are the top-level route nodes.
	Routes []RouteNode `yaml:"routes" json:"routes"`
}

// GlobalSettings holds tree-wide navigation settings.
type GlobalSettings struct {
	// DefaultRoute is the route id resolved for the bare "/" path.
	DefaultRoute string `yaml:"defaultRoute,omitempty" json:"defaultRoute,omitempty"`

	// ErrorRoute is the route id navigated to when recovery has no
	// better candidate. Falls back to DefaultRoute when empty.
	ErrorRoute string `yaml:"errorRoute,omitempty" json:"errorRoute,omitempty"`

	// PreserveQueryParams are copied from the current location into new
	// navigations when the target URL does not already set them.
	PreserveQueryParams []string `yaml:"preserveQueryParams,omitempty" json:"preserveQueryParams,omitempty"`
}

// RouteNode is a node in the configured navigation tree.
type RouteNode struct {
	// ID is the tree-unique route identifier (pattern ^[a-z][a-z0-9_]*$).
	ID string `yaml:"id" json:"id"`

	// Path is the URL segment, unique among siblings (pattern ^[a-z][a-z0-9_-]*$).
	Path string `yaml:"path" json:"path"`

	// Component describes what renders for this route.
	Component Component `yaml:"component,omitempty" json:"component,omitempty"`

	// Access holds authentication and permission requirements.
	Access Access `yaml:"access,omitempty" json:"access,omitempty"`

	// EntitySupport enables a dynamic entity-id segment under this route.
	EntitySupport EntitySupport `yaml:"entitySupport,omitempty" json:"entitySupport,omitempty"`

	// Navigation holds menu/breadcrumb metadata.
	Navigation Navigation `yaml:"navigation,omitempty" json:"navigation,omitempty"`

	// Transitions map named triggers to target routes.
	Transitions map[string]Transition `yaml:"transitions,omitempty" json:"transitions,omitempty"`

	// Modals are the overlays attached to this route.
	Modals []ModalNode `yaml:"modals,omitempty" json:"modals,omitempty"`

	// Children are nested routes.
	Children []RouteNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// ModalNode is an overlay attached to a route. Its id is unique within
// the owning route's scope.
type ModalNode struct {
	ID            string        `yaml:"id" json:"id"`
	Component     Component     `yaml:"component,omitempty" json:"component,omitempty"`
	Access        Access        `yaml:"access,omitempty" json:"access,omitempty"`
	EntitySupport EntitySupport `yaml:"entitySupport,omitempty" json:"entitySupport,omitempty"`
}

// Component describes the view or modal implementation for a node.
type Component struct {
	// Type is "view" or "modal".
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// Factory is the collaborator-side factory name.
	Factory string `yaml:"factory,omitempty" json:"factory,omitempty"`

	// Module is the collaborator-side module the factory lives in.
	Module string `yaml:"module,omitempty" json:"module,omitempty"`
}

// Access holds the authentication and permission requirements consumed
// through the SecurityContext capability.
type Access struct {
	RequiresAuth       bool     `yaml:"requiresAuth,omitempty" json:"requiresAuth,omitempty"`
	PermissionsAnyOf   []string `yaml:"permissionsAnyOf,omitempty" json:"permissionsAnyOf,omitempty"`
	PermissionsAllOf   []string `yaml:"permissionsAllOf,omitempty" json:"permissionsAllOf,omitempty"`
	EnforcePermissions bool     `yaml:"enforcePermissions,omitempty" json:"enforcePermissions,omitempty"`
}

// EntitySupport enables a dynamic entity-id path segment.
type EntitySupport struct {
	// Enabled turns entity capture on for the owning route or modal.
	Enabled bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// ParamName is the key used in MatchResult.Params for the entity id.
	// Defaults to "entityId".
	ParamName string `yaml:"paramName,omitempty" json:"paramName,omitempty"`

	// Pattern validates the URL-decoded segment. Defaults to
	// DefaultEntityPattern.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// SecondaryParam, when set on a modal, allows a second entity
	// segment mapped under this key.
	SecondaryParam string `yaml:"secondaryParam,omitempty" json:"secondaryParam,omitempty"`
}

// Navigation holds presentation metadata for menus. The router never
// renders it; it is exposed for menu builders.
type Navigation struct {
	ShowInNavigation bool   `yaml:"showInNavigation,omitempty" json:"showInNavigation,omitempty"`
	Order            int    `yaml:"order,omitempty" json:"order,omitempty"`
	Icon             string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Badge            string `yaml:"badge,omitempty" json:"badge,omitempty"`

	// Title is the page title template. "{{entity.<param>}}"
	// placeholders are substituted with captured entity values.
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Transition describes a named navigation away from a route.
type Transition struct {
	Target         string `yaml:"target" json:"target"`
	Trigger        string `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	PreserveEntity bool   `yaml:"preserveEntity,omitempty" json:"preserveEntity,omitempty"`
	Condition      string `yaml:"condition,omitempty" json:"condition,omitempty"`
	Selector       string `yaml:"selector,omitempty" json:"selector,omitempty"`
}

// DefaultRouteID returns the configured default route id, or the
// package default when unset.
func (c *Config) DefaultRouteID() string {
	if c.GlobalSettings.DefaultRoute != "" {
		return c.GlobalSettings.DefaultRoute
	}
	return DefaultRoute
}

// ErrorRouteID returns the configured error route id, falling back to
// the default route id.
func (c *Config) ErrorRouteID() string {
	if c.GlobalSettings.ErrorRoute != "" {
		return c.GlobalSettings.ErrorRoute
	}
	return c.DefaultRouteID()
}

// PreserveParams returns the configured preserve-parameter names, or
// the package default when unset.
func (c *Config) PreserveParams() []string {
	if len(c.GlobalSettings.PreserveQueryParams) > 0 {
		return c.GlobalSettings.PreserveQueryParams
	}
	return DefaultPreserveQueryParams()
}

// EffectivePattern returns the entity validation pattern for a node,
// applying the package default when none is configured.
func (e EntitySupport) EffectivePattern() string {
	if e.Pattern != "" {
		return e.Pattern
	}
	return DefaultEntityPattern
}

// EffectiveParamName returns the params key for the primary entity id.
func (e EntitySupport) EffectiveParamName() string {
	if e.ParamName != "" {
		return e.ParamName
	}
	return "entityId"
}

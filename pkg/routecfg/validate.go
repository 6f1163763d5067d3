package routecfg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blang/semver/v4"
	"go.uber.org/multierr"
)

var (
	idPattern   = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	pathPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// ValidationIssueType categorizes validation findings.
type ValidationIssueType string

const (
	// IssueDuplicateID indicates a route id used more than once in the tree.
	IssueDuplicateID ValidationIssueType = "DUPLICATE_ID"

	// IssueDuplicatePath indicates sibling routes sharing a path segment.
	IssueDuplicatePath ValidationIssueType = "DUPLICATE_PATH"

	// IssueDuplicateModal indicates a modal id reused within one route.
	IssueDuplicateModal ValidationIssueType = "DUPLICATE_MODAL"

	// IssueBadID indicates an id that does not match ^[a-z][a-z0-9_]*$.
	IssueBadID ValidationIssueType = "BAD_ID"

	// IssueBadPath indicates a path that does not match ^[a-z][a-z0-9_-]*$.
	IssueBadPath ValidationIssueType = "BAD_PATH"

	// IssueBadPattern indicates an entity pattern that does not compile.
	IssueBadPattern ValidationIssueType = "BAD_PATTERN"

	// IssueBadVersion indicates a version that is not valid semver or is
	// newer than this build supports.
	IssueBadVersion ValidationIssueType = "BAD_VERSION"

	// IssueMissingRoute indicates a referenced route id absent from the tree.
	IssueMissingRoute ValidationIssueType = "MISSING_ROUTE"

	// IssueSuspectEntity indicates entity support configured in a way
	// that cannot take effect.
	IssueSuspectEntity ValidationIssueType = "SUSPECT_ENTITY"

	// IssueEmptyTree indicates a configuration with no routes at all.
	IssueEmptyTree ValidationIssueType = "EMPTY_TREE"
)

// ValidationIssue is a single validation finding.
type ValidationIssue struct {
	// Type is the issue category.
	Type ValidationIssueType

	// Message is the human-readable description.
	Message string

	// RouteID is the route the issue was found on, when applicable.
	RouteID string
}

func (i ValidationIssue) Error() string {
	if i.RouteID != "" {
		return fmt.Sprintf("%s: %s (route %q)", i.Type, i.Message, i.RouteID)
	}
	return fmt.Sprintf("%s: %s", i.Type, i.Message)
}

// Result is the outcome of validating a configuration.
type Result struct {
	// Valid is true when no errors were found. Warnings do not affect it.
	Valid bool

	// Errors block the router from starting.
	Errors []ValidationIssue

	// Warnings are surfaced at startup but do not block.
	Warnings []ValidationIssue
}

// Err returns all errors combined, or nil when the result is valid.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	var err error
	for _, issue := range r.Errors {
		err = multierr.Append(err, issue)
	}
	return err
}

// Summary returns a short one-line description of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d errors, %d warnings", len(r.Errors), len(r.Warnings))
}

// Validate checks a configuration for structural errors. It is a pure
// function: the configuration is not modified, and repeated calls
// return structurally equal results.
func Validate(cfg *Config) *Result {
	v := &validator{known: make(map[string]bool)}
	if cfg == nil {
		v.errorf(IssueEmptyTree, "", "configuration is nil")
		return v.result()
	}

	v.checkVersion(cfg.Version)

	if len(cfg.Routes) == 0 {
		v.warnf(IssueEmptyTree, "", "configuration has no routes")
	}

	// First pass collects ids so reference checks see the whole tree.
	v.collectIDs(cfg.Routes)
	v.checkRoutes(cfg.Routes, nil)

	if def := cfg.GlobalSettings.DefaultRoute; def != "" && !v.known[def] {
		v.errorf(IssueMissingRoute, def, "defaultRoute %q does not exist in the tree", def)
	}
	if er := cfg.GlobalSettings.ErrorRoute; er != "" && !v.known[er] {
		v.warnf(IssueMissingRoute, er, "errorRoute %q does not exist in the tree", er)
	}

	return v.result()
}

type validator struct {
	errors   []ValidationIssue
	warnings []ValidationIssue
	known    map[string]bool
	seen     map[string]bool
}

func (v *validator) errorf(t ValidationIssueType, routeID, format string, args ...any) {
	v.errors = append(v.errors, ValidationIssue{Type: t, RouteID: routeID, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) warnf(t ValidationIssueType, routeID, format string, args ...any) {
	v.warnings = append(v.warnings, ValidationIssue{Type: t, RouteID: routeID, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) result() *Result {
	return &Result{
		Valid:    len(v.errors) == 0,
		Errors:   v.errors,
		Warnings: v.warnings,
	}
}

func (v *validator) checkVersion(version string) {
	if version == "" {
		v.warnf(IssueBadVersion, "", "version is empty; assuming %d.0.0", SupportedMajor)
		return
	}
	parsed, err := semver.Parse(version)
	if err != nil {
		v.errorf(IssueBadVersion, "", "version %q is not valid semver: %v", version, err)
		return
	}
	if parsed.Major > SupportedMajor {
		v.errorf(IssueBadVersion, "", "version %s is newer than supported major %d", version, SupportedMajor)
	}
}

func (v *validator) collectIDs(routes []RouteNode) {
	for i := range routes {
		r := &routes[i]
		if r.ID != "" {
			v.known[r.ID] = true
		}
		v.collectIDs(r.Children)
	}
}

func (v *validator) checkRoutes(routes []RouteNode, trail []string) {
	if v.seen == nil {
		v.seen = make(map[string]bool)
	}

	siblingPaths := make(map[string]string)
	for i := range routes {
		r := &routes[i]

		switch {
		case r.ID == "":
			v.errorf(IssueBadID, "", "route at %s has no id", trailString(trail, r.Path))
		case !idPattern.MatchString(r.ID):
			v.errorf(IssueBadID, r.ID, "id %q does not match %s", r.ID, idPattern)
		case v.seen[r.ID]:
			v.errorf(IssueDuplicateID, r.ID, "id %q is used more than once", r.ID)
		default:
			v.seen[r.ID] = true
		}

		switch {
		case r.Path == "":
			v.errorf(IssueBadPath, r.ID, "route has no path segment")
		case !pathPattern.MatchString(r.Path):
			v.errorf(IssueBadPath, r.ID, "path %q does not match %s", r.Path, pathPattern)
		case siblingPaths[r.Path] != "":
			v.errorf(IssueDuplicatePath, r.ID, "path %q also used by sibling route %q", r.Path, siblingPaths[r.Path])
		default:
			siblingPaths[r.Path] = r.ID
		}

		v.checkEntitySupport(r.ID, r.EntitySupport, false)

		modalIDs := make(map[string]bool)
		for j := range r.Modals {
			m := &r.Modals[j]
			if m.ID == "" {
				v.errorf(IssueBadID, r.ID, "modal without id on route %q", r.ID)
				continue
			}
			if modalIDs[m.ID] {
				v.errorf(IssueDuplicateModal, r.ID, "modal id %q repeated on route %q", m.ID, r.ID)
			}
			modalIDs[m.ID] = true
			v.checkEntitySupport(r.ID+"/"+m.ID, m.EntitySupport, true)
		}

		for key, tr := range r.Transitions {
			if tr.Target == "" {
				v.warnf(IssueMissingRoute, r.ID, "transition %q has no target", key)
			} else if !v.known[tr.Target] {
				v.warnf(IssueMissingRoute, r.ID, "transition %q targets unknown route %q", key, tr.Target)
			}
		}

		v.checkRoutes(r.Children, append(trail, r.Path))
	}
}

func (v *validator) checkEntitySupport(owner string, es EntitySupport, isModal bool) {
	if es.Pattern != "" {
		if _, err := regexp.Compile(es.Pattern); err != nil {
			v.errorf(IssueBadPattern, owner, "entity pattern %q does not compile: %v", es.Pattern, err)
		}
	}
	if !es.Enabled && (es.Pattern != "" || es.ParamName != "" || es.SecondaryParam != "") {
		v.warnf(IssueSuspectEntity, owner, "entitySupport fields set but enabled is false")
	}
	if es.SecondaryParam != "" && !isModal {
		v.warnf(IssueSuspectEntity, owner, "secondaryParam only applies to modals")
	}
}

func trailString(trail []string, leaf string) string {
	if len(trail) == 0 {
		return "/" + leaf
	}
	return "/" + strings.Join(trail, "/") + "/" + leaf
}

package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/history"
	"github.com/wayfind-dev/wayfind/pkg/notice"
	"github.com/wayfind-dev/wayfind/pkg/origin"
	"github.com/wayfind-dev/wayfind/pkg/routecfg"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Config configures the navigation engine.
type Config struct {
	// MaxRedirects is the ceiling on guard/recovery redirect depth.
	// Default: 10.
	MaxRedirects int

	// HistorySize caps the bounded route-history buffer.
	// Default: 10.
	HistorySize int

	// MaxSuggestions caps the "did you mean" paths in recovery notices.
	// Default: 5.
	MaxSuggestions int

	// Metrics configures the Prometheus instruments.
	Metrics MetricsConfig

	// Origin configures the modal-origin tracker built when none is
	// injected.
	Origin origin.TrackerConfig
}

// DefaultConfig returns a Config with the standard limits.
func DefaultConfig() Config {
	return Config{
		MaxRedirects:   10,
		HistorySize:    10,
		MaxSuggestions: 5,
		Metrics:        DefaultMetricsConfig(),
		Origin:         origin.DefaultTrackerConfig(),
	}
}

// NavigateOptions modify a single Navigate call.
type NavigateOptions struct {
	// Replace overwrites the current history entry instead of pushing.
	Replace bool

	// FromHistory marks a navigation triggered by a back/forward pop;
	// it implies replace semantics.
	FromHistory bool

	// SkipQueryPreservation disables merging configured
	// preserve-parameters from the current location.
	SkipQueryPreservation bool
}

// Result is the structured outcome of a Navigate call. Navigate never
// returns a raw error for recoverable failures; Handled reports that
// the UI was left in a resolved state regardless of Success.
type Result struct {
	Success bool
	Handled bool
	URL     string
	Match   *router.MatchResult
	Err     error
}

// OriginTrackingError is the one failure the engine lets propagate as
// a panic: a modal opening over a modal-routed URL with no resolvable
// origin. A silently wrong origin corrupts back navigation, so this
// crashes visibly instead.
type OriginTrackingError struct {
	ModalID   string
	ActiveURL string
}

func (e *OriginTrackingError) Error() string {
	return fmt.Sprintf("W300: no origin resolvable for modal %q over %q", e.ModalID, e.ActiveURL)
}

// Engine is the navigation orchestrator.
type Engine struct {
	matcher   *router.Matcher
	origins   *origin.Tracker
	hist      history.History
	security  SecurityContext
	views     ViewFactory
	modals    ModalFactory
	presenter notice.Presenter
	logger    *slog.Logger
	metrics   *metrics
	tracer    trace.Tracer
	config    Config

	// Rejects concurrent Navigate calls rather than queueing them.
	inFlight atomic.Bool

	// ownsOrigins marks a tracker the engine built itself and must
	// close.
	ownsOrigins bool

	mu              sync.RWMutex
	guards          []Guard
	callbacks       []func(*router.MatchResult)
	current         *router.MatchResult
	previous        *router.MatchResult
	lastNonModalURL string
	routeHistory    []*router.MatchResult
}

// Option configures an Engine.
type Option func(*Engine)

// WithSecurityContext injects the permission capability.
func WithSecurityContext(s SecurityContext) Option {
	return func(e *Engine) { e.security = s }
}

// WithViewFactory injects the view renderer.
func WithViewFactory(v ViewFactory) Option {
	return func(e *Engine) { e.views = v }
}

// WithModalFactory injects the modal presenter.
func WithModalFactory(m ModalFactory) Option {
	return func(e *Engine) { e.modals = m }
}

// WithPresenter injects the notice sink.
func WithPresenter(p notice.Presenter) Option {
	return func(e *Engine) { e.presenter = p }
}

// WithHistory injects the history implementation.
func WithHistory(h history.History) Option {
	return func(e *Engine) { e.hist = h }
}

// WithOriginTracker injects a shared origin tracker. The engine does
// not close injected trackers.
func WithOriginTracker(t *origin.Tracker) Option {
	return func(e *Engine) {
		e.origins = t
		e.ownsOrigins = false
	}
}

// WithEngineLogger sets the logger.
func WithEngineLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l.With("component", "engine") }
}

// New creates an Engine around a matcher. Missing collaborators get
// in-process defaults: memory history, a fresh origin tracker, and a
// logging notice presenter.
func New(m *router.Matcher, config Config, opts ...Option) *Engine {
	def := DefaultConfig()
	if config.MaxRedirects <= 0 {
		config.MaxRedirects = def.MaxRedirects
	}
	if config.HistorySize <= 0 {
		config.HistorySize = def.HistorySize
	}
	if config.MaxSuggestions <= 0 {
		config.MaxSuggestions = def.MaxSuggestions
	}
	if config.Metrics.Namespace == "" {
		config.Metrics.Namespace = def.Metrics.Namespace
	}
	if config.Metrics.Subsystem == "" {
		config.Metrics.Subsystem = def.Metrics.Subsystem
	}
	if config.Metrics.Registry == nil {
		config.Metrics.Registry = def.Metrics.Registry
	}
	if len(config.Metrics.Buckets) == 0 {
		config.Metrics.Buckets = def.Metrics.Buckets
	}

	e := &Engine{
		matcher:     m,
		logger:      slog.Default().With("component", "engine"),
		tracer:      defaultTracer(),
		config:      config,
		ownsOrigins: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hist == nil {
		e.hist = history.NewMemory()
	}
	if e.origins == nil {
		e.origins = origin.NewTracker(config.Origin, e.logger)
	}
	if e.presenter == nil {
		e.presenter = notice.NewLog(e.logger)
	}
	e.metrics = newMetrics(config.Metrics)

	e.hist.OnPop(func(loc history.Location) {
		e.Navigate(context.Background(), loc.URL, NavigateOptions{FromHistory: true})
	})

	return e
}

// Close releases the engine's own resources. Injected collaborators
// are left alone.
func (e *Engine) Close() {
	if e.ownsOrigins {
		e.origins.Close()
	}
}

// SetPresenter replaces the notice sink. Useful when the presenter is
// built around something constructed after the engine, like a server's
// broadcast channel.
func (e *Engine) SetPresenter(p notice.Presenter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.presenter = p
}

// RegisterGuard appends a guard; guards run in registration order.
func (e *Engine) RegisterGuard(g Guard) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.guards = append(e.guards, g)
}

// OnRouteChange registers a callback invoked after each successful
// navigation. A panicking callback is isolated and logged.
func (e *Engine) OnRouteChange(fn func(*router.MatchResult)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks = append(e.callbacks, fn)
}

// Current returns the installed match, nil before the first
// navigation.
func (e *Engine) Current() *router.MatchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Previous returns the match that was current before the last
// navigation.
func (e *Engine) Previous() *router.MatchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.previous
}

// RouteHistory returns the bounded navigation history, newest first.
func (e *Engine) RouteHistory() []*router.MatchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*router.MatchResult{}, e.routeHistory...)
}

// Matcher returns the engine's matcher.
func (e *Engine) Matcher() *router.Matcher {
	return e.matcher
}

// Origins returns the engine's origin tracker.
func (e *Engine) Origins() *origin.Tracker {
	return e.origins
}

// State is a point-in-time snapshot of engine state.
type State struct {
	Current     *router.MatchResult
	Previous    *router.MatchResult
	History     []*router.MatchResult
	OriginDepth int
}

// State snapshots the engine for inspection endpoints.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return State{
		Current:     e.current,
		Previous:    e.previous,
		History:     append([]*router.MatchResult{}, e.routeHistory...),
		OriginDepth: e.origins.Len(),
	}
}

// Navigate resolves and executes a navigation to target. Concurrent
// calls are rejected while one is in flight. All recoverable failures
// come back as a Result; an unresolvable modal origin panics with
// *OriginTrackingError.
func (e *Engine) Navigate(ctx context.Context, target string, opts NavigateOptions) Result {
	if !e.inFlight.CompareAndSwap(false, true) {
		e.metrics.navigationsTotal.WithLabelValues("rejected").Inc()
		return Result{URL: target, Err: errors.New("W205").WithDetail("rejected navigation to %q", target)}
	}
	defer e.inFlight.Store(false)

	start := time.Now()
	ctx, span := e.startSpan(ctx, "engine.navigate",
		attribute.String("nav.target", target),
		attribute.Bool("nav.replace", opts.Replace || opts.FromHistory))

	res := e.safeNavigate(ctx, target, opts, 0)

	e.metrics.navigationDuration.Observe(time.Since(start).Seconds())
	e.metrics.navigationsTotal.WithLabelValues(statusLabel(res)).Inc()
	endSpan(span, res.Err)
	return res
}

// Back moves one entry back in history; the pop handler re-enters
// Navigate with FromHistory set.
func (e *Engine) Back() {
	e.hist.Back()
}

// CloseModal pops the origin recorded for handle and navigates back to
// it with replace semantics. An unknown handle falls back to the
// default route.
func (e *Engine) CloseModal(ctx context.Context, handle string) Result {
	originURL, ok := e.origins.Pop(handle)
	e.metrics.originStackDepth.Set(float64(e.origins.Len()))
	if !ok {
		originURL = e.defaultURL()
	}
	if e.modals != nil {
		e.modals.HideCurrentModal()
	}
	return e.Navigate(ctx, originURL, NavigateOptions{Replace: true})
}

// Transition fires a named transition declared on the current route.
func (e *Engine) Transition(ctx context.Context, trigger string) Result {
	cur := e.Current()
	if cur == nil || cur.Route == nil {
		return Result{Err: errors.Newf(errors.CategoryMatch, "no current route for transition %q", trigger)}
	}
	tr, ok := cur.Route.Transitions[trigger]
	if !ok {
		return Result{Err: errors.Newf(errors.CategoryMatch, "route %q has no transition %q", cur.Route.ID, trigger)}
	}
	var urlOpts router.URLOptions
	if tr.PreserveEntity {
		urlOpts.EntityID = cur.EntityID
	}
	built, err := e.matcher.BuildURL(tr.Target, urlOpts)
	if err != nil {
		return Result{Err: err}
	}
	return e.Navigate(ctx, built, NavigateOptions{})
}

// safeNavigate converts any panic below the navigate boundary into a
// failure result, except the origin-tracking fail-fast, which is
// re-raised.
func (e *Engine) safeNavigate(ctx context.Context, target string, opts NavigateOptions, depth int) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			if ote, ok := r.(*OriginTrackingError); ok {
				panic(ote)
			}
			err := errors.Newf(errors.CategoryRender, "navigation panicked: %v", r)
			e.logger.Error("navigation panicked", "target", target, "panic", r)
			e.present(notice.Notice{
				Level:   notice.LevelError,
				Title:   "Navigation failed",
				Message: "An unexpected error interrupted the navigation.",
			})
			res = Result{URL: target, Handled: true, Err: err}
		}
	}()
	return e.navigate(ctx, target, opts, depth)
}

func (e *Engine) navigate(ctx context.Context, target string, opts NavigateOptions, depth int) Result {
	if depth > e.config.MaxRedirects {
		err := errors.New("W201").WithDetail("gave up after %d redirects at %q", depth, target)
		e.logger.Error("redirect ceiling hit", "target", target, "depth", depth)
		e.present(notice.Notice{
			Level:   notice.LevelError,
			Title:   "Navigation failed",
			Message: "Too many redirects.",
		})
		return Result{URL: target, Handled: true, Err: err}
	}

	if !opts.SkipQueryPreservation {
		target = e.preserveQuery(target)
	}

	e.mu.RLock()
	guards := append([]Guard{}, e.guards...)
	e.mu.RUnlock()

	for i, g := range guards {
		dec := e.runGuard(ctx, g, target)
		if dec.Redirect != "" {
			e.metrics.guardRedirects.Inc()
			e.logger.Debug("guard redirect", "target", target, "redirect", dec.Redirect, "guard", i)
			return e.navigate(ctx, dec.Redirect, opts, depth+1)
		}
		if !dec.Allowed {
			e.metrics.guardDenials.Inc()
			e.logger.Info("guard denied navigation", "target", target, "reason", dec.Reason, "guard", i)
			var err error
			if dec.Reason == "navigation guard error" {
				err = errors.New("W200")
			} else {
				err = errors.Newf(errors.CategoryGuard, "navigation denied: %s", dec.Reason)
			}
			return Result{URL: target, Handled: true, Err: err}
		}
	}

	if opts.Replace || opts.FromHistory {
		e.hist.Replace(target, "")
	} else {
		e.hist.Push(target, "")
	}

	return e.handleNavigation(ctx, target, opts, depth)
}

// runGuard executes one guard, converting a panic into a denial with
// reason "navigation guard error".
func (e *Engine) runGuard(ctx context.Context, g Guard, target string) (dec GuardDecision) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("guard panicked", "target", target, "panic", r)
			dec = GuardDecision{Allowed: false, Reason: "navigation guard error"}
		}
	}()
	return g(ctx, target)
}

func (e *Engine) handleNavigation(ctx context.Context, target string, opts NavigateOptions, depth int) Result {
	mctx, span := e.startSpan(ctx, "engine.match", attribute.String("nav.target", target))
	match := e.matcher.Match(target)
	endSpan(span, match.Err)
	ctx = mctx

	if !match.Success {
		e.recoverFallback(ctx, target, depth)
		return Result{URL: target, Handled: true, Match: match, Err: match.Err}
	}
	if match.Partial {
		e.recoverPartial(ctx, target, match, depth)
		return Result{URL: target, Handled: true, Match: match}
	}

	if dec := e.checkAccess(match); !dec.Allowed {
		e.metrics.accessDenials.Inc()
		e.logger.Info("access denied", "route", match.Route.ID, "reason", dec.Reason)
		err := errors.New("W202").WithDetail("route %q: %s", match.Route.ID, dec.Reason)
		if dec.Redirect != "" {
			e.navigate(ctx, dec.Redirect, NavigateOptions{Replace: true}, depth+1)
			return Result{URL: target, Handled: true, Match: match, Err: err}
		}
		e.present(notice.Notice{
			Level:   notice.LevelWarning,
			Title:   "Access denied",
			Message: "You do not have access to this page.",
			Details: dec.Reason,
		})
		e.navigate(ctx, e.defaultURL(), NavigateOptions{Replace: true}, depth+1)
		return Result{URL: target, Handled: true, Match: match, Err: err}
	}

	e.mu.Lock()
	e.previous = e.current
	e.current = match
	e.routeHistory = append([]*router.MatchResult{match}, e.routeHistory...)
	if len(e.routeHistory) > e.config.HistorySize {
		e.routeHistory = e.routeHistory[:e.config.HistorySize]
	}
	prev := e.previous
	e.mu.Unlock()

	if res := e.execute(ctx, target, match, prev); res.Err != nil {
		return res
	}

	if match.ModalID == "" {
		e.mu.Lock()
		e.lastNonModalURL = target
		e.mu.Unlock()
	}

	if title := pageTitle(match); title != "" {
		e.hist.Replace(target, title)
	}

	e.mu.RLock()
	callbacks := append([]func(*router.MatchResult){}, e.callbacks...)
	e.mu.RUnlock()
	for _, fn := range callbacks {
		e.invokeCallback(fn, match)
	}

	return Result{Success: true, Handled: true, URL: target, Match: match}
}

// execute delegates to the modal or view collaborator.
func (e *Engine) execute(ctx context.Context, target string, match, prev *router.MatchResult) Result {
	ectx, span := e.startSpan(ctx, "engine.execute",
		attribute.String("nav.route", match.Route.ID),
		attribute.String("nav.modal", match.ModalID))
	ctx = ectx

	if match.ModalID != "" {
		originURL := e.resolveOrigin(prev, match)
		e.origins.Push(match.ModalID, originURL)
		e.metrics.originStackDepth.Set(float64(e.origins.Len()))

		if e.modals != nil {
			if err := e.modals.ShowModal(ctx, match.Modal, match); err != nil {
				wrapped := errors.New("W204").Wrap(err)
				endSpan(span, wrapped)
				e.logger.Error("modal show failed", "modal", match.ModalID, "error", err)
				e.present(notice.Notice{
					Level:   notice.LevelError,
					Title:   "Could not open dialog",
					Message: wrapped.Error(),
				})
				return Result{URL: target, Handled: true, Match: match, Err: wrapped}
			}
		}
		endSpan(span, nil)
		return Result{Success: true}
	}

	if prev != nil && prev.ModalID != "" && e.modals != nil {
		e.modals.HideCurrentModal()
	}
	if e.views != nil {
		if err := e.views.RenderRoute(ctx, match); err != nil {
			wrapped := errors.New("W203").Wrap(err)
			endSpan(span, wrapped)
			e.logger.Error("render failed", "route", match.Route.ID, "error", err)
			e.present(notice.Notice{
				Level:   notice.LevelError,
				Title:   "Could not display page",
				Message: wrapped.Error(),
			})
			return Result{URL: target, Handled: true, Match: match, Err: wrapped}
		}
	}
	endSpan(span, nil)
	return Result{Success: true}
}

// resolveOrigin finds the URL a modal should restore on close, trying
// the previous non-modal match, then the latest stack entry, then the
// cached last non-modal location. No candidate while the active route
// is modal-routed is the fail-fast case.
func (e *Engine) resolveOrigin(prev, match *router.MatchResult) string {
	if prev == nil {
		return e.defaultURL()
	}
	if prev.ModalID == "" {
		e.mu.RLock()
		cached := e.lastNonModalURL
		e.mu.RUnlock()
		if cached != "" {
			return cached
		}
		return prev.Path()
	}
	if latest, ok := e.origins.Latest(); ok {
		return latest.URL
	}
	e.mu.RLock()
	cached := e.lastNonModalURL
	e.mu.RUnlock()
	if cached != "" {
		return cached
	}
	panic(&OriginTrackingError{ModalID: match.ModalID, ActiveURL: prev.Path()})
}

// recoverPartial replaces the failed navigation with the deepest valid
// ancestor and surfaces nearby-path suggestions.
func (e *Engine) recoverPartial(ctx context.Context, target string, match *router.MatchResult, depth int) {
	e.metrics.recoveriesTotal.WithLabelValues("partial").Inc()
	dest := match.Path()
	e.logger.Info("partial match recovery", "target", target, "dest", dest)
	e.present(notice.Notice{
		Level:       notice.LevelWarning,
		Title:       "Page not found",
		Message:     fmt.Sprintf("%q does not exist; showing the closest page instead.", target),
		Suggestions: e.suggestions(target),
	})
	e.navigate(ctx, dest, NavigateOptions{Replace: true}, depth+1)
}

// recoverFallback routes a completely failed match to the error route
// (or default route). When even that route is missing the failure is
// surfaced as a notice and the UI is left where it was.
func (e *Engine) recoverFallback(ctx context.Context, target string, depth int) {
	e.metrics.recoveriesTotal.WithLabelValues("fallback").Inc()
	idx := e.matcher.Index()
	errorID := routeIDOr(idx, "")
	entry, ok := idx.ByID(errorID)
	if !ok {
		err := errors.New("W101").WithDetail("error route %q is not in the index", errorID)
		e.logger.Error("recovery has no landing route", "target", target, "error", err)
		e.present(notice.Notice{
			Level:   notice.LevelError,
			Title:   "Page not found",
			Message: err.Error(),
		})
		return
	}
	dest := "/" + strings.Join(entry.FullPath, "/")
	e.logger.Info("fallback recovery", "target", target, "dest", dest)
	e.present(notice.Notice{
		Level:       notice.LevelWarning,
		Title:       "Page not found",
		Message:     fmt.Sprintf("%q does not exist.", target),
		Suggestions: e.suggestions(target),
	})
	e.navigate(ctx, dest, NavigateOptions{Replace: true}, depth+1)
}

// suggestions returns up to MaxSuggestions registered paths that share
// a segment with the failed target, shortest path first.
func (e *Engine) suggestions(target string) []string {
	canon, _, _, err := router.CanonicalizePath(target)
	if err != nil {
		return nil
	}
	segs := strings.Split(strings.Trim(canon, "/"), "/")

	var out []string
	for _, key := range e.matcher.Index().PathKeys() {
		for _, seg := range segs {
			if seg == "" {
				continue
			}
			if strings.Contains(key, seg) || strings.Contains(seg, key) {
				out = append(out, "/"+key)
				break
			}
		}
		if len(out) >= e.config.MaxSuggestions {
			break
		}
	}
	return out
}

// checkAccess evaluates the route's (and modal's) access requirements
// against the injected security context. No security context means
// everything is allowed.
func (e *Engine) checkAccess(match *router.MatchResult) AccessDecision {
	if e.security == nil {
		return AccessDecision{Allowed: true}
	}
	if dec := e.checkNodeAccess(match.Route.Access, match.Route.ID); !dec.Allowed {
		return dec
	}
	if match.Modal != nil {
		if dec := e.checkNodeAccess(match.Modal.Access, match.Route.ID); !dec.Allowed {
			return dec
		}
	}
	return AccessDecision{Allowed: true}
}

func (e *Engine) checkNodeAccess(acc routecfg.Access, routeID string) AccessDecision {
	if acc.RequiresAuth && !e.security.IsAuthenticated() {
		return AccessDecision{Reason: "authentication required"}
	}
	if !acc.EnforcePermissions {
		return AccessDecision{Allowed: true}
	}
	if len(acc.PermissionsAllOf) > 0 {
		if dec := e.security.HasRouterPermission(acc.PermissionsAllOf, true, routeID); !dec.Allowed {
			return dec
		}
	}
	if len(acc.PermissionsAnyOf) > 0 {
		if dec := e.security.HasRouterPermission(acc.PermissionsAnyOf, false, routeID); !dec.Allowed {
			return dec
		}
	}
	return AccessDecision{Allowed: true}
}

// preserveQuery merges configured preserve-parameters from the current
// location into target when target does not set them.
func (e *Engine) preserveQuery(target string) string {
	cfg := e.matcher.Index().Config()
	if cfg == nil {
		return target
	}
	currentURL := e.hist.Current().URL
	if currentURL == "" {
		return target
	}
	_, currentRaw, _ := strings.Cut(currentURL, "?")
	if currentRaw == "" {
		return target
	}
	currentQ, err := url.ParseQuery(currentRaw)
	if err != nil {
		return target
	}

	path, targetRaw, _ := strings.Cut(target, "?")
	targetQ, err := url.ParseQuery(targetRaw)
	if err != nil {
		return target
	}

	changed := false
	for _, p := range cfg.PreserveParams() {
		if targetQ.Get(p) == "" && currentQ.Get(p) != "" {
			targetQ.Set(p, currentQ.Get(p))
			changed = true
		}
	}
	if !changed {
		return target
	}
	return path + "?" + targetQ.Encode()
}

// invokeCallback isolates one route-change callback.
func (e *Engine) invokeCallback(fn func(*router.MatchResult), match *router.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("route change callback panicked", "panic", r)
		}
	}()
	fn(match)
}

func (e *Engine) present(n notice.Notice) {
	e.mu.RLock()
	p := e.presenter
	e.mu.RUnlock()
	if p != nil {
		p.Show(n)
	}
}

func (e *Engine) defaultURL() string {
	idx := e.matcher.Index()
	if cfg := idx.Config(); cfg != nil {
		if entry, ok := idx.ByID(cfg.DefaultRouteID()); ok {
			return "/" + strings.Join(entry.FullPath, "/")
		}
	}
	return "/"
}

// routeIDOr resolves the recovery landing route id.
func routeIDOr(idx *router.Index, fallback string) string {
	if cfg := idx.Config(); cfg != nil {
		return cfg.ErrorRouteID()
	}
	if fallback != "" {
		return fallback
	}
	return "docs"
}

// pageTitle renders the route's title template, substituting
// "{{entity.<param>}}" placeholders with decoded captured values.
func pageTitle(match *router.MatchResult) string {
	tmpl := match.Route.Navigation.Title
	if tmpl == "" || !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	for k, v := range match.Params {
		decoded, err := url.PathUnescape(v)
		if err != nil {
			decoded = v
		}
		tmpl = strings.ReplaceAll(tmpl, "{{entity."+k+"}}", decoded)
	}
	return tmpl
}

func statusLabel(res Result) string {
	if res.Err == nil {
		return "success"
	}
	var ne *errors.NavError
	if stderrors.As(res.Err, &ne) {
		switch ne.Category {
		case errors.CategoryGuard, errors.CategoryAccess:
			return "denied"
		case errors.CategoryMatch:
			return "recovered"
		}
	}
	return "failed"
}

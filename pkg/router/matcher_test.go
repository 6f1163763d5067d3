package router

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/routecfg"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(testConfig())
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return m
}

func TestMatchDefaultRoute(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/")
	if !res.Success {
		t.Fatalf("Match(/) failed: %v", res.Err)
	}
	if res.Route.ID != "docs" {
		t.Errorf("Route.ID = %q, want %q", res.Route.ID, "docs")
	}
	if !res.IsDefault {
		t.Error("IsDefault = false, want true")
	}
	if got := res.Path(); got != "/docs" {
		t.Errorf("Path() = %q, want %q", got, "/docs")
	}
}

func TestMatchNestedRoute(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/corpus/browse")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.Route.ID != "browse" {
		t.Errorf("Route.ID = %q, want %q", res.Route.ID, "browse")
	}
	if !reflect.DeepEqual(res.FullPath, []string{"corpus", "browse"}) {
		t.Errorf("FullPath = %v, want [corpus browse]", res.FullPath)
	}
	if res.MatchedSegments != 2 || res.TotalSegments != 2 {
		t.Errorf("segments = %d/%d, want 2/2", res.MatchedSegments, res.TotalSegments)
	}
	if res.Partial {
		t.Error("Partial = true, want false")
	}
}

func TestMatchEntityID(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/docs/RFP-123")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.EntityID != "RFP-123" {
		t.Errorf("EntityID = %q, want %q", res.EntityID, "RFP-123")
	}
	if got := res.Param("entityId"); got != "RFP-123" {
		t.Errorf("Param(entityId) = %q, want %q", got, "RFP-123")
	}
	if res.MatchedSegments != 2 {
		t.Errorf("MatchedSegments = %d, want 2", res.MatchedSegments)
	}
}

func TestMatchEntityIDRejectedByPattern(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/docs/not-valid!")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.Route.ID != "docs" {
		t.Errorf("Route.ID = %q, want %q", res.Route.ID, "docs")
	}
	if res.EntityID != "" {
		t.Errorf("EntityID = %q, want empty", res.EntityID)
	}
	if res.MatchedSegments != 1 {
		t.Errorf("MatchedSegments = %d, want 1", res.MatchedSegments)
	}
	if !res.Partial {
		t.Error("Partial = false, want true")
	}
}

func TestMatchEncodedEntityIDStoredEncoded(t *testing.T) {
	cfg := testConfig()
	cfg.Routes[0].EntitySupport.Pattern = ""
	m, err := NewMatcher(cfg)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	res := m.Match("/docs/folder%2Ffile")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	// The decoded form passes the pattern, the stored value stays encoded.
	if res.EntityID != "folder%2Ffile" {
		t.Errorf("EntityID = %q, want %q", res.EntityID, "folder%2Ffile")
	}
}

func TestMatchConsolidatedModal(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/modals/login")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.ModalID != "login" {
		t.Errorf("ModalID = %q, want %q", res.ModalID, "login")
	}
	if res.EntityID != "" {
		t.Errorf("EntityID = %q, want empty", res.EntityID)
	}
	if got := res.Path(); got != "/modals/login" {
		t.Errorf("Path() = %q, want %q", got, "/modals/login")
	}
}

func TestMatchModalEntityParams(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/docs/share/DOC-1/readonly")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.ModalID != "share" {
		t.Errorf("ModalID = %q, want %q", res.ModalID, "share")
	}
	if got := res.Param("shareTarget"); got != "DOC-1" {
		t.Errorf("Param(shareTarget) = %q, want %q", got, "DOC-1")
	}
	if got := res.Param("shareMode"); got != "readonly" {
		t.Errorf("Param(shareMode) = %q, want %q", got, "readonly")
	}
	if res.SecondaryEntityID != "readonly" {
		t.Errorf("SecondaryEntityID = %q, want %q", res.SecondaryEntityID, "readonly")
	}
	if res.MatchedSegments != 4 {
		t.Errorf("MatchedSegments = %d, want 4", res.MatchedSegments)
	}
}

func TestMatchModalNotAccessibleFromUnrelatedRoute(t *testing.T) {
	m := newTestMatcher(t)

	// export is declared on corpus/browse only.
	res := m.Match("/docs/export")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.ModalID != "" {
		t.Errorf("ModalID = %q, want empty", res.ModalID)
	}
	if res.MatchedSegments != 1 {
		t.Errorf("MatchedSegments = %d, want 1", res.MatchedSegments)
	}
}

func TestMatchModalOnAncestorRoute(t *testing.T) {
	cfg := testConfig()
	cfg.Routes[1].Modals = []routecfg.ModalNode{{ID: "filters"}}
	m, err := NewMatcher(cfg)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	res := m.Match("/corpus/browse/filters")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.ModalID != "filters" {
		t.Errorf("ModalID = %q, want %q", res.ModalID, "filters")
	}
	if res.Route.ID != "browse" {
		t.Errorf("Route.ID = %q, want %q", res.Route.ID, "browse")
	}
}

func TestMatchNoRoute(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/nowhere/at/all")
	if res.Success {
		t.Fatal("expected failure")
	}
	if got := errCode(t, res.Err); got != "W100" {
		t.Errorf("code = %q, want W100", got)
	}
	if res.TotalSegments != 3 {
		t.Errorf("TotalSegments = %d, want 3", res.TotalSegments)
	}
}

func TestMatchEmptyConfig(t *testing.T) {
	m, err := NewMatcher(&routecfg.Config{})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	res := m.Match("/anything")
	if res.Success {
		t.Fatal("expected failure")
	}
	if got := errCode(t, res.Err); got != "W100" {
		t.Errorf("code = %q, want W100", got)
	}

	res = m.Match("/")
	if res.Success {
		t.Fatal("expected default-route failure")
	}
	if got := errCode(t, res.Err); got != "W101" {
		t.Errorf("code = %q, want W101", got)
	}
}

func TestMatchQueryParams(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("/corpus/browse?s=abc&key=k1&page=2")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	want := map[string]string{"s": "abc", "key": "k1", "page": "2"}
	if !reflect.DeepEqual(res.QueryParams, want) {
		t.Errorf("QueryParams = %v, want %v", res.QueryParams, want)
	}
}

func TestMatchCanonicalizesPath(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("corpus//browse/")
	if !res.Success {
		t.Fatalf("Match failed: %v", res.Err)
	}
	if res.Route.ID != "browse" {
		t.Errorf("Route.ID = %q, want %q", res.Route.ID, "browse")
	}

	res = m.Match(`/corpus\browse`)
	if res.Success {
		t.Error("backslash path should fail")
	}
}

func TestMatchIdempotent(t *testing.T) {
	m := newTestMatcher(t)

	a := m.Match("/docs/share/DOC-1/ro?s=x")
	b := m.Match("/docs/share/DOC-1/ro?s=x")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestBuildURLOrdinaryRoute(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.BuildURL("docs", URLOptions{EntityID: "RFP-123", ModalID: "share"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if got != "/docs/RFP-123/share" {
		t.Errorf("BuildURL = %q, want %q", got, "/docs/RFP-123/share")
	}
}

func TestBuildURLConsolidatedRouteOrder(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.BuildURL("modals", URLOptions{ModalID: "login"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if got != "/modals/login" {
		t.Errorf("BuildURL = %q, want %q", got, "/modals/login")
	}

	got, err = m.BuildURL("modals", URLOptions{ModalID: "share", EntityID: "DOC-9"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if got != "/modals/share/DOC-9" {
		t.Errorf("BuildURL = %q, want %q", got, "/modals/share/DOC-9")
	}
}

func TestBuildURLErrors(t *testing.T) {
	m := newTestMatcher(t)

	_, err := m.BuildURL("missing", URLOptions{})
	if err == nil || errCode(t, err) != "W102" {
		t.Errorf("unknown route: err = %v, want W102", err)
	}

	_, err = m.BuildURL("docs", URLOptions{ModalID: "login"})
	if err == nil || errCode(t, err) != "W103" {
		t.Errorf("undeclared modal: err = %v, want W103", err)
	}
}

func TestBuildURLDropsEntityWithoutSupport(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.BuildURL("browse", URLOptions{EntityID: "DOC-1"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if got != "/corpus/browse" {
		t.Errorf("BuildURL = %q, want %q", got, "/corpus/browse")
	}
}

func TestBuildURLPreservesQueryParams(t *testing.T) {
	m := newTestMatcher(t)

	current := url.Values{"s": {"abc"}, "key": {"k1"}, "page": {"2"}}
	got, err := m.BuildURL("docs", URLOptions{
		Query:        url.Values{"s": {"explicit"}},
		CurrentQuery: current,
	})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if got != "/docs?key=k1&s=explicit" {
		t.Errorf("BuildURL = %q, want %q", got, "/docs?key=k1&s=explicit")
	}
}

func TestBuildURLMatchRoundTrip(t *testing.T) {
	m := newTestMatcher(t)

	cases := []struct {
		routeID string
		opts    URLOptions
	}{
		{"docs", URLOptions{}},
		{"docs", URLOptions{EntityID: "RFP-123"}},
		{"docs", URLOptions{EntityID: "RFP-123", ModalID: "share"}},
		{"browse", URLOptions{}},
		{"modals", URLOptions{ModalID: "login"}},
	}
	for _, tc := range cases {
		built, err := m.BuildURL(tc.routeID, tc.opts)
		if err != nil {
			t.Fatalf("BuildURL(%s): %v", tc.routeID, err)
		}
		res := m.Match(built)
		if !res.Success {
			t.Fatalf("Match(%q) failed: %v", built, res.Err)
		}
		if res.Route.ID != tc.routeID {
			t.Errorf("Match(%q).Route.ID = %q, want %q", built, res.Route.ID, tc.routeID)
		}
		if res.EntityID != tc.opts.EntityID {
			t.Errorf("Match(%q).EntityID = %q, want %q", built, res.EntityID, tc.opts.EntityID)
		}
		if res.ModalID != tc.opts.ModalID {
			t.Errorf("Match(%q).ModalID = %q, want %q", built, res.ModalID, tc.opts.ModalID)
		}
	}
}

func TestRebuildSwapsIndex(t *testing.T) {
	m := newTestMatcher(t)

	cfg := testConfig()
	cfg.Routes = append(cfg.Routes, routecfg.RouteNode{ID: "extra", Path: "extra"})
	if err := m.Rebuild(cfg); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if res := m.Match("/extra"); !res.Success || res.Route.ID != "extra" {
		t.Errorf("Match(/extra) after rebuild = %+v", res)
	}

	bad := testConfig()
	bad.Routes = append(bad.Routes, routecfg.RouteNode{ID: "docs", Path: "dup"})
	if err := m.Rebuild(bad); err == nil {
		t.Fatal("Rebuild with duplicate id should fail")
	}
	// Old index survives a failed rebuild.
	if res := m.Match("/extra"); !res.Success {
		t.Error("previous index should still be active")
	}
}

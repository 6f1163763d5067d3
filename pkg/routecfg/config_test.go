package routecfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
version: 1.0.0
globalSettings:
  defaultRoute: docs
  errorRoute: docs
  preserveQueryParams: [s, key]
routes:
  - id: docs
    path: docs
    component: {type: view, factory: DocsView, module: docs}
    entitySupport:
      enabled: true
      paramName: entityId
      pattern: "^[A-Z]{3}-\\d{3,6}$"
    modals:
      - id: share
        component: {type: modal, factory: ShareModal, module: docs}
  - id: corpus
    path: corpus
    children:
      - id: browse
        path: browse
  - id: modals
    path: modals
    modals:
      - id: login
        component: {type: modal, factory: LoginModal, module: auth}
`

func TestParseSample(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1.0.0")
	}
	if len(cfg.Routes) != 3 {
		t.Fatalf("len(Routes) = %d, want 3", len(cfg.Routes))
	}
	docs := cfg.Routes[0]
	if !docs.EntitySupport.Enabled {
		t.Error("docs entitySupport should be enabled")
	}
	if docs.EntitySupport.Pattern != `^[A-Z]{3}-\d{3,6}$` {
		t.Errorf("pattern = %q", docs.EntitySupport.Pattern)
	}
	if len(cfg.Routes[1].Children) != 1 || cfg.Routes[1].Children[0].ID != "browse" {
		t.Error("corpus should have one child browse")
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse([]byte("routes: [")); err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GlobalSettings.DefaultRoute != "docs" {
		t.Errorf("DefaultRoute = %q", cfg.GlobalSettings.DefaultRoute)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromSourceDescribesSource(t *testing.T) {
	_, err := FromSource(context.Background(), badSource{})
	if err == nil {
		t.Fatal("expected error")
	}
}

type badSource struct{}

func (badSource) Fetch(context.Context) ([]byte, error) { return []byte(":"), nil }
func (badSource) Describe() string                      { return "test:bad" }

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.DefaultRouteID(); got != "docs" {
		t.Errorf("DefaultRouteID = %q, want %q", got, "docs")
	}
	if got := cfg.ErrorRouteID(); got != "docs" {
		t.Errorf("ErrorRouteID = %q, want %q", got, "docs")
	}
	params := cfg.PreserveParams()
	if len(params) != 2 || params[0] != "s" || params[1] != "key" {
		t.Errorf("PreserveParams = %v", params)
	}

	cfg.GlobalSettings.DefaultRoute = "home"
	if got := cfg.ErrorRouteID(); got != "home" {
		t.Errorf("ErrorRouteID should fall back to defaultRoute, got %q", got)
	}
	cfg.GlobalSettings.ErrorRoute = "error"
	if got := cfg.ErrorRouteID(); got != "error" {
		t.Errorf("ErrorRouteID = %q, want %q", got, "error")
	}
}

func TestEntitySupportDefaults(t *testing.T) {
	es := EntitySupport{Enabled: true}
	if got := es.EffectivePattern(); got != DefaultEntityPattern {
		t.Errorf("EffectivePattern = %q", got)
	}
	if got := es.EffectiveParamName(); got != "entityId" {
		t.Errorf("EffectiveParamName = %q", got)
	}

	es = EntitySupport{Enabled: true, ParamName: "docId", Pattern: `^\d+$`}
	if got := es.EffectiveParamName(); got != "docId" {
		t.Errorf("EffectiveParamName = %q", got)
	}
	if got := es.EffectivePattern(); got != `^\d+$` {
		t.Errorf("EffectivePattern = %q", got)
	}
}

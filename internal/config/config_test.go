package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDummyBuildCategories(t *testing.T) {
	tests := []struct {
		archetype  string
		talents    int
		attributes int
	}{
		{"Borge", 8, 9},
		{"Ozzy", 7, 8},
	}

	for _, tc := range tests {
		cfg, err := DummyBuild(tc.archetype)
		if err != nil {
			t.Fatalf("DummyBuild(%q) failed: %v", tc.archetype, err)
		}
		if len(cfg.Stats) != 9 {
			t.Errorf("%s: stats count = %d, want 9", tc.archetype, len(cfg.Stats))
		}
		if len(cfg.Talents) != tc.talents {
			t.Errorf("%s: talents count = %d, want %d", tc.archetype, len(cfg.Talents), tc.talents)
		}
		if len(cfg.Attributes) != tc.attributes {
			t.Errorf("%s: attributes count = %d, want %d", tc.archetype, len(cfg.Attributes), tc.attributes)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: dummy build should validate, got %v", tc.archetype, err)
		}
	}
}

func TestDummyBuildUnknownArchetype(t *testing.T) {
	if _, err := DummyBuild("Knuckles"); err == nil {
		t.Error("DummyBuild(Knuckles) should fail")
	}
}

func TestValidateMissingKey(t *testing.T) {
	cfg, _ := DummyBuild("Borge")
	delete(cfg.Talents, "fires_of_war")

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail with a missing talent")
	}
	var bce *BuildConfigError
	if !errors.As(err, &bce) {
		t.Fatalf("error type = %T, want *BuildConfigError", err)
	}
	if bce.Category != "talents" {
		t.Errorf("Category = %q, want talents", bce.Category)
	}
	if len(bce.Missing) != 1 || bce.Missing[0] != "fires_of_war" {
		t.Errorf("Missing = %v, want [fires_of_war]", bce.Missing)
	}
}

func TestValidateExtraKey(t *testing.T) {
	cfg, _ := DummyBuild("Ozzy")
	cfg.Attributes["explosive_punches"] = 3 // Borge attribute on an Ozzy build

	err := cfg.Validate()
	var bce *BuildConfigError
	if !errors.As(err, &bce) {
		t.Fatalf("error type = %T, want *BuildConfigError", err)
	}
	if bce.Category != "attributes" {
		t.Errorf("Category = %q, want attributes", bce.Category)
	}
	if len(bce.Extra) != 1 || bce.Extra[0] != "explosive_punches" {
		t.Errorf("Extra = %v, want [explosive_punches]", bce.Extra)
	}
}

func TestValidateReportsBothDirections(t *testing.T) {
	cfg, _ := DummyBuild("Borge")
	delete(cfg.Stats, "speed")
	cfg.Stats["haste"] = 5

	err := cfg.Validate()
	var bce *BuildConfigError
	if !errors.As(err, &bce) {
		t.Fatalf("error type = %T, want *BuildConfigError", err)
	}
	if len(bce.Missing) != 1 || len(bce.Extra) != 1 {
		t.Errorf("Missing = %v, Extra = %v, want one of each", bce.Missing, bce.Extra)
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_ozzy.yaml")
	if err := Dump(path, "Ozzy"); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Meta.Hunter != "Ozzy" {
		t.Errorf("Hunter = %q, want Ozzy", cfg.Meta.Hunter)
	}
	if _, ok := cfg.Talents["dance_of_dashes"]; !ok {
		t.Error("round-tripped build lost dance_of_dashes")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("meta: [not a mapping")); err == nil {
		t.Error("Parse should fail on malformed YAML")
	}
}

func TestParseAcceptsJSON(t *testing.T) {
	// The YAML parser accepts JSON, which the HTTP API relies on.
	data := []byte(`{"meta": {"hunter": "Borge"}}`)
	_, err := Parse(data)
	// JSON decodes fine but fails validation (all categories missing).
	var bce *BuildConfigError
	if !errors.As(err, &bce) {
		t.Errorf("error type = %T, want *BuildConfigError", err)
	}
}

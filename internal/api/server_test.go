package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lawnchairsociety/huntersim/internal/config"
	"github.com/lawnchairsociety/huntersim/internal/montecarlo"
)

// buildJSON renders a build config as the lowercase-keyed JSON body the API
// expects.
func buildJSON(t *testing.T, cfg *config.BuildConfig) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"meta":         map[string]any{"hunter": cfg.Meta.Hunter, "level": cfg.Meta.Level},
		"stats":        cfg.Stats,
		"talents":      cfg.Talents,
		"attributes":   cfg.Attributes,
		"inscriptions": cfg.Inscriptions,
		"mods":         cfg.Mods,
		"relics":       cfg.Relics,
		"gems":         cfg.Gems,
	})
	if err != nil {
		t.Fatalf("encoding build failed: %v", err)
	}
	return data
}

func testBuildJSON(t *testing.T) json.RawMessage {
	t.Helper()
	cfg, err := config.DummyBuild("Borge")
	if err != nil {
		t.Fatalf("DummyBuild failed: %v", err)
	}
	cfg.Stats["hp"] = 10
	cfg.Stats["power"] = 10
	return buildJSON(t, cfg)
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(Options{})
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestHandleRun(t *testing.T) {
	s := NewServer(Options{})

	reqBody, _ := json.Marshal(map[string]any{
		"build":      json.RawMessage(testBuildJSON(t)),
		"iterations": 3,
		"seed":       42,
	})
	rec := httptest.NewRecorder()
	s.handleRun(rec, httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(reqBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Summary montecarlo.Summary `json:"summary"`
		Seed    int64              `json:"seed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Summary.Iterations != 3 {
		t.Errorf("iterations = %d, want 3", body.Summary.Iterations)
	}
	if body.Seed != 42 {
		t.Errorf("seed = %d, want 42", body.Seed)
	}
	if _, ok := body.Summary.Fields["final_stage"]; !ok {
		t.Error("summary missing final_stage")
	}
}

func TestHandleRunRejectsGet(t *testing.T) {
	s := NewServer(Options{})
	rec := httptest.NewRecorder()
	s.handleRun(rec, httptest.NewRequest(http.MethodGet, "/run", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleRunRejectsInvalidBuild(t *testing.T) {
	s := NewServer(Options{})

	reqBody, _ := json.Marshal(map[string]any{
		"build":      map[string]any{"meta": map[string]any{"hunter": "Borge"}},
		"iterations": 1,
	})
	rec := httptest.NewRecorder()
	s.handleRun(rec, httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(reqBody)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a build missing categories", rec.Code)
	}
}

func TestHandleRunSaveWithoutStore(t *testing.T) {
	s := NewServer(Options{})

	reqBody, _ := json.Marshal(map[string]any{
		"build":      json.RawMessage(testBuildJSON(t)),
		"iterations": 1,
		"save":       true,
	})
	rec := httptest.NewRecorder()
	s.handleRun(rec, httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(reqBody)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when saving with no store", rec.Code)
	}
}

func TestHandleCompareRejectsMixedHunters(t *testing.T) {
	s := NewServer(Options{})

	borge, _ := config.DummyBuild("Borge")
	ozzy, _ := config.DummyBuild("Ozzy")
	reqBody, _ := json.Marshal(map[string]any{
		"build":      json.RawMessage(buildJSON(t, borge)),
		"compare":    json.RawMessage(buildJSON(t, ozzy)),
		"iterations": 1,
	})
	rec := httptest.NewRecorder()
	s.handleCompare(rec, httptest.NewRequest(http.MethodPost, "/compare", bytes.NewReader(reqBody)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for mixed hunters", rec.Code)
	}
}

func TestHandleCompare(t *testing.T) {
	s := NewServer(Options{})

	reqBody, _ := json.Marshal(map[string]any{
		"build":      json.RawMessage(testBuildJSON(t)),
		"compare":    json.RawMessage(testBuildJSON(t)),
		"iterations": 2,
		"seed":       7,
	})
	rec := httptest.NewRecorder()
	s.handleCompare(rec, httptest.NewRequest(http.MethodPost, "/compare", bytes.NewReader(reqBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var cmp montecarlo.Comparison
	if err := json.Unmarshal(rec.Body.Bytes(), &cmp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	// Identical builds with identical seeds produce zero deltas.
	if d := cmp.Fields["kills"]; d.Delta != 0 {
		t.Errorf("kills delta = %v, want 0 for identical builds and seeds", d.Delta)
	}
}

func TestPrepareClampsIterations(t *testing.T) {
	s := NewServer(Options{MaxIterations: 5, MaxWorkers: 2})

	_, cfg, err := s.prepare(testBuildJSON(t), 1000, 100, 1)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if cfg.Iterations != 5 {
		t.Errorf("iterations = %d, want clamp to 5", cfg.Iterations)
	}
	if cfg.Workers != 2 {
		t.Errorf("workers = %d, want clamp to 2", cfg.Workers)
	}
}

func TestPrepareRequiresBuild(t *testing.T) {
	s := NewServer(Options{})
	if _, _, err := s.prepare(nil, 1, 0, 1); err == nil {
		t.Error("prepare without a build should fail")
	}
}

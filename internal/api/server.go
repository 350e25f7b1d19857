// Package api exposes the simulator over HTTP: one-shot batch endpoints
// returning reduced statistics, and a WebSocket endpoint that streams
// per-run records as they complete.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lawnchairsociety/huntersim/internal/config"
	"github.com/lawnchairsociety/huntersim/internal/database"
	"github.com/lawnchairsociety/huntersim/internal/logger"
	"github.com/lawnchairsociety/huntersim/internal/montecarlo"
	"github.com/lawnchairsociety/huntersim/internal/sim"
)

// Server handles simulation requests. The db is optional; without it the
// history endpoints return 503 and batches are not recorded.
type Server struct {
	db         *database.Database
	maxIter    int
	maxWorkers int
}

// Options configures a Server.
type Options struct {
	// DB is the optional batch history store.
	DB *database.Database

	// MaxIterations caps per-request batch size. Zero means the default
	// cap of 10000.
	MaxIterations int

	// MaxWorkers caps per-request parallelism. Zero means the default
	// cap of 16.
	MaxWorkers int
}

// NewServer creates a Server with the given options.
func NewServer(opts Options) *Server {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 10000
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 16
	}
	return &Server{
		db:         opts.DB,
		maxIter:    opts.MaxIterations,
		maxWorkers: opts.MaxWorkers,
	}
}

// Start registers the handlers and serves on the given address.
func (s *Server) Start(address string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/run", s.handleRun)
	mux.HandleFunc("/compare", s.handleCompare)
	mux.HandleFunc("/history", s.handleHistory)
	mux.HandleFunc("/ws/run", s.handleRunStream)

	logger.Info("API server listening", "address", address)
	return http.ListenAndServe(address, mux)
}

// runRequest is the common batch request body. Build is the build config
// in JSON form; it is decoded by the YAML parser, which accepts JSON.
type runRequest struct {
	Build      json.RawMessage `json:"build"`
	Iterations int             `json:"iterations"`
	Workers    int             `json:"workers"`
	Seed       int64           `json:"seed"`
	Save       bool            `json:"save"`
}

type compareRequest struct {
	Build      json.RawMessage `json:"build"`
	Compare    json.RawMessage `json:"compare"`
	Iterations int             `json:"iterations"`
	Workers    int             `json:"workers"`
	Seed       int64           `json:"seed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST required"))
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	build, mcCfg, err := s.prepare(req.Build, req.Iterations, req.Workers, req.Seed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results, err := montecarlo.RunMany(build, mcCfg, logger.Discard())
	if err != nil {
		logger.Error("batch failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	summary := montecarlo.Reduce(results)

	var batchID int64
	if req.Save {
		if s.db == nil {
			writeError(w, http.StatusServiceUnavailable, fmt.Errorf("history store not configured"))
			return
		}
		batchID, err = s.db.SaveBatch(build.Meta.Hunter, mcCfg.Seed, summary)
		if err != nil {
			logger.Error("saving batch failed", "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	logger.Info("batch completed", "hunter", build.Meta.Hunter, "iterations", mcCfg.Iterations)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":  summary,
		"seed":     mcCfg.Seed,
		"batch_id": batchID,
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST required"))
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	buildA, mcCfg, err := s.prepare(req.Build, req.Iterations, req.Workers, req.Seed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	buildB, err := config.Parse(req.Compare)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if buildA.Meta.Hunter != buildB.Meta.Hunter {
		writeError(w, http.StatusBadRequest, fmt.Errorf("cannot compare different hunters: %s vs %s",
			buildA.Meta.Hunter, buildB.Meta.Hunter))
		return
	}

	resultsA, err := montecarlo.RunMany(buildA, mcCfg, logger.Discard())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resultsB, err := montecarlo.RunMany(buildB, mcCfg, logger.Discard())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, montecarlo.Compare(resultsA, resultsB))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("history store not configured"))
		return
	}
	batches, err := s.db.ListBatches(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

// prepare decodes and validates a build and clamps batch parameters to the
// server's caps.
func (s *Server) prepare(rawBuild json.RawMessage, iterations, workers int, seed int64) (*config.BuildConfig, montecarlo.Config, error) {
	if len(rawBuild) == 0 {
		return nil, montecarlo.Config{}, fmt.Errorf("build is required")
	}
	build, err := config.Parse(rawBuild)
	if err != nil {
		return nil, montecarlo.Config{}, err
	}

	if iterations <= 0 {
		iterations = 100
	}
	if iterations > s.maxIter {
		iterations = s.maxIter
	}
	if workers > s.maxWorkers {
		workers = s.maxWorkers
	}
	if seed == 0 {
		seed = randomSeed()
	}

	return build, montecarlo.Config{
		Iterations: iterations,
		Workers:    workers,
		Seed:       seed,
		Options:    sim.DefaultOptions(),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

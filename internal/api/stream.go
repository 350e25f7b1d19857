package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/huntersim/internal/combat"
	"github.com/lawnchairsociety/huntersim/internal/logger"
	"github.com/lawnchairsociety/huntersim/internal/montecarlo"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// The API is meant to sit behind a reverse proxy that enforces
		// origin policy.
		return true
	},
}

// streamMessage is one WebSocket frame of a streamed batch. Exactly one of
// Result, Summary and Error is set.
type streamMessage struct {
	Run     int                 `json:"run,omitempty"`
	Result  *combat.Result      `json:"result,omitempty"`
	Summary *montecarlo.Summary `json:"summary,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// handleRunStream upgrades to WebSocket, reads a single batch request, then
// streams one frame per completed run followed by a summary frame. Runs are
// executed sequentially so frames arrive in run order.
func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	_, message, err := conn.ReadMessage()
	if err != nil {
		logger.Warning("WebSocket read failed", "error", err)
		return
	}

	var req runRequest
	if err := json.Unmarshal(message, &req); err != nil {
		writeStreamError(conn, "decoding request: "+err.Error())
		return
	}

	build, mcCfg, err := s.prepare(req.Build, req.Iterations, req.Workers, req.Seed)
	if err != nil {
		writeStreamError(conn, err.Error())
		return
	}

	results := make([]combat.Result, 0, mcCfg.Iterations)
	for i := 0; i < mcCfg.Iterations; i++ {
		res, err := montecarlo.RunOne(build, mcCfg.Seed+int64(i), logger.Discard(), mcCfg.Options)
		if err != nil {
			writeStreamError(conn, err.Error())
			return
		}
		results = append(results, res)

		if err := conn.WriteJSON(streamMessage{Run: i, Result: &res}); err != nil {
			logger.Warning("WebSocket write failed, client gone", "run", i, "error", err)
			return
		}
	}

	summary := montecarlo.Reduce(results)
	if err := conn.WriteJSON(streamMessage{Summary: &summary}); err != nil {
		logger.Warning("WebSocket summary write failed", "error", err)
	}
}

func writeStreamError(conn *websocket.Conn, msg string) {
	if err := conn.WriteJSON(streamMessage{Error: msg}); err != nil {
		logger.Warning("WebSocket error write failed", "error", err)
	}
}

func randomSeed() int64 {
	return rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
}

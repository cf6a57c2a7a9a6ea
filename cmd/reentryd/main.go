package main

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	reentry "github.com/JMMonte/reentry-core"
)

func main() {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "app", "reentryd")

	cfg, err := reentry.LoadConfig()
	if err != nil {
		logger.Log("level", "critical", "err", err)
		os.Exit(1)
	}
	engine := reentry.New(cfg, logger)
	if err := engine.Initialize(); err != nil {
		logger.Log("level", "critical", "err", err)
		os.Exit(1)
	}

	s := &server{
		engine: engine,
		cfg:    cfg,
		logger: logger,
		hub:    newHub(logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.Handle("/metrics", reentry.MetricsHandler())
	r.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/satellites", s.handleAddSatellite).Methods(http.MethodPost)
	r.HandleFunc("/satellites/{id}", s.handleRemoveSatellite).Methods(http.MethodDelete)
	r.HandleFunc("/ws", s.handleWS)

	go s.stepLoop()

	logger.Log("level", "info", "listening", cfg.ListenAddr, "step(s)", cfg.StepSeconds, "warp", cfg.TimeWarp)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		logger.Log("level", "critical", "err", err)
		os.Exit(1)
	}
}

type server struct {
	engine   *reentry.Engine
	cfg      reentry.Config
	logger   kitlog.Logger
	hub      *hub
	upgrader websocket.Upgrader
}

// stepLoop advances the engine once per wall-clock second. The warp factor
// scales how much simulated time passes per tick; the dt handed to the engine
// is plain simulated seconds.
func (s *server) stepLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		dt := s.cfg.StepSeconds * s.cfg.TimeWarp
		if err := s.engine.Step(dt); err != nil {
			s.logger.Log("level", "warning", "step", "failed", "err", err)
			continue
		}
		snap, err := s.engine.State()
		if err != nil {
			continue
		}
		s.hub.broadcast(reentry.TelemetryFrames(snap, s.cfg.TimeWarp))
	}
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.State()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// addRequest either carries a full state-vector spec or a TLE to be evaluated
// at the current simulated epoch.
type addRequest struct {
	reentry.SatelliteSpec
	Line1 string `json:"line1,omitempty"`
	Line2 string `json:"line2,omitempty"`
}

func (s *server) handleAddSatellite(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spec := req.SatelliteSpec
	if req.Line1 != "" || req.Line2 != "" {
		epoch := s.engine.Epoch()
		var err error
		spec, err = reentry.SatelliteSpecFromTLE(req.ID, req.Line1, req.Line2, reentry.SpecEpoch{
			Year: epoch.Year(), Month: int(epoch.Month()), Day: epoch.Day(),
			Hour: epoch.Hour(), Minute: epoch.Minute(), Second: epoch.Second(),
		}, req.Mass, req.Area, req.DragCoeff)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := s.engine.AddSatellite(spec); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleRemoveSatellite(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.RemoveSatellite(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.hub.add(conn)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	switch err.(type) {
	case reentry.DuplicateIDError:
		code = http.StatusConflict
	case reentry.UnknownSatelliteError, reentry.UnknownBodyError:
		code = http.StatusNotFound
	case reentry.StepInProgressError:
		code = http.StatusServiceUnavailable
	case reentry.NotInitializedError:
		code = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), code)
}

// hub fans telemetry frames out to every connected websocket client. Clients
// that fail a write are dropped.
type hub struct {
	logger  kitlog.Logger
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newHub(logger kitlog.Logger) *hub {
	return &hub{logger: logger, clients: make(map[*websocket.Conn]struct{})}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *hub) broadcast(frames [][]byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				conn.Close()
				delete(h.clients, conn)
				h.logger.Log("level", "info", "ws", "client dropped", "err", err)
				break
			}
		}
	}
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"

	"github.com/sanonone/kektorpath/pkg/core/pather"
	"github.com/sanonone/kektorpath/pkg/engine"
)

// maxBodyBytes bounds request bodies; every request here is a few numbers.
const maxBodyBytes = 1 << 16

// registerHTTPHandlers sets up the REST routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /path", s.handlePath)
	mux.HandleFunc("POST /near", s.handleNear)
	mux.HandleFunc("PUT /doors", s.handleDoors)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /map", s.handleMap)

	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	res, err := s.Engine.FindPath(req.From.Cell(), req.To.Cell())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, newPathResponse(res))
}

func (s *Server) handleNear(w http.ResponseWriter, r *http.Request) {
	var req NearRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	near, err := s.Engine.Near(req.From.Cell(), req.MaxCost)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out := NearResponse{Cells: make([]NearCell, len(near))}
	for i, n := range near {
		out.Cells[i] = NearCell{Cell: pointOf(n.Cell), Cost: n.Cost}
	}
	s.writeHTTPResponse(w, http.StatusOK, out)
}

func (s *Server) handleDoors(w http.ResponseWriter, r *http.Request) {
	var req DoorsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.Engine.SetDoors(req.Open)
	s.writeHTTPResponse(w, http.StatusOK, DoorsResponse{DoorsOpen: s.Engine.DoorsOpen()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.Engine.Reset()
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, newStatsResponse(s.Engine.Stats()))
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	st := s.Engine.Stats()
	s.writeHTTPResponse(w, http.StatusOK, MapResponse{
		Map:       s.Engine.Render(nil),
		Width:     st.Width,
		Height:    st.Height,
		DoorsOpen: st.DoorsOpen,
	})
}

// decodeBody reads a JSON body into v, answering 400 on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// writeEngineError maps engine and solver errors to status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrOutOfBounds), errors.Is(err, engine.ErrBlocked):
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, pather.ErrPoolExhausted):
		s.writeHTTPError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.writeHTTPError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, map[string]string{"error": message})
}

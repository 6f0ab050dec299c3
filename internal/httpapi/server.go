package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/service"
	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/types"
)

type Dependencies struct {
	Logger    *log.Logger
	Addr      string
	Access    *service.AccessService
	Reporting *service.ReportingService
}

type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	mux        *http.ServeMux
	access     *service.AccessService
	reporting  *service.ReportingService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:    d.Logger,
		mux:       mux,
		access:    d.Access,
		reporting: d.Reporting,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/access", s.handleAccess)
	mux.HandleFunc("GET /employees", s.handleEmployees)
	mux.HandleFunc("GET /logs", s.handleLogs)
	mux.HandleFunc("GET /access-history", s.handleAccessHistory)

	handler := requestIDMiddleware(loggingMiddleware(d.Logger, mux))

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "RFID Access Gateway",
		"endpoints": map[string]any{
			"check_access":   map[string]string{"method": "POST", "path": "/api/access"},
			"employees":      map[string]string{"method": "GET", "path": "/employees"},
			"logs":           map[string]string{"method": "GET", "path": "/logs"},
			"access_history": map[string]string{"method": "GET", "path": "/access-history"},
		},
	})
}

func (s *Server) handleAccess(w http.ResponseWriter, r *http.Request) {
	var req types.AccessRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	decision, err := s.access.Decide(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedEvent):
			writeError(w, http.StatusBadRequest, "malformed_event", err.Error())
		case errors.Is(err, service.ErrUnknownTurnstile):
			writeError(w, http.StatusBadRequest, "unknown_turnstile", err.Error())
		case errors.Is(err, service.ErrStorage):
			// Generic message, no partial data: the decision was not durably
			// recorded and must not leak to the caller.
			s.logger.Printf("access error: %v", err)
			writeError(w, http.StatusInternalServerError, "storage_failure", "unexpected server error")
		default:
			s.logger.Printf("access error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	if !decision.Granted {
		s.logger.Printf("access denied: %s", decision.Reason)
		writeJSON(w, http.StatusForbidden, deniedResponse(decision))
		return
	}

	s.logger.Printf("access granted: %s (badge %s) | turnstile %s | %s",
		decision.Employee.FullName, decision.Employee.BadgeCode,
		decision.Turnstile.Name, decision.Direction)
	writeJSON(w, http.StatusOK, grantedResponse(decision))
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.reporting.Employees(r.Context())
	if err != nil {
		s.logger.Printf("employees error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_failure", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, employeeList(employees))
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r, service.DefaultRecentLimit)
	if !ok {
		return
	}

	records, err := s.reporting.RecentRecords(r.Context(), limit)
	if err != nil {
		s.logger.Printf("logs error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_failure", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, logList(records))
}

func (s *Server) handleAccessHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r, 10)
	if !ok {
		return
	}

	records, err := s.reporting.RecentRecords(r.Context(), limit)
	if err != nil {
		s.logger.Printf("access-history error: %v", err)
		writeError(w, http.StatusInternalServerError, "storage_failure", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, historyList(records))
}

// limitParam parses the optional ?limit= query parameter. On a malformed
// value it writes a 400 and returns ok=false.
func limitParam(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
		return 0, false
	}
	return n, true
}

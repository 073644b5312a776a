package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps core error kinds to HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDestination):
		writeError(w, r, http.StatusNotFound, "invalid destination")
	case errors.Is(err, domain.ErrUnknownLocation):
		writeError(w, r, http.StatusNotFound, "unknown location")
	case errors.Is(err, domain.ErrInvalidStrategy):
		writeError(w, r, http.StatusBadRequest, "strategy must be bfs or dfs")
	default:
		log.Printf("request failed: req_id=%s path=%s err=%v", obs.RequestID(r.Context()), r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

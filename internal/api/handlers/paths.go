package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"proximity-route-service/internal/api/dto"
	"proximity-route-service/internal/ports"
	"proximity-route-service/internal/search"
)

const maxBatchDestinations = 100

type PathHandler struct {
	Finder ports.PathFinder
	// DefaultOrigin fills "from" in responses when the query omits it.
	DefaultOrigin string
}

// Find answers GET /paths?to=X[&from=Y][&strategy=bfs|dfs].
// An unreachable destination is a 200 with found=false.
func (h *PathHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	query := ports.PathQuery{
		From:     q.Get("from"),
		To:       q.Get("to"),
		Strategy: q.Get("strategy"),
	}
	if strings.TrimSpace(query.To) == "" {
		writeError(w, r, http.StatusBadRequest, "to is required")
		return
	}

	res, err := h.Finder.Find(r.Context(), query)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.toResponse(query.From, query.To, res))
}

// Batch answers POST /paths/batch, searching every destination concurrently.
func (h *PathHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BatchPathRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.To) == 0 {
		writeError(w, r, http.StatusBadRequest, "to must list at least one destination")
		return
	}
	if len(req.To) > maxBatchDestinations {
		writeError(w, r, http.StatusBadRequest, "too many destinations")
		return
	}
	for _, to := range req.To {
		if strings.TrimSpace(to) == "" {
			writeError(w, r, http.StatusBadRequest, "to entries must not be blank")
			return
		}
	}

	results, err := h.Finder.FindMany(r.Context(), req.From, req.Strategy, req.To)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.BatchPathResponse{Results: make([]dto.PathResponse, 0, len(results))}
	for i, sr := range results {
		res.Results = append(res.Results, h.toResponse(req.From, req.To[i], sr))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PathHandler) toResponse(from, to string, res search.Result) dto.PathResponse {
	from = strings.TrimSpace(from)
	if from == "" {
		from = h.DefaultOrigin
	}

	path := res.Path
	if path == nil {
		path = []string{}
	}

	return dto.PathResponse{
		From:     from,
		To:       strings.TrimSpace(to),
		Strategy: strings.ToLower(res.Strategy.String()),
		Found:    res.Found,
		Path:     path,
		Steps:    res.Len(),
		Summary:  res.Summary(),
	}
}

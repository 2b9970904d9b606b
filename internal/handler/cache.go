package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/actuallystonmai/film-recommender/internal/domain"
)

// GET /cache/{key}
func (h *Handler) GetCacheEntry(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	payload, ok := h.service.CacheGet(key)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "No fresh cache entry for "+key)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// PUT /cache/{key}
func (h *Handler) PutCacheEntry(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Cache key must not be empty")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid_body", "Cache payload must be valid JSON")
		return
	}

	if err := h.service.CachePut(r.Context(), key, body); err != nil {
		if errors.Is(err, domain.ErrCacheClosed) {
			writeError(w, http.StatusServiceUnavailable, "cache_closed", "Cache is shutting down")
			return
		}
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /cache/sweep
func (h *Handler) SweepCache(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.CacheSweep(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SweepResponse{Removed: removed})
}

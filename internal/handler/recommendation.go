package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/actuallystonmai/film-recommender/internal/domain"
	"github.com/actuallystonmai/film-recommender/internal/logging"
	"github.com/actuallystonmai/film-recommender/internal/service"
)

// POST /recommendations
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	// Parse and validate limit
	limit := service.DefaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > service.MaxLimit {
			writeError(w, http.StatusBadRequest, "invalid_parameter",
				fmt.Sprintf("limit must be an integer between 1 and %d", service.MaxLimit))
			return
		}
		limit = parsed
	}

	var stats domain.RawStats
	if err := decodeBody(w, r, &stats); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be a JSON stats object")
		return
	}

	result, err := h.service.Recommend(r.Context(), stats, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeServiceError(w http.ResponseWriter, err error) {
	code, msg := service.CategorizeError(err)
	status := http.StatusInternalServerError
	switch code {
	case "catalog_not_ready", "timeout":
		status = http.StatusServiceUnavailable
	default:
		logging.Error().Err(err).Msg("request failed")
	}
	writeError(w, status, code, msg)
}

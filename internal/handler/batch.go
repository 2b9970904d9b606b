package handler

import (
	"fmt"
	"net/http"

	"github.com/actuallystonmai/film-recommender/internal/service"
)

// POST /recommendations/batch
func (h *Handler) PostBatchRecommendations(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be {\"requests\": [...]}")
		return
	}

	if len(req.Requests) == 0 || len(req.Requests) > service.MaxBatchSize {
		writeError(w, http.StatusBadRequest, "invalid_parameter",
			fmt.Sprintf("requests must hold between 1 and %d entries", service.MaxBatchSize))
		return
	}
	for i, entry := range req.Requests {
		if entry.Limit < 0 || entry.Limit > service.MaxLimit {
			writeError(w, http.StatusBadRequest, "invalid_parameter",
				fmt.Sprintf("requests[%d].limit must be between 0 and %d", i, service.MaxLimit))
			return
		}
	}

	writeJSON(w, http.StatusOK, h.service.RecommendBatch(r.Context(), req.Requests))
}

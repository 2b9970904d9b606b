package handler

import (
	"net/http"
	"time"
)

// GET /catalog/stats
func (h *Handler) GetCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CatalogStats()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// POST /catalog/reload
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "catalog_source_error", "Catalog source failed, current catalog kept")
		return
	}

	resp := ReloadResponse{
		Total:    report.Total,
		Accepted: report.Accepted,
		Rejected: make([]RejectedRecord, 0, len(report.Rejected)),
		UsedSeed: report.UsedSeed,
	}
	for _, v := range report.Rejected {
		resp.Rejected = append(resp.Rejected, RejectedRecord{
			Index:      v.Index,
			ExternalID: v.ExternalID,
			Title:      v.Title,
			Field:      v.Field,
			Reason:     v.Reason,
		})
	}
	if idx := h.service.Catalog(); idx != nil {
		resp.CatalogAt = idx.BuiltAt().Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}

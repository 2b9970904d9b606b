package handler

import "github.com/actuallystonmai/film-recommender/internal/domain"

type BatchRequest struct {
	Requests []domain.BatchRequest `json:"requests"`
}

type ReloadResponse struct {
	Total     int              `json:"total"`
	Accepted  int              `json:"accepted"`
	Rejected  []RejectedRecord `json:"rejected"`
	UsedSeed  bool             `json:"used_seed"`
	CatalogAt string           `json:"catalog_built_at"`
}

type RejectedRecord struct {
	Index      int    `json:"index"`
	ExternalID string `json:"external_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Field      string `json:"field"`
	Reason     string `json:"reason"`
}

type SweepResponse struct {
	Removed int `json:"removed"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

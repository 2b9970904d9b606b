package domain

type Recommendation struct {
	Film              FilmRecord         `json:"film"`
	AggregateScore    float64            `json:"aggregate_score"`
	PerStrategyScores map[string]float64 `json:"per_strategy_scores"`
	Reasons           []string           `json:"reasons"`
}

// Reason codes attached to an empty result.
const (
	ReasonNoCandidates = "no_candidates"
	ReasonAllWatched   = "all_watched"
)

type RecommendationResult struct {
	Recommendations   []Recommendation
	ReasonCode        string
	ActiveWeights     map[string]float64
	Starved           []string
	ProfileIncomplete bool
}

type RecommendationMeta struct {
	RequestID         string             `json:"request_id"`
	GeneratedAt       string             `json:"generated_at"`
	TotalCount        int                `json:"total_count"`
	CatalogSize       int                `json:"catalog_size"`
	ReasonCode        string             `json:"reason_code,omitempty"`
	ActiveWeights     map[string]float64 `json:"active_weights"`
	Starved           []string           `json:"starved_strategies,omitempty"`
	ProfileIncomplete bool               `json:"profile_incomplete"`
}

type RecommendationResponse struct {
	Recommendations []Recommendation   `json:"recommendations"`
	Metadata        RecommendationMeta `json:"metadata"`
}

// BatchRequest is one profile in a batch call. Limit 0 means the default.
type BatchRequest struct {
	Stats RawStats `json:"stats"`
	Limit int      `json:"limit"`
}

type BatchUserResult struct {
	Username        string           `json:"username"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	ReasonCode      string           `json:"reason_code,omitempty"`
	Status          string           `json:"status"`
	Error           string           `json:"error,omitempty"`
	Message         string           `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Results  []BatchUserResult `json:"results"`
	Summary  BatchSummary      `json:"summary"`
	Metadata BatchMeta         `json:"metadata"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

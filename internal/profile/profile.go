// Package profile turns the stats collaborator's raw counts into the
// normalized UserProfile the engine scores against.
package profile

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/film-recommender/internal/domain"
)

// Rating tendency cutoffs on the 0.5-5 star scale.
const (
	HighRatingMin = 4.0
	LowRatingMax  = 2.5
	GenerousShare = 0.40
	CriticalShare = 0.30
)

// Build normalizes raw into a profile. Missing or malformed parts are
// dropped, never rejected: a partial profile still produces recommendations.
//
//nolint:gocritic // zerolog.Logger is passed by value
func Build(raw domain.RawStats, logger zerolog.Logger) *domain.UserProfile {
	p := &domain.UserProfile{
		Username:        raw.Username,
		TotalFilms:      max(raw.TotalFilms, 0),
		AverageRating:   raw.AverageRating,
		GenreWeights:    Normalize(raw.TopGenres),
		DirectorWeights: Normalize(raw.TopDirectors),
		DecadeWeights:   normalizeDecades(raw.TopDecades, logger),
		RatingTendency:  RatingTendency(raw.RatingDistribution),
		WatchedIDs:      make(map[string]struct{}, len(raw.WatchedIDs)),
		Incomplete:      raw.Incomplete,
	}
	for _, id := range raw.WatchedIDs {
		if id = strings.TrimSpace(id); id != "" {
			p.WatchedIDs[id] = struct{}{}
		}
	}
	return p
}

// Normalize converts counts to frequencies summing to 1. Blank keys and
// non-positive counts are ignored.
func Normalize(counts map[string]int) map[string]float64 {
	total := 0
	for k, c := range counts {
		if strings.TrimSpace(k) != "" && c > 0 {
			total += c
		}
	}

	weights := make(map[string]float64, len(counts))
	if total == 0 {
		return weights
	}
	for k, c := range counts {
		k = strings.TrimSpace(k)
		if k == "" || c <= 0 {
			continue
		}
		weights[k] += float64(c) / float64(total)
	}
	return weights
}

func normalizeDecades(counts map[string]int, logger zerolog.Logger) map[int]float64 {
	byDecade := make(map[int]int, len(counts))
	for k, c := range counts {
		decade, ok := ParseDecade(k)
		if !ok {
			logger.Debug().Str("decade", k).Msg("ignoring unparseable decade")
			continue
		}
		if c > 0 {
			byDecade[decade] += c
		}
	}

	total := 0
	for _, c := range byDecade {
		total += c
	}
	weights := make(map[int]float64, len(byDecade))
	for d, c := range byDecade {
		weights[d] = float64(c) / float64(total)
	}
	return weights
}

// ParseDecade accepts "1990", "1990s" and "1994"; the result is rounded down
// to the decade.
func ParseDecade(s string) (int, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "s")
	year, err := strconv.Atoi(s)
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return domain.DecadeOf(year), true
}

// RatingTendency classifies a star-rating distribution. Users with more than
// 40% of ratings at 4 stars or above are generous; otherwise more than 30% at
// 2.5 or below makes them critical. Anything else, including an empty
// distribution, is balanced.
func RatingTendency(dist map[string]int) domain.RatingTendency {
	total, high, low := 0, 0, 0
	for k, c := range dist {
		rating, err := strconv.ParseFloat(strings.TrimSpace(k), 64)
		if err != nil || c <= 0 {
			continue
		}
		total += c
		if rating >= HighRatingMin {
			high += c
		}
		if rating <= LowRatingMax {
			low += c
		}
	}
	if total == 0 {
		return domain.TendencyBalanced
	}

	switch {
	case float64(high)/float64(total) > GenerousShare:
		return domain.TendencyGenerous
	case float64(low)/float64(total) > CriticalShare:
		return domain.TendencyCritical
	default:
		return domain.TendencyBalanced
	}
}

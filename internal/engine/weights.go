package engine

import (
	"fmt"
	"math"
)

// Strategy names, also used as keys in per-strategy score maps.
const (
	StrategyGenre     = "genre"
	StrategyDirector  = "director"
	StrategyEra       = "era"
	StrategyDiscovery = "discovery"
)

// Weights holds the nominal share of each strategy in the aggregate score.
type Weights struct {
	Genre     float64 `koanf:"genre"`
	Director  float64 `koanf:"director"`
	Era       float64 `koanf:"era"`
	Discovery float64 `koanf:"discovery"`
}

func DefaultWeights() Weights {
	return Weights{Genre: 0.40, Director: 0.30, Era: 0.20, Discovery: 0.10}
}

// Of returns the nominal weight for a strategy name, 0 for unknown names.
func (w Weights) Of(name string) float64 {
	switch name {
	case StrategyGenre:
		return w.Genre
	case StrategyDirector:
		return w.Director
	case StrategyEra:
		return w.Era
	case StrategyDiscovery:
		return w.Discovery
	default:
		return 0
	}
}

func (w Weights) Sum() float64 {
	return w.Genre + w.Director + w.Era + w.Discovery
}

func (w Weights) Validate() error {
	for _, v := range []float64{w.Genre, w.Director, w.Era, w.Discovery} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("strategy weights must be finite and non-negative, got %+v", w)
		}
	}
	if math.Abs(w.Sum()-1) > 1e-6 {
		return fmt.Errorf("strategy weights must sum to 1, got %.6f", w.Sum())
	}
	return nil
}

// Redistribute rescales the weights of the active strategies so they sum to
// 1, spreading the share of starved strategies proportionally. It returns an
// empty map when no active strategy has a positive nominal weight.
func (w Weights) Redistribute(active []string) map[string]float64 {
	total := 0.0
	for _, name := range active {
		total += w.Of(name)
	}

	out := make(map[string]float64, len(active))
	if total <= 0 {
		return out
	}
	for _, name := range active {
		if v := w.Of(name); v > 0 {
			out[name] = v / total
		}
	}
	return out
}

package engine

import "fmt"

type Config struct {
	Weights Weights `koanf:"weights"`

	// Films whose runtime falls in [IdealRuntimeMin, IdealRuntimeMax] have
	// their quality multiplied by RuntimeBonus in every strategy.
	IdealRuntimeMin int     `koanf:"ideal_runtime_min"`
	IdealRuntimeMax int     `koanf:"ideal_runtime_max"`
	RuntimeBonus    float64 `koanf:"runtime_bonus"`

	// Discovery candidates have at most this percentile of the catalog's
	// vote counts and a rating at or above this percentile of its ratings.
	DiscoveryVotesPercentile  float64 `koanf:"discovery_votes_percentile"`
	DiscoveryRatingPercentile float64 `koanf:"discovery_rating_percentile"`

	// A strategy contributes a reason when its normalized score for the
	// film exceeds ReasonThreshold.
	ReasonThreshold float64 `koanf:"reason_threshold"`

	// Parallel runs the strategies concurrently.
	Parallel bool `koanf:"parallel"`
}

func DefaultConfig() Config {
	return Config{
		Weights:                   DefaultWeights(),
		IdealRuntimeMin:           80,
		IdealRuntimeMax:           180,
		RuntimeBonus:              1.05,
		DiscoveryVotesPercentile:  0.50,
		DiscoveryRatingPercentile: 0.75,
		ReasonThreshold:           0.05,
		Parallel:                  true,
	}
}

func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.IdealRuntimeMin <= 0 || c.IdealRuntimeMax < c.IdealRuntimeMin {
		return fmt.Errorf("invalid ideal runtime band %d..%d", c.IdealRuntimeMin, c.IdealRuntimeMax)
	}
	if c.RuntimeBonus < 1 {
		return fmt.Errorf("runtime bonus must be >= 1, got %v", c.RuntimeBonus)
	}
	for name, p := range map[string]float64{
		"discovery votes percentile":  c.DiscoveryVotesPercentile,
		"discovery rating percentile": c.DiscoveryRatingPercentile,
	} {
		if p <= 0 || p > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", name, p)
		}
	}
	if c.ReasonThreshold < 0 || c.ReasonThreshold >= 1 {
		return fmt.Errorf("reason threshold must be in [0, 1), got %v", c.ReasonThreshold)
	}
	return nil
}

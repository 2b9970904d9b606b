package main

import (
	"github.com/spf13/cobra"

	"github.com/actuallystonmai/film-recommender/internal/logging"
	"github.com/actuallystonmai/film-recommender/internal/repository"
	"github.com/actuallystonmai/film-recommender/seeds"
)

var (
	seedCount int
	seedForce bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the films table with the seed catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo := repository.New(pool)
		count, err := repo.CountFilms(ctx)
		if err != nil {
			return err
		}
		if count > 0 && !seedForce {
			logging.Info().Int("films", count).Msg("database already seeded, skipping")
			return nil
		}
		return seeds.Setup(ctx, repo, seedCount)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 200, "Number of generated films on top of the curated ones")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Reseed even when films already exist")
}

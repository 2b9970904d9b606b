package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the film metadata cache",
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openCache(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := store.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries, %d remain\n", removed, store.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheSweepCmd)
}

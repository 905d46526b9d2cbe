package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gwprep/internal/cache"
)

var cacheFile string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the event dataset cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached event keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(cacheFile)
		if err != nil {
			return err
		}
		defer store.Close()

		keys, err := store.Keys(cmd.Context())
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Println("cache is empty")
			return nil
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheFile, "cache", "", "event dataset cache file (required)")
	_ = cacheCmd.MarkPersistentFlagRequired("cache")
	cacheCmd.AddCommand(cacheListCmd)
}

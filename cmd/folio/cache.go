package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cachepkg "github.com/folio-site/folio/pkg/cache/sqlite"
	"github.com/folio-site/folio/pkg/config"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			cache, err := cachepkg.New(cfg.DBPath, cfg.Cache.TTL)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer func() { _ = cache.Close() }()

			stats, err := cache.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("entries: %d\n", stats.Entries)
			return nil
		},
	}

	var expiredOnly bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			cache, err := cachepkg.New(cfg.DBPath, cfg.Cache.TTL)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer func() { _ = cache.Close() }()

			if err := cache.Clear(expiredOnly); err != nil {
				return err
			}
			fmt.Println("cache cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expiredOnly, "expired", false, "remove only expired entries")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "folio.yaml", "path to config file")
	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}

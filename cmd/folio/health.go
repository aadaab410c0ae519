package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-site/folio/pkg/config"
)

func newHealthCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Run the assistant's self-diagnostic check",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx := cmd.Context()
			a, cleanup, err := buildAssistant(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			healthy, mode := a.CheckHealth(ctx)
			fmt.Printf("healthy: %v (mode: %s)\n", healthy, mode)
			if !healthy {
				return fmt.Errorf("assistant unhealthy, answering in %s mode", mode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "folio.yaml", "path to config file")
	return cmd
}

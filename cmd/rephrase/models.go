package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the model ids the configured provider account can use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		p, err := buildProvider(ctx, cfg, useMock)
		if err != nil {
			return err
		}

		ids, err := p.ListModels(ctx)
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

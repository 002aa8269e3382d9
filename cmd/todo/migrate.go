package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/todo-service/internal/config"
	"github.com/deppfellow/todo-service/internal/database"
	"github.com/deppfellow/todo-service/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)

			ctx, cancel := context.WithTimeout(cmd.Context(), DefaultContextTimeout)
			defer cancel()

			return database.Migrate(ctx, &log, cfg)
		},
	}
}

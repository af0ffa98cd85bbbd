package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturacion-api/pkg/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea la tabla de documentos en PostgreSQL",
		Long:  "Idempotente. Con STORE_DRIVER=bolt o memory no hay nada que migrar.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.DriverPostgres {
				fmt.Fprintf(cmd.OutOrStdout(), "driver %s: nada que migrar\n", cfg.Store.Driver)
				return nil
			}
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				return err
			}
			log.Info().Msg("esquema listo")
			return nil
		},
	}
}

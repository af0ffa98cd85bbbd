package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/pkg/config"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "facturactl",
		Short: "Administración de Facturación API",
		Long: `facturactl usa la misma configuración que la API (STORE_DRIVER, DATABASE_URL, BOLT_PATH, ...)
para preparar el almacenamiento, importar productos y clientes, consultar la numeración y emitir tokens.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newImportProductsCmd(), newImportCustomersCmd(), newNextNumberCmd(), newTokenCmd())
	return root
}

// loadEnv configuración + logger compartidos por los subcomandos.
func loadEnv() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	return cfg, log, nil
}

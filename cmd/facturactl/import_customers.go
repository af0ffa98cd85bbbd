package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/bootstrap"
)

func newImportCustomersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-customers <archivo.csv>",
		Short: "Importa clientes al directorio usado al facturar",
		Long: `Columnas: cedula,nombre,apellido,correo,telefono,direccion.
Un cliente con cédula ya registrada se completa; los campos vacíos no borran datos.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCustomers,
	}
}

func runImportCustomers(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := readCustomers(f)
	if err != nil {
		return err
	}

	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	svc := bootstrap.NewServices(stores, bootstrap.BillingSettings(cfg), log.Component("facturactl"))
	n, err := svc.Customers.Import(ctx, rows)
	if err != nil {
		// fila 1 = encabezado
		return fmt.Errorf("fila %d: %w", n+2, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d clientes importados\n", n)
	return nil
}

func readCustomers(r io.Reader) ([]dto.CustomerData, error) {
	var rows []dto.CustomerData
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return rows, nil
}

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

const importUser = "facturactl"

func newImportProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-products <archivo.csv>",
		Short: "Importa productos desde CSV",
		Long: `Columnas: nombre,categoria,marca,precio_unitario,precio_mayor,stock.
Cada producto se crea en su propia transacción con un movimiento de ajuste por el stock inicial.`,
		Example: "  facturactl import-products catalogo.csv --hidden",
		Args:    cobra.ExactArgs(1),
		RunE:    runImportProducts,
	}
	cmd.Flags().Bool("hidden", false, "Importar los productos como ocultos")
	return cmd
}

func runImportProducts(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := readProducts(f)
	if err != nil {
		return err
	}
	hidden, _ := cmd.Flags().GetBool("hidden")

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
	for i, row := range rows {
		if hidden {
			visible := false
			row.Visible = &visible
		}
		p, err := svc.Products.Create(ctx, importUser, row)
		if err != nil {
			// fila 1 = encabezado
			return fmt.Errorf("fila %d (%s): %w", i+2, row.Name, err)
		}
		log.Debug().Str("product_id", p.ID).Str("nombre", p.Name).Msg("producto importado")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d productos importados\n", len(rows))
	return nil
}

// readProducts parsea el CSV (con encabezado) a solicitudes de creación.
func readProducts(r io.Reader) ([]dto.CreateProductRequest, error) {
	var rows []dto.CreateProductRequest
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return rows, nil
}

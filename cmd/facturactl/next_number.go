package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/internal/infrastructure/bootstrap"
)

func newNextNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "next-number <Factura|NotaVenta>",
		Short:     "Muestra el número que recibiría la próxima venta",
		Long:      "Solo consulta: no reserva el número.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"Factura", "NotaVenta"},
		RunE: func(cmd *cobra.Command, args []string) error {
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
			next, err := svc.InvoiceQuery.NextNumber(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next.DocumentNumber)
			return nil
		},
	}
}

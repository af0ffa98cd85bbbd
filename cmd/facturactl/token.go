package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/pkg/config"
	pkgjwt "github.com/jhoicas/Facturacion-api/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var minutes int
	cmd := &cobra.Command{
		Use:       "token <user_id> <admin|vendedor>",
		Short:     "Emite un token de acceso firmado con JWT_SECRET",
		Long:      "Para cuentas de servicio y pruebas. Usa JWT_ISSUER y JWT_EXPIRATION_MINUTES salvo que se indique --minutes.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{pkgjwt.RoleAdmin, pkgjwt.RoleSeller},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			tok, err := issueToken(cfg.JWT, args[0], args[1], minutes)
			if err != nil {
				return err
			}
			log.Info().Str("user_id", args[0]).Str("role", args[1]).Msg("token emitido")
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().IntVar(&minutes, "minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	return cmd
}

func issueToken(cfg config.JWTConfig, userID, role string, minutes int) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user_id requerido")
	}
	if role != pkgjwt.RoleAdmin && role != pkgjwt.RoleSeller {
		return "", fmt.Errorf("rol desconocido %q", role)
	}
	if minutes <= 0 {
		minutes = cfg.Expiration
	}
	return pkgjwt.Generate(cfg.Secret, userID, role, cfg.Issuer, minutes)
}

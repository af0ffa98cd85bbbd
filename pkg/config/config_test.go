package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "0.15", cfg.Billing.TaxRate.String())
	assert.True(t, cfg.Billing.EditTaxRate.Equal(cfg.Billing.TaxRate))
	assert.Equal(t, "F001-", cfg.Billing.InvoicePrefix)
	assert.Equal(t, "NV001-", cfg.Billing.SalesNotePrefix)
	assert.Equal(t, 5, cfg.Tx.MaxAttempts)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Bolt")
	v.Set("BILLING_EDIT_TAX_RATE", "0.12")
	v.Set("TX_MAX_ATTEMPTS", "8")
	v.Set("HTTP_PORT", 9090)

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DriverBolt, cfg.Store.Driver)
	assert.Equal(t, "0.12", cfg.Billing.EditTaxRate.String())
	assert.Equal(t, 8, cfg.Tx.MaxAttempts)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_Invalidos(t *testing.T) {
	cases := map[string]map[string]any{
		"driver desconocido": {"STORE_DRIVER": "firestore"},
		"tasa no numérica":   {"BILLING_TAX_RATE": "quince"},
		"tasa negativa":      {"BILLING_TAX_RATE": "-0.1"},
		"intentos en cero":   {"TX_MAX_ATTEMPTS": 0},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range values {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "facturacion", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/facturacion?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

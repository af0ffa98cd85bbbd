package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/pkg/config"
	pkgjwt "github.com/jhoicas/Facturacion-api/pkg/jwt"
)

func TestIssueToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "s3cret", Expiration: 30, Issuer: "facturacion-api"}

	tok, err := issueToken(cfg, "u-7", pkgjwt.RoleSeller, 0)
	require.NoError(t, err)
	userID, role, err := pkgjwt.Parse(cfg.Secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-7", userID)
	assert.Equal(t, pkgjwt.RoleSeller, role)

	admin, err := issueToken(cfg, "u-1", pkgjwt.RoleAdmin, 5)
	require.NoError(t, err)
	_, role, err = pkgjwt.Parse(cfg.Secret, admin)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.RoleAdmin, role)
	_, _, err = pkgjwt.Parse("otro", admin)
	assert.Error(t, err)
}

func TestIssueToken_Errores(t *testing.T) {
	cfg := config.JWTConfig{Secret: "s3cret", Expiration: 30}

	_, err := issueToken(cfg, "", pkgjwt.RoleAdmin, 0)
	assert.Error(t, err)
	_, err = issueToken(cfg, "u-7", "cajero", 0)
	assert.Error(t, err)
	_, err = issueToken(config.JWTConfig{}, "u-7", pkgjwt.RoleAdmin, 0)
	assert.Error(t, err)
}

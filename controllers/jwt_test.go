package controllers

import (
	"testing"

	"ventanilla/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configDePrueba(secret string, minutos int) config.Configuration {
	var cfg config.Configuration
	cfg.Security.JwtSecret = secret
	cfg.Security.AccessTokenMinutes = minutos
	return cfg
}

func TestAccessTokenRoundTrip(t *testing.T) {
	SetConfig(configDePrueba("secreto-de-prueba", 5))

	token, err := firmarAccessToken(42, "admin")
	require.NoError(t, err)

	id, ok := parseAccessToken(token)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestAccessTokenFirmaInvalida(t *testing.T) {
	SetConfig(configDePrueba("secreto-de-prueba", 5))
	token, err := firmarAccessToken(42, "usuario")
	require.NoError(t, err)

	// Token alterado.
	_, ok := parseAccessToken(token + "x")
	assert.False(t, ok)

	// Firmado con otro secreto.
	SetConfig(configDePrueba("otro-secreto", 5))
	_, ok = parseAccessToken(token)
	assert.False(t, ok)
}

func TestAccessTokenExpirado(t *testing.T) {
	SetConfig(configDePrueba("secreto-de-prueba", -1))
	token, err := firmarAccessToken(42, "usuario")
	require.NoError(t, err)

	_, ok := parseAccessToken(token)
	assert.False(t, ok)
}

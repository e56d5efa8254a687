package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simiraider/tp5-burgertic/internal/config"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "s3cr3t", ExpireMinutes: 30}

	token, err := GenerateToken(cfg, 42, true)
	require.NoError(t, err)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UsuarioID)
	assert.True(t, claims.Admin)
}

func TestParseTokenSecretIncorrecto(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "s3cr3t", ExpireMinutes: 30}
	token, err := GenerateToken(cfg, 1, false)
	require.NoError(t, err)

	_, err = ParseToken(&config.JWTConfig{Secret: "otro"}, token)
	assert.Error(t, err)
}

func TestParseTokenBasura(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "s3cr3t"}
	_, err := ParseToken(cfg, "no-es-un-jwt")
	assert.Error(t, err)
}

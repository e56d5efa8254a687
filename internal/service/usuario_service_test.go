package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simiraider/tp5-burgertic/internal/auth"
	"github.com/Simiraider/tp5-burgertic/internal/config"
	"github.com/Simiraider/tp5-burgertic/internal/repository/mysql"
)

var testJWT = &config.JWTConfig{Secret: "test-secret", ExpireMinutes: 30}

func newUsuarioService(t *testing.T) *UsuarioService {
	t.Helper()
	db := newTestDB(t)
	return NewUsuarioService(mysql.NewUsuarioRepository(db), testJWT)
}

func TestRegisterYLogin(t *testing.T) {
	svc := newUsuarioService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "secreto123")
	require.NoError(t, err)
	assert.False(t, u.Admin)
	assert.NotEqual(t, "secreto123", u.Password) // bcrypt 哈希落库

	logged, token, err := svc.Login(ctx, "ada@example.com", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	claims, err := auth.ParseToken(testJWT, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UsuarioID)
	assert.False(t, claims.Admin)
}

func TestRegisterEmailDuplicado(t *testing.T) {
	svc := newUsuarioService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "secreto123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Otra", "Persona", "ada@example.com", "otra456")
	require.ErrorIs(t, err, ErrValidacion)
}

func TestRegisterCamposFaltantes(t *testing.T) {
	svc := newUsuarioService(t)

	_, err := svc.Register(context.Background(), "", "Lovelace", "ada@example.com", "x")
	require.ErrorIs(t, err, ErrValidacion)
	_, err = svc.Register(context.Background(), "Ada", "Lovelace", "", "x")
	require.ErrorIs(t, err, ErrValidacion)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	svc := newUsuarioService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "secreto123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "incorrecta")
	require.ErrorIs(t, err, ErrNoAutenticado)

	_, _, err = svc.Login(ctx, "nadie@example.com", "secreto123")
	require.ErrorIs(t, err, ErrNoAutenticado)
}

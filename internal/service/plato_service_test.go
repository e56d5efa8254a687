package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
	"github.com/Simiraider/tp5-burgertic/internal/repository/mysql"
)

func newPlatoService(t *testing.T) *PlatoService {
	t.Helper()
	db := newTestDB(t)
	return NewPlatoService(mysql.NewPlatoRepository(db), nil)
}

func TestPlatoCreateValidaCampos(t *testing.T) {
	svc := newPlatoService(t)
	ctx := context.Background()

	casos := []struct {
		nombre string
		p      plato.Plato
	}{
		{"tipo inválido", plato.Plato{Tipo: "bebida", Nombre: "cola", Precio: 100, Descripcion: "x"}},
		{"nombre vacío", plato.Plato{Tipo: plato.TipoCombo, Precio: 100, Descripcion: "x"}},
		{"descripción vacía", plato.Plato{Tipo: plato.TipoCombo, Nombre: "combo", Precio: 100}},
		{"precio negativo", plato.Plato{Tipo: plato.TipoCombo, Nombre: "combo", Precio: -1, Descripcion: "x"}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := svc.Create(ctx, &c.p)
			assert.ErrorIs(t, err, ErrValidacion)
		})
	}

	ok := plato.Plato{Tipo: plato.TipoPostre, Nombre: "flan", Precio: 180, Descripcion: "con dulce de leche"}
	require.NoError(t, svc.Create(ctx, &ok))
	assert.NotZero(t, ok.ID)
}

func TestPlatoGetUpdateDelete(t *testing.T) {
	svc := newPlatoService(t)
	ctx := context.Background()

	p := plato.Plato{Tipo: plato.TipoPrincipal, Nombre: "burger", Precio: 450, Descripcion: "clásica"}
	require.NoError(t, svc.Create(ctx, &p))

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "burger", got.Nombre)

	p.Precio = 500
	require.NoError(t, svc.Update(ctx, &p))
	got, err = svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Precio)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, ErrNoEncontrado)

	// 不存在的记录
	require.ErrorIs(t, svc.Delete(ctx, 12345), ErrNoEncontrado)
	require.ErrorIs(t, svc.Update(ctx, &plato.Plato{ID: 12345, Tipo: plato.TipoCombo, Nombre: "x", Precio: 1, Descripcion: "y"}), ErrNoEncontrado)
}

func TestPlatoListByTipo(t *testing.T) {
	svc := newPlatoService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &plato.Plato{Tipo: plato.TipoPostre, Nombre: "flan", Precio: 180, Descripcion: "x"}))
	require.NoError(t, svc.Create(ctx, &plato.Plato{Tipo: plato.TipoPrincipal, Nombre: "burger", Precio: 450, Descripcion: "x"}))

	list, err := svc.ListByTipo(ctx, plato.TipoPostre)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "flan", list[0].Nombre)

	_, err = svc.ListByTipo(ctx, "bebida")
	require.ErrorIs(t, err, ErrValidacion)
}

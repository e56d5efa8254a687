package mysql

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/pedido"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func seedPedido(t *testing.T, db *gorm.DB, usuarioID int64, lineas ...pedido.Linea) *pedido.Pedido {
	t.Helper()
	p := &pedido.Pedido{
		UsuarioID: usuarioID,
		Fecha:     time.Now(),
		Estado:    pedido.EstadoPendiente,
	}
	require.NoError(t, db.Create(p).Error)
	for i := range lineas {
		lineas[i].PedidoID = p.ID
		require.NoError(t, db.Create(&lineas[i]).Error)
	}
	return p
}

func TestPedidoGetByIDPrecargaLineas(t *testing.T) {
	db := newTestDB(t)
	repo := NewPedidoRepository(db)

	seeded := seedPedido(t, db, 1,
		pedido.Linea{PlatoID: 10, Cantidad: 2},
		pedido.Linea{PlatoID: 20, Cantidad: 1},
	)

	got, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, pedido.EstadoPendiente, got.Estado)
	require.Len(t, got.Lineas, 2)
}

func TestPedidoGetByIDInexistente(t *testing.T) {
	db := newTestDB(t)
	repo := NewPedidoRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPedidoListByUsuario(t *testing.T) {
	db := newTestDB(t)
	repo := NewPedidoRepository(db)

	seedPedido(t, db, 1, pedido.Linea{PlatoID: 10, Cantidad: 1})
	seedPedido(t, db, 2, pedido.Linea{PlatoID: 10, Cantidad: 1})
	seedPedido(t, db, 1, pedido.Linea{PlatoID: 20, Cantidad: 3})

	list, err := repo.ListByUsuario(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		assert.Equal(t, int64(1), p.UsuarioID)
		assert.NotEmpty(t, p.Lineas)
	}
}

func TestPedidoListAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewPedidoRepository(db)

	seedPedido(t, db, 1, pedido.Linea{PlatoID: 10, Cantidad: 1})
	seedPedido(t, db, 2, pedido.Linea{PlatoID: 20, Cantidad: 2})

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

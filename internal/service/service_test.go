package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
	"github.com/Simiraider/tp5-burgertic/internal/repository/mysql"
)

// newTestDB 每个测试一个独立的内存 SQLite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))
	return db
}

func seedPlato(t *testing.T, db *gorm.DB, nombre string, precio int64) *plato.Plato {
	t.Helper()
	p := &plato.Plato{
		Tipo:        plato.TipoPrincipal,
		Nombre:      nombre,
		Precio:      precio,
		Descripcion: "plato de prueba",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// newPedidoService 构建核心服务：真实仓储 + 无缓存的菜品服务，不连 MQ
func newPedidoService(t *testing.T, db *gorm.DB) *PedidoService {
	t.Helper()
	platoSvc := NewPlatoService(mysql.NewPlatoRepository(db), nil)
	return NewPedidoService(db, mysql.NewPedidoRepository(db), platoSvc, nil)
}

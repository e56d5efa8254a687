package mysql

import (
	"log"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Simiraider/tp5-burgertic/internal/config"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/pedido"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/usuario"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init 初始化全局 GORM 实例并自动迁移表结构
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}

		if err = Migrate(db); err != nil {
			log.Fatalf("auto migrate failed: %v", err)
		}
	})
	return db
}

// Migrate 迁移全部表结构，测试可在任意 *gorm.DB 上复用
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&usuario.Usuario{}, &plato.Plato{}, &pedido.Pedido{}, &pedido.Linea{})
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}

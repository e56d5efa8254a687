package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/pedido"
)

type pedidoRepo struct {
	db *gorm.DB
}

// NewPedidoRepository 创建订单仓储
func NewPedidoRepository(db *gorm.DB) pedido.Repository {
	return &pedidoRepo{db: db}
}

func (r *pedidoRepo) GetByID(ctx context.Context, id int64) (*pedido.Pedido, error) {
	var p pedido.Pedido
	if err := r.db.WithContext(ctx).Preload("Lineas").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) ListAll(ctx context.Context) ([]*pedido.Pedido, error) {
	var list []*pedido.Pedido
	if err := r.db.WithContext(ctx).
		Preload("Lineas").
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *pedidoRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]*pedido.Pedido, error) {
	var list []*pedido.Pedido
	if err := r.db.WithContext(ctx).
		Preload("Lineas").
		Where("usuario_id = ?", usuarioID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

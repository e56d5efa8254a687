package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
)

type platoRepo struct {
	db *gorm.DB
}

// NewPlatoRepository 创建菜品仓储
func NewPlatoRepository(db *gorm.DB) plato.Repository {
	return &platoRepo{db: db}
}

func (r *platoRepo) GetByID(ctx context.Context, id int64) (*plato.Plato, error) {
	var p plato.Plato
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *platoRepo) ListAll(ctx context.Context) ([]*plato.Plato, error) {
	var list []*plato.Plato
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *platoRepo) ListByTipo(ctx context.Context, tipo string) ([]*plato.Plato, error) {
	var list []*plato.Plato
	if err := r.db.WithContext(ctx).
		Where("tipo = ?", tipo).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *platoRepo) Create(ctx context.Context, p *plato.Plato) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *platoRepo) Update(ctx context.Context, p *plato.Plato) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *platoRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&plato.Plato{}, id).Error
}

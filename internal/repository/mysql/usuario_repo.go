package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/usuario"
)

type usuarioRepo struct {
	db *gorm.DB
}

// NewUsuarioRepository 创建用户仓储
func NewUsuarioRepository(db *gorm.DB) usuario.Repository {
	return &usuarioRepo{db: db}
}

func (r *usuarioRepo) GetByID(ctx context.Context, id int64) (*usuario.Usuario, error) {
	var u usuario.Usuario
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) GetByEmail(ctx context.Context, email string) (*usuario.Usuario, error) {
	var u usuario.Usuario
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Create(ctx context.Context, u *usuario.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

package usuario

import (
	"context"
	"time"
)

// Usuario 用户模型
type Usuario struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:64;not null" json:"nombre"`
	Apellido  string    `gorm:"size:64;not null" json:"apellido"`
	Email     string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Admin     bool      `gorm:"not null;default:false" json:"admin"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Repository 用户仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Usuario, error)
	GetByEmail(ctx context.Context, email string) (*Usuario, error)
	Create(ctx context.Context, u *Usuario) error
}

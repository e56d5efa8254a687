package plato

import (
	"context"
	"time"
)

// 菜品分类，取值与前端筛选保持一致
const (
	TipoPrincipal  = "principal"
	TipoCombo      = "combo"
	TipoPostre     = "postre"
	TipoGuarnicion = "guarnicion"
)

// TipoValido 校验菜品分类是否合法
func TipoValido(tipo string) bool {
	switch tipo {
	case TipoPrincipal, TipoCombo, TipoPostre, TipoGuarnicion:
		return true
	}
	return false
}

// Plato 菜品模型
type Plato struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Tipo        string    `gorm:"size:32;index;not null" json:"tipo"`
	Nombre      string    `gorm:"size:70;not null" json:"nombre"`
	Precio      int64     `gorm:"not null" json:"precio"`
	Descripcion string    `gorm:"size:400;not null" json:"descripcion"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Repository 菜品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Plato, error)
	ListAll(ctx context.Context) ([]*Plato, error)
	ListByTipo(ctx context.Context, tipo string) ([]*Plato, error)
	Create(ctx context.Context, p *Plato) error
	Update(ctx context.Context, p *Plato) error
	Delete(ctx context.Context, id int64) error
}

package pedido

import (
	"context"
	"fmt"
	"time"
)

// 订单状态，只能沿 pendiente -> aceptado -> "en camino" -> entregado 单向流转
const (
	EstadoPendiente = "pendiente"
	EstadoAceptado  = "aceptado"
	EstadoEnCamino  = "en camino"
	EstadoEntregado = "entregado"
)

// 状态流转动作
const (
	AccionAceptar  = "aceptar"
	AccionComenzar = "comenzar"
	AccionEntregar = "entregar"
)

// transiciones 动作 -> {要求的当前状态, 目标状态}
var transiciones = map[string][2]string{
	AccionAceptar:  {EstadoPendiente, EstadoAceptado},
	AccionComenzar: {EstadoAceptado, EstadoEnCamino},
	AccionEntregar: {EstadoEnCamino, EstadoEntregado},
}

// AccionValida 判断动作是否在流转表内
func AccionValida(accion string) bool {
	_, ok := transiciones[accion]
	return ok
}

// Transicionar 根据动作计算下一个状态。
// 当前状态不满足动作要求时返回错误，状态保持不变。
func Transicionar(estado, accion string) (string, error) {
	t, ok := transiciones[accion]
	if !ok {
		return "", fmt.Errorf("accion desconocida: %q", accion)
	}
	if estado != t[0] {
		return "", fmt.Errorf("accion %q requiere estado %q, actual %q", accion, t[0], estado)
	}
	return t[1], nil
}

// Pedido 订单模型
type Pedido struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UsuarioID int64     `gorm:"index;not null" json:"id_usuario"`
	Fecha     time.Time `gorm:"not null" json:"fecha"`
	Estado    string    `gorm:"size:32;index;not null" json:"estado"`
	Lineas    []Linea   `gorm:"foreignKey:PedidoID" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Linea 订单行：一个订单内每个菜品只有一行
type Linea struct {
	ID       int64 `gorm:"primaryKey" json:"-"`
	PedidoID int64 `gorm:"index:idx_pedido_plato,unique;not null" json:"id_pedido"`
	PlatoID  int64 `gorm:"index:idx_pedido_plato,unique;not null" json:"id_plato"`
	Cantidad int64 `gorm:"not null" json:"cantidad"`
}

func (Linea) TableName() string {
	return "pedido_lineas"
}

// Repository 订单仓储接口（读路径；写路径由服务层在事务内完成）
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Pedido, error)
	ListAll(ctx context.Context) ([]*Pedido, error)
	ListByUsuario(ctx context.Context, usuarioID int64) ([]*Pedido, error)
}

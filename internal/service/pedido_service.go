package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/pedido"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
	"github.com/Simiraider/tp5-burgertic/internal/metrics"
)

// PedidoEventsQueue 订单事件队列，由 cmd/pedido-worker 消费
const PedidoEventsQueue = "pedido_events"

// 订单事件类型
const (
	EventoPedidoCreado    = "creado"
	EventoPedidoEstado    = "estado"
	EventoPedidoEliminado = "eliminado"
)

// PedidoEvent 发往 MQ 的订单事件
type PedidoEvent struct {
	EventID   string    `json:"event_id"`
	Tipo      string    `json:"tipo"`
	PedidoID  int64     `json:"id_pedido"`
	UsuarioID int64     `json:"id_usuario"`
	Estado    string    `json:"estado"`
	Fecha     time.Time `json:"fecha"`
}

// PlatoLookup 菜品查询能力，仓储或带缓存的 PlatoService 均可满足
type PlatoLookup interface {
	GetByID(ctx context.Context, id int64) (*plato.Plato, error)
}

// LineaPedido 下单请求中的一行
type LineaPedido struct {
	PlatoID  int64 `json:"id"`
	Cantidad int64 `json:"cantidad"`
}

// PlatoEnPedido 读侧视图中的一行：关联实时菜品信息
type PlatoEnPedido struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Precio   int64  `json:"precio"`
	Cantidad int64  `json:"cantidad"`
	Subtotal int64  `json:"subtotal"`
}

// PedidoDetalle 订单详情视图
type PedidoDetalle struct {
	ID        int64           `json:"id"`
	UsuarioID int64           `json:"id_usuario"`
	Fecha     time.Time       `json:"fecha"`
	Estado    string          `json:"estado"`
	Platos    []PlatoEnPedido `json:"platos"`
	Total     int64           `json:"total"`
}

// PedidoService 订单核心：创建、状态机流转、删除与读侧聚合。
// 多步写操作持有 *gorm.DB 在事务内完成；mqConn 为 nil 时不发事件。
type PedidoService struct {
	db         *gorm.DB
	pedidoRepo pedido.Repository
	platos     PlatoLookup
	mqConn     *amqp.Connection
}

func NewPedidoService(db *gorm.DB, pedidoRepo pedido.Repository, platos PlatoLookup, mqConn *amqp.Connection) *PedidoService {
	return &PedidoService{
		db:         db,
		pedidoRepo: pedidoRepo,
		platos:     platos,
		mqConn:     mqConn,
	}
}

// lockForUpdate 行锁。SQLite 不支持 FOR UPDATE，且写入本身串行，跳过即可。
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// mergeLineas 合并重复菜品：同一菜品的数量累加，保持首次出现的顺序
func mergeLineas(lineas []LineaPedido) ([]LineaPedido, error) {
	merged := make([]LineaPedido, 0, len(lineas))
	index := make(map[int64]int, len(lineas))
	for _, l := range lineas {
		if l.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: la cantidad del plato %d debe ser positiva", ErrValidacion, l.PlatoID)
		}
		if i, ok := index[l.PlatoID]; ok {
			merged[i].Cantidad += l.Cantidad
			continue
		}
		index[l.PlatoID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

// Crear 创建订单：合并重复行、逐一校验菜品存在，然后在单个事务里
// 写入订单与全部行。任一菜品不存在则整单拒绝，不留半成品。
func (s *PedidoService) Crear(ctx context.Context, usuarioID int64, lineas []LineaPedido) (*pedido.Pedido, error) {
	if len(lineas) == 0 {
		metrics.Errores.WithLabelValues("validacion").Inc()
		return nil, fmt.Errorf("%w: el pedido debe tener al menos un plato", ErrValidacion)
	}
	merged, err := mergeLineas(lineas)
	if err != nil {
		metrics.Errores.WithLabelValues("validacion").Inc()
		return nil, err
	}
	for _, l := range merged {
		if _, err := s.platos.GetByID(ctx, l.PlatoID); err != nil {
			if errors.Is(err, ErrNoEncontrado) || notFound(err) {
				metrics.Errores.WithLabelValues("validacion").Inc()
				return nil, fmt.Errorf("%w: el plato %d no existe", ErrValidacion, l.PlatoID)
			}
			return nil, err
		}
	}

	p := &pedido.Pedido{
		UsuarioID: usuarioID,
		Fecha:     time.Now(),
		Estado:    pedido.EstadoPendiente,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for _, l := range merged {
			linea := pedido.Linea{
				PedidoID: p.ID,
				PlatoID:  l.PlatoID,
				Cantidad: l.Cantidad,
			}
			if err := tx.Create(&linea).Error; err != nil {
				return err
			}
			p.Lineas = append(p.Lineas, linea)
		}
		return nil
	})
	if err != nil {
		metrics.Errores.WithLabelValues("almacenamiento").Inc()
		zap.L().Error("crear pedido falló", zap.Int64("usuario_id", usuarioID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}

	metrics.PedidosCreados.Inc()
	s.publishEvent(ctx, EventoPedidoCreado, p)
	return p, nil
}

// Transicionar 应用状态机动作。仅管理员可调用；同一订单上的并发
// 流转通过行锁串行化，状态不满足动作要求时原样保留。
func (s *PedidoService) Transicionar(ctx context.Context, id int64, accion string, esAdmin bool) (*pedido.Pedido, error) {
	if !esAdmin {
		metrics.Errores.WithLabelValues("prohibido").Inc()
		return nil, fmt.Errorf("%w: se requieren permisos de administrador", ErrProhibido)
	}
	if !pedido.AccionValida(accion) {
		metrics.Errores.WithLabelValues("transicion").Inc()
		return nil, fmt.Errorf("%w: acción %q desconocida", ErrTransicionInvalida, accion)
	}

	var p pedido.Pedido
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&p, id).Error; err != nil {
			return err
		}
		next, err := pedido.Transicionar(p.Estado, accion)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransicionInvalida, err)
		}
		p.Estado = next
		return tx.Save(&p).Error
	})
	if err != nil {
		switch {
		case notFound(err):
			metrics.Errores.WithLabelValues("no_encontrado").Inc()
			return nil, fmt.Errorf("%w: pedido %d", ErrNoEncontrado, id)
		case errors.Is(err, ErrTransicionInvalida):
			metrics.Errores.WithLabelValues("transicion").Inc()
			return nil, err
		default:
			metrics.Errores.WithLabelValues("almacenamiento").Inc()
			zap.L().Error("transición falló", zap.Int64("pedido_id", id), zap.String("accion", accion), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
		}
	}

	metrics.Transiciones.WithLabelValues(accion).Inc()
	s.publishEvent(ctx, EventoPedidoEstado, &p)
	return &p, nil
}

// Eliminar 删除订单及其全部行，作为一个事务执行。仅管理员可调用。
func (s *PedidoService) Eliminar(ctx context.Context, id int64, esAdmin bool) error {
	if !esAdmin {
		metrics.Errores.WithLabelValues("prohibido").Inc()
		return fmt.Errorf("%w: se requieren permisos de administrador", ErrProhibido)
	}

	var p pedido.Pedido
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&p, id).Error; err != nil {
			return err
		}
		if err := tx.Where("pedido_id = ?", id).Delete(&pedido.Linea{}).Error; err != nil {
			return err
		}
		return tx.Delete(&pedido.Pedido{}, id).Error
	})
	if err != nil {
		if notFound(err) {
			metrics.Errores.WithLabelValues("no_encontrado").Inc()
			return fmt.Errorf("%w: pedido %d", ErrNoEncontrado, id)
		}
		metrics.Errores.WithLabelValues("almacenamiento").Inc()
		zap.L().Error("eliminar pedido falló", zap.Int64("pedido_id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}

	metrics.PedidosEliminados.Inc()
	s.publishEvent(ctx, EventoPedidoEliminado, &p)
	return nil
}

// Listar 返回全部订单（仅管理员），带实时菜品信息
func (s *PedidoService) Listar(ctx context.Context, esAdmin bool) ([]*PedidoDetalle, error) {
	if !esAdmin {
		metrics.Errores.WithLabelValues("prohibido").Inc()
		return nil, fmt.Errorf("%w: se requieren permisos de administrador", ErrProhibido)
	}
	list, err := s.pedidoRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	return s.enrichAll(ctx, list)
}

// ObtenerPorID 返回单个订单详情。非管理员只能看自己的订单。
func (s *PedidoService) ObtenerPorID(ctx context.Context, id, usuarioID int64, esAdmin bool) (*PedidoDetalle, error) {
	p, err := s.pedidoRepo.GetByID(ctx, id)
	if err != nil {
		if notFound(err) {
			metrics.Errores.WithLabelValues("no_encontrado").Inc()
			return nil, fmt.Errorf("%w: pedido %d", ErrNoEncontrado, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	if !esAdmin && p.UsuarioID != usuarioID {
		metrics.Errores.WithLabelValues("prohibido").Inc()
		return nil, fmt.Errorf("%w: el pedido %d pertenece a otro usuario", ErrProhibido, id)
	}
	return s.enrich(ctx, p)
}

// ListarPorUsuario 返回某个用户自己的订单
func (s *PedidoService) ListarPorUsuario(ctx context.Context, usuarioID int64) ([]*PedidoDetalle, error) {
	list, err := s.pedidoRepo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	return s.enrichAll(ctx, list)
}

// enrich 为每一行关联当前菜品的名称与价格并累计总价。
// 菜品已从目录中删除的行直接跳过，不计入总价。
func (s *PedidoService) enrich(ctx context.Context, p *pedido.Pedido) (*PedidoDetalle, error) {
	detalle := &PedidoDetalle{
		ID:        p.ID,
		UsuarioID: p.UsuarioID,
		Fecha:     p.Fecha,
		Estado:    p.Estado,
		Platos:    make([]PlatoEnPedido, 0, len(p.Lineas)),
	}
	for _, l := range p.Lineas {
		pl, err := s.platos.GetByID(ctx, l.PlatoID)
		if err != nil {
			if errors.Is(err, ErrNoEncontrado) || notFound(err) {
				continue
			}
			return nil, err
		}
		subtotal := pl.Precio * l.Cantidad
		detalle.Platos = append(detalle.Platos, PlatoEnPedido{
			ID:       pl.ID,
			Nombre:   pl.Nombre,
			Precio:   pl.Precio,
			Cantidad: l.Cantidad,
			Subtotal: subtotal,
		})
		detalle.Total += subtotal
	}
	return detalle, nil
}

func (s *PedidoService) enrichAll(ctx context.Context, list []*pedido.Pedido) ([]*PedidoDetalle, error) {
	out := make([]*PedidoDetalle, 0, len(list))
	for _, p := range list {
		d, err := s.enrich(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// publishEvent 发布订单事件，失败只记录日志，不影响主流程
func (s *PedidoService) publishEvent(ctx context.Context, tipo string, p *pedido.Pedido) {
	if s.mqConn == nil {
		return
	}
	ch, err := s.mqConn.Channel()
	if err != nil {
		metrics.Errores.WithLabelValues("mq").Inc()
		zap.L().Warn("abrir canal MQ falló", zap.Error(err))
		return
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(PedidoEventsQueue, true, false, false, false, nil); err != nil {
		metrics.Errores.WithLabelValues("mq").Inc()
		zap.L().Warn("declarar cola falló", zap.Error(err))
		return
	}

	body, err := json.Marshal(&PedidoEvent{
		EventID:   uuid.NewString(),
		Tipo:      tipo,
		PedidoID:  p.ID,
		UsuarioID: p.UsuarioID,
		Estado:    p.Estado,
		Fecha:     time.Now(),
	})
	if err != nil {
		return
	}

	err = ch.PublishWithContext(
		ctx,
		"",
		PedidoEventsQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		metrics.Errores.WithLabelValues("mq").Inc()
		zap.L().Warn("publicar evento falló", zap.String("tipo", tipo), zap.Int64("pedido_id", p.ID), zap.Error(err))
		return
	}
	metrics.EventosPublicados.Inc()
}

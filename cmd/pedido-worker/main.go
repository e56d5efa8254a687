package main

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Simiraider/tp5-burgertic/internal/config"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/usuario"
	"github.com/Simiraider/tp5-burgertic/internal/infra/mq"
	"github.com/Simiraider/tp5-burgertic/internal/repository/mysql"
	"github.com/Simiraider/tp5-burgertic/internal/service"
)

// 订单事件消费者：目前只做通知占位（按用户 email 记录日志），
// 后续可以接邮件或推送渠道。

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()

	db := mysql.Init(&cfg.MySQL)
	mqConn := mq.Init(&cfg.RabbitMQ)

	usuarioRepo := mysql.NewUsuarioRepository(db)

	ch, err := mqConn.Channel()
	if err != nil {
		zap.L().Fatal("failed to open channel", zap.Error(err))
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(service.PedidoEventsQueue, true, false, false, false, nil); err != nil {
		zap.L().Fatal("failed to declare queue", zap.Error(err))
	}

	// 手动确认模式（auto-ack=false）
	msgs, err := ch.Consume(service.PedidoEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		zap.L().Fatal("failed to consume", zap.Error(err))
	}

	zap.L().Info("pedido worker started, waiting for events")

	for d := range msgs {
		var ev service.PedidoEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			zap.L().Warn("invalid event payload", zap.Error(err))
			// 消息格式错误，拒绝并丢弃
			_ = d.Nack(false, false)
			continue
		}
		handleEvent(context.Background(), usuarioRepo, &ev, d)
	}
}

func handleEvent(ctx context.Context, usuarios usuario.Repository, ev *service.PedidoEvent, d amqp.Delivery) {
	email := ""
	if u, err := usuarios.GetByID(ctx, ev.UsuarioID); err == nil {
		email = u.Email
	}

	switch ev.Tipo {
	case service.EventoPedidoCreado:
		zap.L().Info("pedido creado",
			zap.String("event_id", ev.EventID),
			zap.Int64("pedido_id", ev.PedidoID),
			zap.String("email", email))
	case service.EventoPedidoEstado:
		zap.L().Info("pedido cambió de estado",
			zap.String("event_id", ev.EventID),
			zap.Int64("pedido_id", ev.PedidoID),
			zap.String("estado", ev.Estado),
			zap.String("email", email))
	case service.EventoPedidoEliminado:
		zap.L().Info("pedido eliminado",
			zap.String("event_id", ev.EventID),
			zap.Int64("pedido_id", ev.PedidoID),
			zap.String("email", email))
	default:
		zap.L().Warn("tipo de evento desconocido", zap.String("tipo", ev.Tipo))
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}

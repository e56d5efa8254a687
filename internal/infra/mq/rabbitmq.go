package mq

import (
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Simiraider/tp5-burgertic/internal/config"
)

var (
	conn *amqp.Connection
	once sync.Once
)

// Init 建立 RabbitMQ 连接，连接名标记为本服务以便在管理面板里区分
func Init(cfg *config.RabbitMQConfig) *amqp.Connection {
	once.Do(func() {
		c, err := amqp.DialConfig(cfg.URL, amqp.Config{
			Properties: amqp.Table{"connection_name": "tp5-burgertic"},
		})
		if err != nil {
			log.Fatalf("failed to connect rabbitmq: %v", err)
		}
		conn = c
	})
	return conn
}

// Conn 获取 MQ 连接
func Conn() *amqp.Connection {
	return conn
}

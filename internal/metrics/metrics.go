package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 订单核心指标，替代手写的计数器监控
var (
	PedidosCreados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "burgertic_pedidos_creados_total",
		Help: "Pedidos creados con éxito.",
	})

	Transiciones = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "burgertic_pedido_transiciones_total",
		Help: "Transiciones de estado aplicadas, por acción.",
	}, []string{"accion"})

	PedidosEliminados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "burgertic_pedidos_eliminados_total",
		Help: "Pedidos eliminados.",
	})

	Errores = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "burgertic_errores_total",
		Help: "Errores por tipo (validacion, prohibido, no_encontrado, transicion, almacenamiento, mq).",
	}, []string{"tipo"})

	EventosPublicados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "burgertic_eventos_publicados_total",
		Help: "Eventos de pedido publicados en la cola.",
	})
)

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

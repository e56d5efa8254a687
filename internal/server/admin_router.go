package server

import (
	"github.com/kataras/iris/v12"

	"github.com/Simiraider/tp5-burgertic/internal/config"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
	"github.com/Simiraider/tp5-burgertic/internal/infra/mq"
	"github.com/Simiraider/tp5-burgertic/internal/infra/redis"
	"github.com/Simiraider/tp5-burgertic/internal/metrics"
	"github.com/Simiraider/tp5-burgertic/internal/repository/mysql"
	"github.com/Simiraider/tp5-burgertic/internal/service"
)

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由。
// 端口通常是 8081，只在内网暴露，调用方视为管理员。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 仓储与服务
	platoRepo := mysql.NewPlatoRepository(db)
	pedidoRepo := mysql.NewPedidoRepository(db)

	platoSvc := service.NewPlatoService(platoRepo, redisClient)
	pedidoSvc := service.NewPedidoService(db, pedidoRepo, platoSvc, mqConn)

	// Prometheus 指标
	app.Get("/metrics", iris.FromStd(metrics.Handler()))

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// ---------- 菜品管理 ----------

	api.Get("/platos", func(ctx iris.Context) {
		list, err := platoSvc.ListAll(ctx.Request().Context())
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Post("/platos", func(ctx iris.Context) {
		var p plato.Plato
		if err := ctx.ReadJSON(&p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := platoSvc.Create(ctx.Request().Context(), &p); err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	api.Put("/platos/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		var p plato.Plato
		if err := ctx.ReadJSON(&p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p.ID = id
		if err := platoSvc.Update(ctx.Request().Context(), &p); err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	api.Delete("/platos/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		if err := platoSvc.Delete(ctx.Request().Context(), id); err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0})
	})

	// ---------- 订单管理 ----------

	api.Get("/pedidos", func(ctx iris.Context) {
		list, err := pedidoSvc.Listar(ctx.Request().Context(), true)
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Get("/pedidos/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		d, err := pedidoSvc.ObtenerPorID(ctx.Request().Context(), id, 0, true)
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": d})
	})

	api.Put("/pedidos/{id:uint64}/{accion:string}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		p, err := pedidoSvc.Transicionar(ctx.Request().Context(), id, ctx.Params().Get("accion"), true)
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	api.Delete("/pedidos/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		if err := pedidoSvc.Eliminar(ctx.Request().Context(), id, true); err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0})
	})
}

package server

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/Simiraider/tp5-burgertic/internal/auth"
	"github.com/Simiraider/tp5-burgertic/internal/config"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
	"github.com/Simiraider/tp5-burgertic/internal/infra/mq"
	"github.com/Simiraider/tp5-burgertic/internal/infra/redis"
	"github.com/Simiraider/tp5-burgertic/internal/middleware"
	"github.com/Simiraider/tp5-burgertic/internal/repository/mysql"
	"github.com/Simiraider/tp5-burgertic/internal/service"
)

// RegisterRoutes 注册面向顾客的 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 仓储与服务
	usuarioRepo := mysql.NewUsuarioRepository(db)
	platoRepo := mysql.NewPlatoRepository(db)
	pedidoRepo := mysql.NewPedidoRepository(db)

	usuarioSvc := service.NewUsuarioService(usuarioRepo, &cfg.JWT)
	platoSvc := service.NewPlatoService(platoRepo, redisClient)
	pedidoSvc := service.NewPedidoService(db, pedidoRepo, platoSvc, mqConn)

	ring := auth.NewHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(redisClient, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)
	authed := requireAuth(&cfg.JWT, tokenCache)

	// 健康检查
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// ---------- 用户 ----------

	authAPI := app.Party("/auth")

	authAPI.Post("/register", middleware.LoginRateLimit(), func(ctx iris.Context) {
		var req struct {
			Usuario struct {
				Nombre   string `json:"nombre"`
				Apellido string `json:"apellido"`
				Email    string `json:"email"`
				Password string `json:"password"`
			} `json:"usuario"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		u, err := usuarioSvc.Register(ctx.Request().Context(), req.Usuario.Nombre, req.Usuario.Apellido, req.Usuario.Email, req.Usuario.Password)
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	authAPI.Post("/login", middleware.LoginRateLimit(), func(ctx iris.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		u, token, err := usuarioSvc.Login(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"usuario": u, "token": token}})
	})

	authAPI.Get("/verify", authed, func(ctx iris.Context) {
		u, err := usuarioSvc.GetByID(ctx.Request().Context(), callerID(ctx))
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	// ---------- 菜品（公开读） ----------

	platosAPI := app.Party("/platos")

	platosAPI.Get("/", func(ctx iris.Context) {
		list, err := platoSvc.ListAll(ctx.Request().Context())
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	platosAPI.Get("/tipo/{tipo:string}", func(ctx iris.Context) {
		list, err := platoSvc.ListByTipo(ctx.Request().Context(), ctx.Params().Get("tipo"))
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	platosAPI.Get("/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		p, err := platoSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// ---------- 菜品（管理员写） ----------

	platosAPI.Post("/", authed, func(ctx iris.Context) {
		if !callerIsAdmin(ctx) {
			ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": "se requieren permisos de administrador"})
			return
		}
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

	platosAPI.Put("/{id:uint64}", authed, func(ctx iris.Context) {
		if !callerIsAdmin(ctx) {
			ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": "se requieren permisos de administrador"})
			return
		}
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

	platosAPI.Delete("/{id:uint64}", authed, func(ctx iris.Context) {
		if !callerIsAdmin(ctx) {
			ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": "se requieren permisos de administrador"})
			return
		}
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		if err := platoSvc.Delete(ctx.Request().Context(), id); err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0})
	})

	// ---------- 订单 ----------

	pedidosAPI := app.Party("/pedidos", authed)

	// 下单
	pedidosAPI.Post("/", middleware.PedidoRateLimit(), func(ctx iris.Context) {
		var req struct {
			Platos []service.LineaPedido `json:"platos"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p, err := pedidoSvc.Crear(ctx.Request().Context(), callerID(ctx), req.Platos)
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.StatusCode(201)
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 全部订单（仅管理员，服务层再校验一次）
	pedidosAPI.Get("/", func(ctx iris.Context) {
		list, err := pedidoSvc.Listar(ctx.Request().Context(), callerIsAdmin(ctx))
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 当前用户自己的订单
	pedidosAPI.Get("/usuario", func(ctx iris.Context) {
		list, err := pedidoSvc.ListarPorUsuario(ctx.Request().Context(), callerID(ctx))
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 单个订单详情（本人或管理员）
	pedidosAPI.Get("/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		d, err := pedidoSvc.ObtenerPorID(ctx.Request().Context(), id, callerID(ctx), callerIsAdmin(ctx))
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": d})
	})

	// 状态流转：aceptar / comenzar / entregar
	pedidosAPI.Put("/{id:uint64}/{accion:string}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		p, err := pedidoSvc.Transicionar(ctx.Request().Context(), id, ctx.Params().Get("accion"), callerIsAdmin(ctx))
		if err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 删除订单
	pedidosAPI.Delete("/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		id := int64(pid)
		if err := pedidoSvc.Eliminar(ctx.Request().Context(), id, callerIsAdmin(ctx)); err != nil {
			failJSON(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0})
	})
}

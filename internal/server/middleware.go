package server

import (
	"errors"
	"strings"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/Simiraider/tp5-burgertic/internal/auth"
	"github.com/Simiraider/tp5-burgertic/internal/config"
	"github.com/Simiraider/tp5-burgertic/internal/service"
)

// requireAuth 解析 Bearer 令牌并注入调用者身份。
// 命中 TokenCache 时跳过验签，未命中则解析后回填缓存。
func requireAuth(cfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "token no proporcionado"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, hit, err := cache.Get(ctx.Request().Context(), token)
		if err != nil || !hit {
			claims, err = auth.ParseToken(cfg, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "token inválido"})
				return
			}
			if err := cache.Set(ctx.Request().Context(), token, claims); err != nil {
				zap.L().Warn("no se pudo cachear el token", zap.Error(err))
			}
		}

		ctx.Values().Set("usuario_id", claims.UsuarioID)
		ctx.Values().Set("admin", claims.Admin)
		ctx.Next()
	}
}

func callerID(ctx iris.Context) int64 {
	return ctx.Values().GetInt64Default("usuario_id", 0)
}

func callerIsAdmin(ctx iris.Context) bool {
	return ctx.Values().GetBoolDefault("admin", false)
}

// failJSON 将业务错误映射为 HTTP 状态码
func failJSON(ctx iris.Context, err error) {
	code := 500
	switch {
	case errors.Is(err, service.ErrValidacion):
		code = 400
	case errors.Is(err, service.ErrNoAutenticado):
		code = 401
	case errors.Is(err, service.ErrProhibido):
		code = 403
	case errors.Is(err, service.ErrNoEncontrado):
		code = 404
	case errors.Is(err, service.ErrTransicionInvalida):
		code = 409
	}
	ctx.StopWithJSON(code, iris.Map{"code": code, "msg": err.Error()})
}

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Simiraider/tp5-burgertic/internal/config"
)

type Claims struct {
	UsuarioID int64 `json:"usuario_id"`
	Admin     bool  `json:"admin"`
	jwt.RegisteredClaims
}

// GenerateToken 生成 JWT，有效期由配置决定
func GenerateToken(cfg *config.JWTConfig, usuarioID int64, admin bool) (string, error) {
	expire := time.Duration(cfg.ExpireMinutes) * time.Minute
	if expire <= 0 {
		expire = 30 * time.Minute
	}
	now := time.Now()
	claims := Claims{
		UsuarioID: usuarioID,
		Admin:     admin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析 JWT
func ParseToken(cfg *config.JWTConfig, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

package service

import (
	"errors"

	"gorm.io/gorm"
)

// 业务错误类型，路由层据此映射 HTTP 状态码
var (
	// ErrValidacion 输入不合法（空订单、数量非正、菜品不存在等）
	ErrValidacion = errors.New("datos inválidos")
	// ErrNoAutenticado 凭证缺失或无效
	ErrNoAutenticado = errors.New("no autenticado")
	// ErrProhibido 已认证但权限不足
	ErrProhibido = errors.New("acceso denegado")
	// ErrNoEncontrado 引用的记录不存在
	ErrNoEncontrado = errors.New("no encontrado")
	// ErrTransicionInvalida 动作在当前订单状态下不合法
	ErrTransicionInvalida = errors.New("transición de estado inválida")
	// ErrAlmacenamiento 持久层故障
	ErrAlmacenamiento = errors.New("error de almacenamiento")
)

// notFound 判断是否为 gorm 的记录不存在错误
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

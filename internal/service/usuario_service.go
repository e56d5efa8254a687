package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simiraider/tp5-burgertic/internal/auth"
	"github.com/Simiraider/tp5-burgertic/internal/config"
	"github.com/Simiraider/tp5-burgertic/internal/datamodels/usuario"
)

type UsuarioService struct {
	repo usuario.Repository
	jwt  *config.JWTConfig
}

func NewUsuarioService(repo usuario.Repository, jwt *config.JWTConfig) *UsuarioService {
	return &UsuarioService{repo: repo, jwt: jwt}
}

// Register 注册新用户，email 唯一，密码 bcrypt 存储
func (s *UsuarioService) Register(ctx context.Context, nombre, apellido, email, password string) (*usuario.Usuario, error) {
	if nombre == "" || apellido == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: faltan campos por llenar", ErrValidacion)
	}
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: el email ya está registrado", ErrValidacion)
	} else if err != nil && !notFound(err) {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &usuario.Usuario{
		Nombre:   nombre,
		Apellido: apellido,
		Email:    email,
		Password: string(hash),
		Admin:    false,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	return u, nil
}

// Login 校验密码并签发 JWT
func (s *UsuarioService) Login(ctx context.Context, email, password string) (*usuario.Usuario, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email y password son requeridos", ErrValidacion)
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if notFound(err) {
			return nil, "", fmt.Errorf("%w: credenciales inválidas", ErrNoAutenticado)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%w: credenciales inválidas", ErrNoAutenticado)
	}
	token, err := auth.GenerateToken(s.jwt, u.ID, u.Admin)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetByID 按 ID 查询用户（verify 接口用）
func (s *UsuarioService) GetByID(ctx context.Context, id int64) (*usuario.Usuario, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: usuario %d", ErrNoEncontrado, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	return u, nil
}

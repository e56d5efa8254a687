package service

import (
	"context"
	"encoding/json"
	"fmt"

	radix "github.com/mediocregopher/radix/v3"

	"github.com/Simiraider/tp5-burgertic/internal/datamodels/plato"
)

const (
	platoCacheKey = "plato:%d"
	platoCacheTTL = 300 // 秒
)

// PlatoService 菜品服务，GetByID 带 Redis 读缓存（redis 为 nil 时直查库）
type PlatoService struct {
	repo  plato.Repository
	redis radix.Client
}

func NewPlatoService(repo plato.Repository, redis radix.Client) *PlatoService {
	return &PlatoService{repo: repo, redis: redis}
}

func (s *PlatoService) cacheGet(id int64) *plato.Plato {
	if s.redis == nil {
		return nil
	}
	var raw string
	if err := s.redis.Do(radix.Cmd(&raw, "GET", fmt.Sprintf(platoCacheKey, id))); err != nil || raw == "" {
		return nil
	}
	var p plato.Plato
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

func (s *PlatoService) cacheSet(p *plato.Plato) {
	if s.redis == nil || p == nil {
		return
	}
	body, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = s.redis.Do(radix.FlatCmd(nil, "SETEX", fmt.Sprintf(platoCacheKey, p.ID), platoCacheTTL, body))
}

func (s *PlatoService) cacheDel(id int64) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Do(radix.Cmd(nil, "DEL", fmt.Sprintf(platoCacheKey, id)))
}

func (s *PlatoService) GetByID(ctx context.Context, id int64) (*plato.Plato, error) {
	if p := s.cacheGet(id); p != nil {
		return p, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: plato %d", ErrNoEncontrado, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	s.cacheSet(p)
	return p, nil
}

func (s *PlatoService) ListAll(ctx context.Context) ([]*plato.Plato, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	return list, nil
}

func (s *PlatoService) ListByTipo(ctx context.Context, tipo string) ([]*plato.Plato, error) {
	if !plato.TipoValido(tipo) {
		return nil, fmt.Errorf("%w: tipo %q desconocido", ErrValidacion, tipo)
	}
	list, err := s.repo.ListByTipo(ctx, tipo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	return list, nil
}

func validatePlato(p *plato.Plato) error {
	if !plato.TipoValido(p.Tipo) {
		return fmt.Errorf("%w: tipo %q desconocido", ErrValidacion, p.Tipo)
	}
	if p.Nombre == "" || len(p.Nombre) > 70 {
		return fmt.Errorf("%w: nombre vacío o demasiado largo", ErrValidacion)
	}
	if p.Descripcion == "" || len(p.Descripcion) > 400 {
		return fmt.Errorf("%w: descripción vacía o demasiado larga", ErrValidacion)
	}
	if p.Precio < 0 {
		return fmt.Errorf("%w: el precio no puede ser negativo", ErrValidacion)
	}
	return nil
}

func (s *PlatoService) Create(ctx context.Context, p *plato.Plato) error {
	if err := validatePlato(p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	return nil
}

func (s *PlatoService) Update(ctx context.Context, p *plato.Plato) error {
	if err := validatePlato(p); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, p.ID); err != nil {
		if notFound(err) {
			return fmt.Errorf("%w: plato %d", ErrNoEncontrado, p.ID)
		}
		return fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	s.cacheDel(p.ID)
	return nil
}

func (s *PlatoService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if notFound(err) {
			return fmt.Errorf("%w: plato %d", ErrNoEncontrado, id)
		}
		return fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrAlmacenamiento, err)
	}
	s.cacheDel(id)
	return nil
}

package services

import (
	"context"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"
)

type FavoritoService interface {
	Alternar(ctx context.Context, usuarioID, propiedadID uint) (bool, error)
	Listar(ctx context.Context, usuarioID uint) ([]domain.PropiedadListado, error)
}

type favoritoService struct {
	favoritos   repositories.FavoritoRepository
	propiedades repositories.PropiedadRepository
}

// NewFavoritoService crea una nueva instancia del servicio
func NewFavoritoService(favoritos repositories.FavoritoRepository, propiedades repositories.PropiedadRepository) FavoritoService {
	return &favoritoService{favoritos: favoritos, propiedades: propiedades}
}

// Alternar agrega o quita la propiedad de los favoritos del usuario
func (s *favoritoService) Alternar(ctx context.Context, usuarioID, propiedadID uint) (bool, error) {
	existe, err := s.propiedades.Existe(ctx, propiedadID)
	if err != nil {
		return false, err
	}
	if !existe {
		return false, fmt.Errorf("propiedad %d: %w", propiedadID, domain.ErrNotFound)
	}
	return s.favoritos.Alternar(ctx, usuarioID, propiedadID)
}

func (s *favoritoService) Listar(ctx context.Context, usuarioID uint) ([]domain.PropiedadListado, error) {
	return s.favoritos.Listar(ctx, usuarioID)
}

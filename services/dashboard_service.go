package services

import (
	"context"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"

	"golang.org/x/sync/errgroup"
)

const consultasRecientesVendedor = 10

type DashboardService interface {
	Vendedor(ctx context.Context, vendedorID uint) (*dto.DashboardVendedorResponse, error)
	Admin(ctx context.Context) (*domain.EstadisticasAdmin, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
}

// NewDashboardService crea una nueva instancia del servicio
func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Vendedor(ctx context.Context, vendedorID uint) (*dto.DashboardVendedorResponse, error) {
	res := &dto.DashboardVendedorResponse{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		props, err := s.repo.PropiedadesDeVendedor(gctx, vendedorID)
		res.Propiedades = props
		return err
	})
	g.Go(func() error {
		est, err := s.repo.EstadisticasDeVendedor(gctx, vendedorID)
		if err == nil {
			res.Estadisticas = *est
		}
		return err
	})
	g.Go(func() error {
		cs, err := s.repo.ConsultasRecientes(gctx, vendedorID, consultasRecientesVendedor)
		res.ConsultasRecientes = cs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *dashboardService) Admin(ctx context.Context) (*domain.EstadisticasAdmin, error) {
	return s.repo.EstadisticasGenerales(ctx)
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/mailer"
	"github.com/integralvisionpss-art/inmobiliaria/metrics"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"

	"go.uber.org/zap"
)

type ConsultaService interface {
	Crear(ctx context.Context, req dto.CrearConsultaRequest) (uint, error)
}

type consultaService struct {
	consultas   repositories.ConsultaRepository
	propiedades repositories.PropiedadRepository
	mailer      mailer.Mailer
	metrics     *metrics.Metrics
	log         *zap.Logger
}

// NewConsultaService crea una nueva instancia del servicio
func NewConsultaService(consultas repositories.ConsultaRepository, propiedades repositories.PropiedadRepository, m mailer.Mailer, met *metrics.Metrics, log *zap.Logger) ConsultaService {
	return &consultaService{consultas: consultas, propiedades: propiedades, mailer: m, metrics: met, log: log}
}

// Crear guarda la consulta y avisa al vendedor por email en segundo plano
func (s *consultaService) Crear(ctx context.Context, req dto.CrearConsultaRequest) (uint, error) {
	if strings.TrimSpace(req.Mensaje) == "" {
		return 0, fmt.Errorf("%w: el mensaje es requerido", domain.ErrValidation)
	}

	prop, err := s.propiedades.ObtenerPorID(ctx, req.PropiedadID)
	if err != nil {
		return 0, err
	}

	c := &domain.Consulta{
		PropiedadID: req.PropiedadID,
		UsuarioID:   req.UsuarioID,
		Nombre:      req.Nombre,
		Email:       req.Email,
		Telefono:    req.Telefono,
		Mensaje:     req.Mensaje,
	}
	if err := s.consultas.Crear(ctx, c); err != nil {
		return 0, err
	}
	s.metrics.ConsultasRecibidas.Inc()

	if prop.VendedorEmail != nil && *prop.VendedorEmail != "" {
		para, titulo, consulta := *prop.VendedorEmail, prop.Titulo, *c
		go func() {
			mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
			defer cancel()
			if err := s.mailer.NotificarConsulta(mctx, para, titulo, consulta); err != nil {
				s.log.Warn("No se pudo notificar al vendedor",
					zap.Uint("consulta_id", consulta.ID),
					zap.Error(err))
			}
		}()
	}

	return c.ID, nil
}

package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/events"
	"github.com/integralvisionpss-art/inmobiliaria/metrics"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	LimitePorDefecto = 12
	LimiteMaximo     = 100
	maxSimilares     = 4
	relecturaTimeout = 5 * time.Second
)

// PropiedadService define la búsqueda, el detalle y la publicación de propiedades
type PropiedadService interface {
	Buscar(ctx context.Context, req dto.BuscarPropiedadesRequest) (*dto.ResultadoBusqueda, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.PropiedadDetalle, error)
	Crear(ctx context.Context, vendedorID uint, req dto.CrearPropiedadRequest) (*dto.PropiedadDetalle, error)
	CambiarEstado(ctx context.Context, usuario *domain.Usuario, id uint, estado string) (domain.EstadoPropiedad, error)
}

type propiedadService struct {
	repo      repositories.PropiedadRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// NewPropiedadService crea una nueva instancia del servicio
func NewPropiedadService(repo repositories.PropiedadRepository, publisher events.Publisher, m *metrics.Metrics, log *zap.Logger) PropiedadService {
	return &propiedadService{repo: repo, publisher: publisher, metrics: m, log: log}
}

// Buscar aplica los filtros sobre las propiedades disponibles y pagina
func (s *propiedadService) Buscar(ctx context.Context, req dto.BuscarPropiedadesRequest) (*dto.ResultadoBusqueda, error) {
	if err := validarBusqueda(&req); err != nil {
		return nil, err
	}

	offset := (req.Page - 1) * req.Limit
	pred := repositories.PredicadoBusquedaPublica(req.Filtros)

	filas, total, err := s.repo.Buscar(ctx, pred, req.Limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(filas))
	for i, f := range filas {
		ids[i] = f.ID
	}
	fotos, cars, err := s.hidratar(ctx, ids)
	if err != nil {
		return nil, err
	}

	resumenes := make([]dto.PropiedadResumen, len(filas))
	for i, f := range filas {
		urls := make([]string, 0, len(fotos[f.ID]))
		for _, foto := range fotos[f.ID] {
			urls = append(urls, foto.URLFoto)
		}
		resumenes[i] = dto.PropiedadResumen{
			PropiedadListado: f,
			Fotos:            urls,
			Caracteristicas:  noNil(cars[f.ID]),
		}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}

	return &dto.ResultadoBusqueda{
		Propiedades: resumenes,
		Paginacion: dto.Paginacion{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// ObtenerPorID devuelve el detalle y después suma una vista.
// La respuesta lleva el valor de vistas previo al incremento.
func (s *propiedadService) ObtenerPorID(ctx context.Context, id uint) (*dto.PropiedadDetalle, error) {
	detalle, err := s.detalle(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementarVistas(ctx, id); err != nil {
		s.log.Warn("No se pudo incrementar vistas", zap.Uint("propiedad_id", id), zap.Error(err))
	} else {
		s.metrics.VistasRegistradas.Inc()
	}

	return detalle, nil
}

// Crear valida, guarda todo en una transacción y devuelve la propiedad releída
func (s *propiedadService) Crear(ctx context.Context, vendedorID uint, req dto.CrearPropiedadRequest) (*dto.PropiedadDetalle, error) {
	if err := validarCreacion(&req); err != nil {
		return nil, err
	}

	p := &domain.Propiedad{
		Titulo:          strings.TrimSpace(req.Titulo),
		Descripcion:     strings.TrimSpace(req.Descripcion),
		Tipo:            strings.TrimSpace(req.Tipo),
		Operacion:       domain.Operacion(req.Operacion),
		Precio:          req.Precio,
		Moneda:          req.Moneda,
		Ciudad:          strings.TrimSpace(req.Ciudad),
		Barrio:          req.Barrio,
		Direccion:       req.Direccion,
		Latitud:         req.Latitud,
		Longitud:        req.Longitud,
		Habitaciones:    req.Habitaciones,
		Banos:           req.Banos,
		MetrosCuadrados: req.MetrosCuadrados,
		Antiguedad:      req.Antiguedad,
		Estado:          domain.EstadoDisponible,
		VendedorID:      vendedorID,
	}

	fotos := make([]domain.Foto, 0, len(req.Fotos))
	for _, url := range req.Fotos {
		fotos = append(fotos, domain.Foto{URLFoto: url})
	}

	cars := make([]domain.Caracteristica, 0, len(req.Caracteristicas))
	for _, c := range req.Caracteristicas {
		if c.Valor == "" {
			continue
		}
		cars = append(cars, domain.Caracteristica{Caracteristica: c.Caracteristica, Valor: c.Valor})
	}

	if err := s.repo.Crear(ctx, p, fotos, cars); err != nil {
		return nil, err
	}
	s.metrics.PropiedadesCreadas.Inc()
	s.log.Info("Propiedad creada",
		zap.Uint("propiedad_id", p.ID),
		zap.Uint("vendedor_id", vendedorID),
		zap.Int("fotos", len(fotos)),
		zap.Int("caracteristicas", len(cars)))

	s.publicar(ctx, events.AccionCrear, p.ID)

	// La propiedad ya está guardada: la relectura no depende del deadline del pedido
	lectura, cancel := context.WithTimeout(context.WithoutCancel(ctx), relecturaTimeout)
	defer cancel()
	return s.detalle(lectura, p.ID, false)
}

// CambiarEstado aplica disponible -> vendida | alquilada.
// Un vendedor solo puede cambiar sus propias publicaciones.
func (s *propiedadService) CambiarEstado(ctx context.Context, usuario *domain.Usuario, id uint, estado string) (domain.EstadoPropiedad, error) {
	nuevo := domain.EstadoPropiedad(estado)

	actual, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return "", err
	}
	if usuario.Rol != domain.RolAdmin && actual.VendedorID != usuario.ID {
		return "", fmt.Errorf("la propiedad %d es de otro vendedor: %w", id, domain.ErrForbidden)
	}
	if !actual.Estado.PuedeCambiarA(nuevo) {
		return "", fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrValidation, actual.Estado, estado)
	}

	if err := s.repo.CambiarEstado(ctx, id, actual.Estado, nuevo); err != nil {
		return "", err
	}

	s.publicar(ctx, events.AccionActualizar, id)
	return nuevo, nil
}

// detalle arma la respuesta de una propiedad sin tocar las vistas
func (s *propiedadService) detalle(ctx context.Context, id uint, conSimilares bool) (*dto.PropiedadDetalle, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		fotos     map[uint][]domain.Foto
		cars      map[uint][]domain.Caracteristica
		similares []domain.PropiedadListado
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fotos, err = s.repo.FotosDe(gctx, []uint{id})
		return err
	})
	g.Go(func() error {
		var err error
		cars, err = s.repo.CaracteristicasDe(gctx, []uint{id})
		return err
	})
	if conSimilares {
		g.Go(func() error {
			var err error
			similares, err = s.repo.Similares(gctx, &p.Propiedad, maxSimilares)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &dto.PropiedadDetalle{
		PropiedadListado: *p,
		Fotos:            noNil(fotos[id]),
		Caracteristicas:  noNil(cars[id]),
	}
	if conSimilares {
		sim := noNil(similares)
		d.Similares = &sim
	}
	return d, nil
}

func (s *propiedadService) hidratar(ctx context.Context, ids []uint) (map[uint][]domain.Foto, map[uint][]domain.Caracteristica, error) {
	var (
		fotos map[uint][]domain.Foto
		cars  map[uint][]domain.Caracteristica
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fotos, err = s.repo.FotosDe(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		cars, err = s.repo.CaracteristicasDe(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fotos, cars, nil
}

// publicar no falla la operación: el evento es de mejor esfuerzo
func (s *propiedadService) publicar(ctx context.Context, accion string, id uint) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	ev := events.Evento{Action: accion, PropertyID: strconv.FormatUint(uint64(id), 10)}
	if err := s.publisher.Publicar(ctx, ev); err != nil {
		s.metrics.EventosNoPublicados.Inc()
		s.log.Warn("No se pudo publicar el evento",
			zap.String("action", accion),
			zap.Uint("propiedad_id", id),
			zap.Error(err))
	}
}

func validarBusqueda(req *dto.BuscarPropiedadesRequest) error {
	// Aplicar valores por defecto
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = LimitePorDefecto
	}

	if req.Limit < 0 || req.Limit > LimiteMaximo {
		return fmt.Errorf("%w: limit debe estar entre 1 y %d", domain.ErrValidation, LimiteMaximo)
	}
	// el offset (page-1)*limit tiene que entrar en un int
	if req.Page-1 > math.MaxInt/req.Limit {
		return fmt.Errorf("%w: page fuera de rango", domain.ErrValidation)
	}

	f := req.Filtros
	if !finito(f.MinPrecio) || !finito(f.MaxPrecio) {
		return fmt.Errorf("%w: el precio debe ser un número", domain.ErrValidation)
	}
	if (f.MinPrecio != nil && *f.MinPrecio < 0) || (f.MaxPrecio != nil && *f.MaxPrecio < 0) {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidation)
	}
	if f.MinPrecio != nil && f.MaxPrecio != nil && *f.MinPrecio > *f.MaxPrecio {
		return fmt.Errorf("%w: minPrecio no puede ser mayor que maxPrecio", domain.ErrValidation)
	}
	if (f.MinHabitaciones != nil && *f.MinHabitaciones < 0) || (f.MaxHabitaciones != nil && *f.MaxHabitaciones < 0) {
		return fmt.Errorf("%w: las habitaciones no pueden ser negativas", domain.ErrValidation)
	}
	return nil
}

func finito(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

func validarCreacion(req *dto.CrearPropiedadRequest) error {
	requeridos := []string{req.Titulo, req.Descripcion, req.Tipo, req.Operacion, req.Ciudad}
	for _, v := range requeridos {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: faltan campos requeridos", domain.ErrValidation)
		}
	}
	if req.Precio <= 0 {
		return fmt.Errorf("%w: faltan campos requeridos", domain.ErrValidation)
	}
	if !domain.Operacion(req.Operacion).Valida() {
		return fmt.Errorf("%w: operacion debe ser venta o alquiler", domain.ErrValidation)
	}
	if req.Habitaciones < 0 || req.Banos < 0 || req.MetrosCuadrados < 0 || req.Antiguedad < 0 {
		return fmt.Errorf("%w: los valores numéricos no pueden ser negativos", domain.ErrValidation)
	}

	if req.Moneda == "" {
		req.Moneda = "USD"
	}
	if len(req.Moneda) != 3 {
		return fmt.Errorf("%w: moneda debe ser un código de 3 letras", domain.ErrValidation)
	}
	for i, url := range req.Fotos {
		if strings.TrimSpace(url) == "" {
			return fmt.Errorf("%w: la foto %d no tiene url", domain.ErrValidation, i+1)
		}
	}
	for _, c := range req.Caracteristicas {
		if strings.TrimSpace(c.Caracteristica) == "" && c.Valor != "" {
			return fmt.Errorf("%w: característica sin nombre", domain.ErrValidation)
		}
	}
	return nil
}

func noNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

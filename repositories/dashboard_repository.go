package repositories

import (
	"context"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardRepository interface {
	PropiedadesDeVendedor(ctx context.Context, vendedorID uint) ([]domain.PropiedadVendedor, error)
	EstadisticasDeVendedor(ctx context.Context, vendedorID uint) (*domain.EstadisticasVendedor, error)
	ConsultasRecientes(ctx context.Context, vendedorID uint, limite int) ([]domain.ConsultaReciente, error)
	EstadisticasGenerales(ctx context.Context) (*domain.EstadisticasAdmin, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository crea una nueva instancia del repositorio
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) PropiedadesDeVendedor(ctx context.Context, vendedorID uint) ([]domain.PropiedadVendedor, error) {
	filas := []domain.PropiedadVendedor{}
	err := r.db.WithContext(ctx).
		Table("propiedades p").
		Select("p.*, "+
			"(SELECT COUNT(*) FROM propiedad_fotos f WHERE f.propiedad_id = p.id) AS total_fotos, "+
			"(SELECT COUNT(*) FROM consultas c WHERE c.propiedad_id = p.id) AS total_consultas, "+
			subconsultaFotoPrincipal).
		Where("p.vendedor_id = ?", vendedorID).
		Order("p.fecha_creacion DESC, p.id DESC").
		Scan(&filas).Error
	if err != nil {
		return nil, fmt.Errorf("propiedades del vendedor %d: %w", vendedorID, err)
	}
	return filas, nil
}

func (r *dashboardRepository) EstadisticasDeVendedor(ctx context.Context, vendedorID uint) (*domain.EstadisticasVendedor, error) {
	var est domain.EstadisticasVendedor
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN estado = ? THEN 1 ELSE 0 END), 0) AS disponibles,
		       COALESCE(SUM(CASE WHEN estado IN (?, ?) THEN 1 ELSE 0 END), 0) AS vendidas_alquiladas,
		       COALESCE(SUM(CASE WHEN destacada = ? THEN 1 ELSE 0 END), 0) AS destacadas
		FROM propiedades
		WHERE vendedor_id = ?`,
		domain.EstadoDisponible, domain.EstadoVendida, domain.EstadoAlquilada, true, vendedorID,
	).Scan(&est).Error
	if err != nil {
		return nil, fmt.Errorf("estadísticas del vendedor %d: %w", vendedorID, err)
	}
	return &est, nil
}

func (r *dashboardRepository) ConsultasRecientes(ctx context.Context, vendedorID uint, limite int) ([]domain.ConsultaReciente, error) {
	filas := []domain.ConsultaReciente{}
	err := r.db.WithContext(ctx).
		Table("consultas c").
		Select("c.*, p.titulo AS propiedad_titulo").
		Joins("JOIN propiedades p ON c.propiedad_id = p.id").
		Where("p.vendedor_id = ?", vendedorID).
		Order("c.fecha_consulta DESC, c.id DESC").
		Limit(limite).
		Scan(&filas).Error
	if err != nil {
		return nil, fmt.Errorf("consultas recientes del vendedor %d: %w", vendedorID, err)
	}
	return filas, nil
}

// EstadisticasGenerales arma el panel del administrador; cada consulta es
// independiente así que se ejecutan en paralelo.
func (r *dashboardRepository) EstadisticasGenerales(ctx context.Context) (*domain.EstadisticasAdmin, error) {
	est := &domain.EstadisticasAdmin{}
	g, gctx := errgroup.WithContext(ctx)

	contar := func(modelo interface{}, destino *int64) {
		g.Go(func() error {
			return r.db.WithContext(gctx).Model(modelo).Count(destino).Error
		})
	}
	contar(&domain.Propiedad{}, &est.Totales.Propiedades)
	contar(&domain.Usuario{}, &est.Totales.Usuarios)
	contar(&domain.Consulta{}, &est.Totales.Consultas)

	agrupar := func(modelo interface{}, columna string, ordenar bool, destino *[]domain.Conteo) {
		g.Go(func() error {
			filas := []domain.Conteo{}
			q := r.db.WithContext(gctx).Model(modelo).
				Select(columna + " AS valor, COUNT(*) AS cantidad").
				Group(columna)
			if ordenar {
				q = q.Order("cantidad DESC")
			}
			if err := q.Scan(&filas).Error; err != nil {
				return err
			}
			for i := range filas {
				filas[i].Clave = columna
			}
			*destino = filas
			return nil
		})
	}
	agrupar(&domain.Propiedad{}, "tipo", true, &est.PropiedadesPorTipo)
	agrupar(&domain.Propiedad{}, "operacion", false, &est.PropiedadesPorOperacion)
	agrupar(&domain.Usuario{}, "rol", false, &est.UsuariosPorRol)
	agrupar(&domain.Consulta{}, "estado", false, &est.ConsultasPorEstado)

	g.Go(func() error {
		filas := []domain.PropiedadListado{}
		err := r.db.WithContext(gctx).
			Table("propiedades p").
			Select("p.*, u.nombre AS vendedor_nombre, " + subconsultaFotoPrincipal).
			Joins("JOIN usuarios u ON p.vendedor_id = u.id").
			Order("p.fecha_creacion DESC, p.id DESC").
			Limit(5).
			Scan(&filas).Error
		est.PropiedadesRecientes = filas
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("estadísticas generales: %w", err)
	}
	return est, nil
}

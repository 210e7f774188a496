package repositories

import (
	"context"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Foto principal = la de menor orden
const subconsultaFotoPrincipal = `(SELECT f.url_foto FROM propiedad_fotos f WHERE f.propiedad_id = p.id ORDER BY f.orden LIMIT 1) AS foto_principal`

const ordenListado = "p.destacada DESC, p.fecha_creacion DESC, p.id DESC"

// PropiedadRepository define el acceso a propiedades, fotos y características
type PropiedadRepository interface {
	Buscar(ctx context.Context, pred Predicado, limit, offset int) ([]domain.PropiedadListado, int64, error)
	ObtenerPorID(ctx context.Context, id uint) (*domain.PropiedadListado, error)
	FotosDe(ctx context.Context, ids []uint) (map[uint][]domain.Foto, error)
	CaracteristicasDe(ctx context.Context, ids []uint) (map[uint][]domain.Caracteristica, error)
	Similares(ctx context.Context, p *domain.Propiedad, limite int) ([]domain.PropiedadListado, error)
	IncrementarVistas(ctx context.Context, id uint) error
	Crear(ctx context.Context, p *domain.Propiedad, fotos []domain.Foto, caracteristicas []domain.Caracteristica) error
	CambiarEstado(ctx context.Context, id uint, actual, nuevo domain.EstadoPropiedad) error
	Existe(ctx context.Context, id uint) (bool, error)
}

type propiedadRepository struct {
	db *gorm.DB
}

// NewPropiedadRepository crea una nueva instancia del repositorio
func NewPropiedadRepository(db *gorm.DB) PropiedadRepository {
	return &propiedadRepository{db: db}
}

// Buscar ejecuta la página pedida y el COUNT con el mismo predicado en paralelo
func (r *propiedadRepository) Buscar(ctx context.Context, pred Predicado, limit, offset int) ([]domain.PropiedadListado, int64, error) {
	var (
		filas []domain.PropiedadListado
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := r.db.WithContext(gctx).
			Table("propiedades p").
			Select("p.*, u.nombre AS vendedor_nombre, u.telefono AS vendedor_telefono, " + subconsultaFotoPrincipal).
			Joins("LEFT JOIN usuarios u ON p.vendedor_id = u.id")
		q = pred.Aplicar(q)
		if err := q.Order(ordenListado).Limit(limit).Offset(offset).Scan(&filas).Error; err != nil {
			return fmt.Errorf("buscando propiedades: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		q := pred.Aplicar(r.db.WithContext(gctx).Table("propiedades p"))
		if err := q.Count(&total).Error; err != nil {
			return fmt.Errorf("contando propiedades: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if filas == nil {
		filas = []domain.PropiedadListado{}
	}
	return filas, total, nil
}

// ObtenerPorID trae la propiedad con los datos de contacto del vendedor
func (r *propiedadRepository) ObtenerPorID(ctx context.Context, id uint) (*domain.PropiedadListado, error) {
	var filas []domain.PropiedadListado
	err := r.db.WithContext(ctx).
		Table("propiedades p").
		Select("p.*, u.nombre AS vendedor_nombre, u.email AS vendedor_email, "+
			"u.telefono AS vendedor_telefono, u.avatar AS vendedor_avatar, "+subconsultaFotoPrincipal).
		Joins("LEFT JOIN usuarios u ON p.vendedor_id = u.id").
		Where("p.id = ?", id).
		Limit(1).
		Scan(&filas).Error
	if err != nil {
		return nil, fmt.Errorf("obteniendo propiedad %d: %w", id, err)
	}
	if len(filas) == 0 {
		return nil, fmt.Errorf("propiedad %d: %w", id, domain.ErrNotFound)
	}
	return &filas[0], nil
}

// FotosDe hidrata las fotos de varias propiedades con una sola consulta
func (r *propiedadRepository) FotosDe(ctx context.Context, ids []uint) (map[uint][]domain.Foto, error) {
	res := make(map[uint][]domain.Foto, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var fotos []domain.Foto
	err := r.db.WithContext(ctx).
		Where("propiedad_id IN ?", ids).
		Order("propiedad_id, orden").
		Find(&fotos).Error
	if err != nil {
		return nil, fmt.Errorf("obteniendo fotos: %w", err)
	}
	for _, f := range fotos {
		res[f.PropiedadID] = append(res[f.PropiedadID], f)
	}
	return res, nil
}

// CaracteristicasDe respeta el orden de inserción dentro de cada propiedad
func (r *propiedadRepository) CaracteristicasDe(ctx context.Context, ids []uint) (map[uint][]domain.Caracteristica, error) {
	res := make(map[uint][]domain.Caracteristica, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var cars []domain.Caracteristica
	err := r.db.WithContext(ctx).
		Where("propiedad_id IN ?", ids).
		Order("propiedad_id, id").
		Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("obteniendo características: %w", err)
	}
	for _, c := range cars {
		res[c.PropiedadID] = append(res[c.PropiedadID], c)
	}
	return res, nil
}

// Similares: mismo tipo y operación, disponibles, sin la propia
func (r *propiedadRepository) Similares(ctx context.Context, p *domain.Propiedad, limite int) ([]domain.PropiedadListado, error) {
	pred := Predicado{Clausulas: []Clausula{
		{Tipo: ClausulaIgualdad, Columna: "p.tipo", Valor: p.Tipo},
		{Tipo: ClausulaIgualdad, Columna: "p.operacion", Valor: string(p.Operacion)},
		{Tipo: ClausulaIgualdad, Columna: "p.estado", Valor: string(domain.EstadoDisponible)},
	}}

	var filas []domain.PropiedadListado
	q := pred.Aplicar(r.db.WithContext(ctx).
		Table("propiedades p").
		Select("p.*, " + subconsultaFotoPrincipal))
	err := q.Where("p.id <> ?", p.ID).
		Order(ordenListado).
		Limit(limite).
		Scan(&filas).Error
	if err != nil {
		return nil, fmt.Errorf("buscando similares de %d: %w", p.ID, err)
	}
	if filas == nil {
		filas = []domain.PropiedadListado{}
	}
	return filas, nil
}

// IncrementarVistas usa UpdateColumn para no tocar fecha_actualizacion
func (r *propiedadRepository) IncrementarVistas(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.Propiedad{}).
		Where("id = ?", id).
		UpdateColumn("vistas", gorm.Expr("COALESCE(vistas, 0) + 1")).Error
}

// Crear inserta la propiedad, sus fotos (orden 1..N) y sus características
// dentro de una única transacción. Cualquier error revierte todo.
func (r *propiedadRepository) Crear(ctx context.Context, p *domain.Propiedad, fotos []domain.Foto, caracteristicas []domain.Caracteristica) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return fmt.Errorf("insertando propiedad: %w", err)
		}

		for i := range fotos {
			fotos[i].PropiedadID = p.ID
			fotos[i].Orden = i + 1
			if err := tx.Omit(clause.Associations).Create(&fotos[i]).Error; err != nil {
				return fmt.Errorf("insertando foto %d: %w", i+1, err)
			}
		}

		for i := range caracteristicas {
			caracteristicas[i].PropiedadID = p.ID
			if err := tx.Omit(clause.Associations).Create(&caracteristicas[i]).Error; err != nil {
				return fmt.Errorf("insertando característica %q: %w", caracteristicas[i].Caracteristica, err)
			}
		}

		return nil
	})
}

// CambiarEstado solo actualiza si el estado sigue siendo el esperado
func (r *propiedadRepository) CambiarEstado(ctx context.Context, id uint, actual, nuevo domain.EstadoPropiedad) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Propiedad{}).
		Where("id = ? AND estado = ?", id, actual).
		Update("estado", nuevo)
	if res.Error != nil {
		return fmt.Errorf("cambiando estado de %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("la propiedad %d ya no está %s: %w", id, actual, domain.ErrConflict)
	}
	return nil
}

func (r *propiedadRepository) Existe(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Propiedad{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("verificando propiedad %d: %w", id, err)
	}
	return n > 0, nil
}

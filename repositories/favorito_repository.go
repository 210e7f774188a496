package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"gorm.io/gorm"
)

type FavoritoRepository interface {
	Alternar(ctx context.Context, usuarioID, propiedadID uint) (bool, error)
	Listar(ctx context.Context, usuarioID uint) ([]domain.PropiedadListado, error)
}

type favoritoRepository struct {
	db *gorm.DB
}

// NewFavoritoRepository crea una nueva instancia del repositorio
func NewFavoritoRepository(db *gorm.DB) FavoritoRepository {
	return &favoritoRepository{db: db}
}

// Alternar agrega el favorito si no existe o lo quita si existe.
// Devuelve true cuando la propiedad quedó como favorita.
func (r *favoritoRepository) Alternar(ctx context.Context, usuarioID, propiedadID uint) (bool, error) {
	var agregado bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("usuario_id = ? AND propiedad_id = ?", usuarioID, propiedadID).
			Delete(&domain.Favorito{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			agregado = false
			return nil
		}

		fav := domain.Favorito{UsuarioID: usuarioID, PropiedadID: propiedadID}
		if err := tx.Create(&fav).Error; err != nil {
			// otro request lo agregó en paralelo: el par ya es favorito
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				agregado = true
				return nil
			}
			return err
		}
		agregado = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("alternando favorito: %w", err)
	}
	return agregado, nil
}

// Listar devuelve las propiedades favoritas, la última agregada primero
func (r *favoritoRepository) Listar(ctx context.Context, usuarioID uint) ([]domain.PropiedadListado, error) {
	filas := []domain.PropiedadListado{}
	err := r.db.WithContext(ctx).
		Table("favoritos fav").
		Select("p.*, "+subconsultaFotoPrincipal).
		Joins("JOIN propiedades p ON fav.propiedad_id = p.id").
		Where("fav.usuario_id = ?", usuarioID).
		Order("fav.fecha_agregado DESC, fav.id DESC").
		Scan(&filas).Error
	if err != nil {
		return nil, fmt.Errorf("listando favoritos: %w", err)
	}
	return filas, nil
}

package repositories

import (
	"context"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"gorm.io/gorm"
)

type ConsultaRepository interface {
	Crear(ctx context.Context, c *domain.Consulta) error
}

type consultaRepository struct {
	db *gorm.DB
}

// NewConsultaRepository crea una nueva instancia del repositorio
func NewConsultaRepository(db *gorm.DB) ConsultaRepository {
	return &consultaRepository{db: db}
}

func (r *consultaRepository) Crear(ctx context.Context, c *domain.Consulta) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("guardando consulta: %w", err)
	}
	return nil
}

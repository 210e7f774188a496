package repositories

import (
	"context"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"gorm.io/gorm"
)

type ChatRepository interface {
	Hilo(ctx context.Context, usuarioID, otroID uint) ([]domain.MensajeHilo, error)
	MarcarLeidos(ctx context.Context, destinatarioID, remitenteID uint) (int64, error)
	Crear(ctx context.Context, m *domain.MensajeChat) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository crea una nueva instancia del repositorio
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Hilo trae la conversación entre dos usuarios en orden cronológico
func (r *chatRepository) Hilo(ctx context.Context, usuarioID, otroID uint) ([]domain.MensajeHilo, error) {
	mensajes := []domain.MensajeHilo{}
	err := r.db.WithContext(ctx).
		Table("mensajes_chat m").
		Select("m.*, u1.nombre AS remitente_nombre, u2.nombre AS destinatario_nombre, p.titulo AS propiedad_titulo").
		Joins("JOIN usuarios u1 ON m.remitente_id = u1.id").
		Joins("JOIN usuarios u2 ON m.destinatario_id = u2.id").
		Joins("LEFT JOIN propiedades p ON m.propiedad_id = p.id").
		Where("(m.remitente_id = ? AND m.destinatario_id = ?) OR (m.remitente_id = ? AND m.destinatario_id = ?)",
			usuarioID, otroID, otroID, usuarioID).
		Order("m.fecha_envio ASC, m.id ASC").
		Scan(&mensajes).Error
	if err != nil {
		return nil, fmt.Errorf("obteniendo chat: %w", err)
	}
	return mensajes, nil
}

// MarcarLeidos marca como leídos los mensajes que remitente le envió a destinatario
func (r *chatRepository) MarcarLeidos(ctx context.Context, destinatarioID, remitenteID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.MensajeChat{}).
		Where("destinatario_id = ? AND remitente_id = ? AND leido = ?", destinatarioID, remitenteID, false).
		UpdateColumn("leido", true)
	if res.Error != nil {
		return 0, fmt.Errorf("marcando mensajes leídos: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *chatRepository) Crear(ctx context.Context, m *domain.MensajeChat) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("guardando mensaje: %w", err)
	}
	return nil
}

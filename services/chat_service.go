package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"

	"go.uber.org/zap"
)

// ChatService maneja los mensajes directos entre usuarios.
// No hay entrega en tiempo real: el cliente consulta el hilo.
type ChatService interface {
	Hilo(ctx context.Context, usuarioID, otroID uint) ([]domain.MensajeHilo, error)
	Enviar(ctx context.Context, remitenteID uint, req dto.EnviarMensajeRequest) (uint, error)
}

type chatService struct {
	chat     repositories.ChatRepository
	usuarios repositories.UserRepository
	log      *zap.Logger
}

// NewChatService crea una nueva instancia del servicio
func NewChatService(chat repositories.ChatRepository, usuarios repositories.UserRepository, log *zap.Logger) ChatService {
	return &chatService{chat: chat, usuarios: usuarios, log: log}
}

// Hilo devuelve la conversación y marca como leído lo que recibió usuarioID
func (s *chatService) Hilo(ctx context.Context, usuarioID, otroID uint) ([]domain.MensajeHilo, error) {
	mensajes, err := s.chat.Hilo(ctx, usuarioID, otroID)
	if err != nil {
		return nil, err
	}

	if _, err := s.chat.MarcarLeidos(ctx, usuarioID, otroID); err != nil {
		s.log.Warn("No se pudieron marcar los mensajes como leídos",
			zap.Uint("usuario_id", usuarioID),
			zap.Uint("otro_id", otroID),
			zap.Error(err))
	}
	return mensajes, nil
}

func (s *chatService) Enviar(ctx context.Context, remitenteID uint, req dto.EnviarMensajeRequest) (uint, error) {
	texto := strings.TrimSpace(req.Mensaje)
	if texto == "" {
		return 0, fmt.Errorf("%w: el mensaje está vacío", domain.ErrValidation)
	}

	if _, err := s.usuarios.GetByID(ctx, req.DestinatarioID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("destinatario %d: %w", req.DestinatarioID, domain.ErrNotFound)
		}
		return 0, err
	}

	m := &domain.MensajeChat{
		RemitenteID:    remitenteID,
		DestinatarioID: req.DestinatarioID,
		PropiedadID:    req.PropiedadID,
		Mensaje:        texto,
	}
	if err := s.chat.Crear(ctx, m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

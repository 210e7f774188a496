package events

import (
	"context"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/config"

	"go.uber.org/zap"
)

const (
	AccionCrear      = "create"
	AccionActualizar = "update"
)

// Evento es el mensaje que consume el indexador de búsqueda
type Evento struct {
	Action     string `json:"action"`
	PropertyID string `json:"property_id"`
}

// Publisher publica eventos de propiedades. La publicación es de mejor
// esfuerzo: quien llama registra el error pero no revierte nada.
type Publisher interface {
	Publicar(ctx context.Context, ev Evento) error
	Close() error
}

// NewPublisher elige el broker según EVENTS_BROKER
func NewPublisher(cfg *config.Config, log *zap.Logger) (Publisher, error) {
	switch cfg.EventsBroker {
	case "", "none":
		log.Info("Publicación de eventos desactivada")
		return NoopPublisher{}, nil
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue, log)
	case "nats":
		return NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, log)
	default:
		return nil, fmt.Errorf("EVENTS_BROKER no soportado: %s", cfg.EventsBroker)
	}
}

// NoopPublisher descarta los eventos
type NoopPublisher struct{}

func (NoopPublisher) Publicar(context.Context, Evento) error { return nil }

func (NoopPublisher) Close() error { return nil }

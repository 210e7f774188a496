package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type NATSPublisher struct {
	nc      *nats.Conn
	subject string
	log     *zap.Logger
}

func NewNATSPublisher(url, subject string, log *zap.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("inmobiliaria-api"),
		nats.Timeout(5 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS desconectado", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconectado", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("Conexión NATS cerrada")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("conectando a NATS: %w", err)
	}
	log.Info("Publisher de NATS listo", zap.String("url", nc.ConnectedUrl()), zap.String("subject", subject))

	return &NATSPublisher{nc: nc, subject: subject, log: log}, nil
}

func (p *NATSPublisher) Publicar(ctx context.Context, ev Evento) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializando evento: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publicando en %s: %w", p.subject, err)
	}
	p.log.Debug("Evento publicado",
		zap.String("subject", p.subject),
		zap.String("action", ev.Action),
		zap.String("property_id", ev.PropertyID))
	return nil
}

// Close vacía los mensajes pendientes antes de cerrar
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}

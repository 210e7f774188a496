package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// canal es la parte de amqp.Channel que usa el publisher
type canal interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publica en una cola durable; la cola es la misma que
// lee el consumidor del servicio de búsqueda.
type RabbitMQPublisher struct {
	connection *amqp.Connection
	channel    canal
	queueName  string
	log        *zap.Logger

	// turno serializa las publicaciones: amqp.Channel no admite concurrencia
	turno chan struct{}
}

// NewRabbitMQPublisher conecta, abre un channel y declara la cola
func NewRabbitMQPublisher(rabbitURL, queueName string, log *zap.Logger) (*RabbitMQPublisher, error) {
	if queueName == "" {
		queueName = "properties_queue"
	}

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("conectando a RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("abriendo channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declarando cola %s: %w", queueName, err)
	}

	log.Info("Publisher de RabbitMQ listo", zap.String("queue", queueName))

	return &RabbitMQPublisher{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		log:        log,
		turno:      make(chan struct{}, 1),
	}, nil
}

// Publicar envía el evento como mensaje persistente.
// Publish no recibe contexto y se bloquea si el broker frena la conexión
// (alarma de memoria o disco), así que corre aparte y se espera hasta ctx.
func (p *RabbitMQPublisher) Publicar(ctx context.Context, ev Evento) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializando evento: %w", err)
	}

	select {
	case p.turno <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("esperando turno en %s: %w", p.queueName, ctx.Err())
	}

	hecho := make(chan error, 1)
	go func() {
		defer func() { <-p.turno }()
		hecho <- p.channel.Publish(
			"",          // exchange por defecto
			p.queueName, // routing key = cola
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
	}()

	select {
	case err := <-hecho:
		if err != nil {
			return fmt.Errorf("publicando en %s: %w", p.queueName, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("publicando en %s: %w", p.queueName, ctx.Err())
	}

	p.log.Debug("Evento publicado",
		zap.String("queue", p.queueName),
		zap.String("action", ev.Action),
		zap.String("property_id", ev.PropertyID))
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	err := p.channel.Close()
	if p.connection != nil {
		if errConn := p.connection.Close(); err == nil {
			err = errConn
		}
	}
	return err
}

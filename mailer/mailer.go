package mailer

import (
	"context"
	"fmt"

	"github.com/integralvisionpss-art/inmobiliaria/config"
	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer avisa a los vendedores cuando reciben una consulta
type Mailer interface {
	NotificarConsulta(ctx context.Context, para, tituloPropiedad string, c domain.Consulta) error
}

// Sender abstrae el envío SMTP para poder probarlo
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailer struct {
	sender Sender
	from   string
	log    *zap.Logger
}

// New devuelve un mailer SMTP, o uno que no hace nada si SMTP_HOST está vacío
func New(cfg *config.Config, log *zap.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return NoopMailer{}
	}
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return NewSMTPMailer(d, cfg.SMTPFrom, log)
}

func NewSMTPMailer(sender Sender, from string, log *zap.Logger) Mailer {
	return &smtpMailer{sender: sender, from: from, log: log}
}

func (m *smtpMailer) NotificarConsulta(ctx context.Context, para, tituloPropiedad string, c domain.Consulta) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", para)
	msg.SetHeader("Subject", fmt.Sprintf("Nueva consulta sobre \"%s\"", tituloPropiedad))
	if c.Email != "" {
		msg.SetHeader("Reply-To", c.Email)
	}
	msg.SetBody("text/plain", cuerpoConsulta(tituloPropiedad, c))

	// gomail no recibe contexto; el envío corre aparte y se abandona si vence
	done := make(chan error, 1)
	go func() {
		done <- m.sender.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("envío de email cancelado: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("enviando email a %s: %w", para, err)
		}
	}

	m.log.Info("Consulta notificada al vendedor",
		zap.String("para", para),
		zap.Uint("consulta_id", c.ID))
	return nil
}

func cuerpoConsulta(titulo string, c domain.Consulta) string {
	nombre := c.Nombre
	if nombre == "" {
		nombre = "Un interesado"
	}
	cuerpo := fmt.Sprintf("%s dejó una consulta sobre \"%s\":\n\n%s\n", nombre, titulo, c.Mensaje)
	if c.Email != "" {
		cuerpo += "\nEmail: " + c.Email
	}
	if c.Telefono != "" {
		cuerpo += "\nTeléfono: " + c.Telefono
	}
	return cuerpo
}

// NoopMailer se usa cuando no hay SMTP configurado
type NoopMailer struct{}

func (NoopMailer) NotificarConsulta(context.Context, string, string, domain.Consulta) error {
	return nil
}

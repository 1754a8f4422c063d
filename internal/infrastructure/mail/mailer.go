// Package mail implementa el puerto Mailer: SMTP real con gomail o un fallback que solo registra.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/ecommerce-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-api/pkg/config"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// SMTPMailer envía texto plano por SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer construye el mailer con las credenciales de SMTP_*.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

// Send abre una conexión por mensaje; el volumen es el de los correos de recuperación.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer se usa solo en development cuando SMTP_HOST está vacío: registra destinatario y
// asunto en warn y el cuerpo únicamente en debug.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el fallback sobre el logger de la aplicación.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.Message) error {
	m.log.Warn().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("SMTP no configurado; correo no enviado")
	m.log.Debug().
		Str("to", msg.To).
		Str("body", msg.Body).
		Msg("cuerpo del correo no enviado")
	return nil
}

// New elige el adaptador según la configuración. config.Validate garantiza que sin SMTP_HOST
// el entorno es development.
func New(cfg config.SMTPConfig, log *logger.Logger) ports.Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg)
}

package ports

import "context"

// Message correo saliente en texto plano.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer define el puerto de salida para el envío de correos.
// Cualquier adaptador (SMTP, log, fake de tests) debe implementar esta interfaz.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Notifier delivers a message to a customer. Implementations are best-effort:
// callers treat a returned error as log-worthy, never as a reason to undo work.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPNotifier sends plain-text mail through a single SMTP relay.
type SMTPNotifier struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPNotifier(host, port, from, password string) *SMTPNotifier {
	return &SMTPNotifier{host: host, port: port, from: from, password: password}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("From: " + n.from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")

	var a smtp.Auth
	if n.password != "" {
		a = smtp.PlainAuth("", n.from, n.password, n.host)
	}

	// smtp.SendMail has no context support; the server relies on the relay's
	// own timeouts here, and callers never block the request path on us.
	addr := n.host + ":" + n.port
	if err := smtp.SendMail(addr, a, n.from, []string{to}, []byte(sb.String())); err != nil {
		return fmt.Errorf("notifier: failed to send mail via %s: %w", addr, err)
	}

	log.Debug().Str("to", to).Str("subject", subject).Msg("Notification sent")
	return nil
}

// NoopNotifier is used when SMTP is not configured. It logs and discards.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) Send(_ context.Context, to, subject, _ string) error {
	log.Debug().Str("to", to).Str("subject", subject).Msg("Mail disabled, notification dropped")
	return nil
}

// Package notification delivers reconciliation alerts raised by the
// conversion workflow.
package notification

import (
	"context"

	"crm_backend/platform/config"

	"github.com/wneessen/go-mail"
)

// Sender delivers an alert message to the operations mailbox.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// NoopSender is used when SMTP is not configured; alerts stay in the logs.
type NoopSender struct{}

func (NoopSender) Send(context.Context, string, string) error { return nil }

// SMTPSender delivers alerts over SMTP.
type SMTPSender struct {
	cfg config.EmailConfig
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.GetEmailFromName(), s.cfg.GetEmailFromAddress()); err != nil {
		return err
	}
	if err := msg.To(s.cfg.GetAlertAddress()); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.cfg.GetSMTPHost(),
		mail.WithPort(s.cfg.GetSMTPPort()),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.GetSMTPUsername()),
		mail.WithPassword(s.cfg.GetSMTPPassword()),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

var (
	_ Sender = NoopSender{}
	_ Sender = (*SMTPSender)(nil)
)

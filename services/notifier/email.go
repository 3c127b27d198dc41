package notifier

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"pricesentry/config"
	"pricesentry/internal/scan"
	"pricesentry/pkg/errors"
)

// EmailNotifier delivers alerts over SMTP.
type EmailNotifier struct {
	cfg config.SMTPConfig
}

// NewEmailNotifier creates an SMTP notifier from a complete SMTP config.
func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &EmailNotifier{cfg: cfg}
}

// Notify renders and sends one alert email.
func (n *EmailNotifier) Notify(alert scan.Alert) error {
	mail := email.NewEmail()
	mail.From = n.cfg.From
	mail.To = n.cfg.To
	mail.Subject = renderSubject(alert)
	mail.Text = []byte(renderBody(alert))

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := mail.Send(addr, auth); err != nil {
		return errors.NewNotifier(alert.TargetID, "failed to send alert email", err)
	}
	return nil
}

// Close implements Notifier; SMTP connections are per-send.
func (n *EmailNotifier) Close() error {
	return nil
}

package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"planner/internal/config"
)

// Mailer delivers account mail (verification links, password resets).
type Mailer interface {
	Send(to, subject, body string) error
}

// FromConfig returns an SMTP mailer when a host is configured and the
// log-backed fallback otherwise, so local development works without a
// mail server.
func FromConfig(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &LogMailer{}
	}
	return &SMTPMailer{
		Addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		From: cfg.SMTPFrom,
	}
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct{}

func (m *LogMailer) Send(to, subject, body string) error {
	log.Printf("📧 mail to %s: %s\n%s", to, subject, body)
	return nil
}

type SMTPMailer struct {
	Addr string
	From string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

package mailer

import (
	"fmt"
	"net/smtp"

	"gatherly/pkg/config"
)

// Mailer sends transactional mail over plain SMTP.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func New(cfg *config.Config) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &Mailer{
		addr: fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.SMTPFrom,
	}
}

func (m *Mailer) SendConfirmationCode(to, code string) error {
	subject := "Confirm your Gatherly account"
	body := fmt.Sprintf("Your confirmation code is %s. It expires in 5 minutes.", code)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

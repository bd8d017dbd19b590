package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Mailer is the narrow interface handlers depend on; SMTP is the only
// production implementation.
type Mailer interface {
	SendResetLink(to, link string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendResetLink(to, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Click the link below to reset your password. The link expires in 15 minutes.</p><p><a href="%s">%s</a></p>`,
		link, link,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

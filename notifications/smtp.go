package notifications

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	From     string
	FromName string

	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, user, password, from, fromName string) *SMTPMailer {
	return &SMTPMailer{
		From:     from,
		FromName: fromName,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// Send dials per message. gomail has no context support, so ctx is only checked before
// dialing.
func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	toEmail, toName, err := recipient(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.From, s.FromName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "failed to send email via SMTP")
	}
	return nil
}

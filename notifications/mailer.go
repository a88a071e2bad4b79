package notifications

import (
	"context"
	"strings"

	config "github.com/anjiri1684/mentorship/configs"
	"github.com/mcnijman/go-emailaddress"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Message is a single HTML email to one recipient.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
}

// Mailer delivers email. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var ErrInvalidRecipient = errors.New("invalid recipient email")

// recipient validates the address and derives a display name from the local part when
// the message carries none.
func recipient(msg Message) (email, name string, err error) {
	addr, err := emailaddress.Parse(strings.TrimSpace(msg.ToEmail))
	if err != nil {
		return "", "", errors.Wrapf(ErrInvalidRecipient, "%q", msg.ToEmail)
	}
	name = msg.ToName
	if name == "" {
		name = addr.LocalPart
	}
	return addr.String(), name, nil
}

// FromConfig picks the Brevo API when a key is configured, SMTP when a host is, and
// returns nil (email disabled) otherwise.
func FromConfig(cfg *config.Config, log *zap.Logger) Mailer {
	switch {
	case cfg.BrevoAPIKey != "" && cfg.EmailSender != "":
		log.Info("email delivery via Brevo", zap.String("sender", cfg.EmailSender))
		return NewBrevoMailer(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName)
	case cfg.SMTPHost != "" && cfg.EmailSender != "":
		log.Info("email delivery via SMTP", zap.String("host", cfg.SMTPHost), zap.Int("port", cfg.SMTPPort))
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailSender, cfg.EmailSenderName)
	}
	log.Warn("email service not configured, outgoing mail is disabled")
	return nil
}

package mail

import (
	"context"
	"errors"
	"fmt"
	"os"

	gomail "github.com/wneessen/go-mail"
)

var (
	// ErrNoRecipients is the non-fatal "nothing to send" condition; callers
	// fall back to writing the digest to a file.
	ErrNoRecipients = errors.New("no recipients configured")

	// ErrMissingCredentials surfaces when delivery is explicitly required but
	// the SMTP account is not configured.
	ErrMissingCredentials = errors.New("smtp credentials missing")
)

// Settings is the outbound mail account plus the recipient list.
type Settings struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// Sender delivers the rendered digest over SMTP with STARTTLS.
type Sender struct {
	settings Settings
}

func NewSender(settings Settings) *Sender {
	return &Sender{settings: settings}
}

// Send submits one HTML message to every configured recipient.
func (s *Sender) Send(ctx context.Context, subject, htmlBody string) error {
	if len(s.settings.Recipients) == 0 {
		return ErrNoRecipients
	}
	if s.settings.Username == "" || s.settings.Password == "" {
		return ErrMissingCredentials
	}

	from := s.settings.From
	if from == "" {
		from = s.settings.Username
	}

	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(s.settings.Recipients...); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient(s.settings.Host,
		gomail.WithPort(s.settings.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.settings.Username),
		gomail.WithPassword(s.settings.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// WriteFallback persists the rendered digest locally when delivery fails or
// nothing is configured to receive it.
func WriteFallback(path, htmlBody string) error {
	if path == "" {
		return fmt.Errorf("fallback path is required")
	}
	return os.WriteFile(path, []byte(htmlBody), 0o644)
}

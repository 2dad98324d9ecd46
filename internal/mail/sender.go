package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"gamewise/api/internal/config"
)

// Sender dispatches a single plain-text message. Implementations must report
// delivery failure to the caller; the auth service surfaces it distinctly
// from persistence errors.
type Sender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

type SMTPSender struct {
	client *gomail.Client
	from   string
}

func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to string, subject string, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// ResetCodeBody renders the password-reset message. The validity note must
// match the configured reset window.
func ResetCodeBody(name string, code string, validity string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour password reset code is %s.\nIt is valid for %s.\n\nIf you did not request a reset, ignore this message.\n",
		name, code, validity,
	)
}

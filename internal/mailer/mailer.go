// Package mailer sends transactional e-mail (staff invitations).
package mailer

import (
	"context"
	"log/slog"
)

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string
	From     string

	To  []string
	Cc  []string
	Bcc []string

	Subject string

	TextBody string
	HTMLBody string

	Headers map[string]string
}

func (e Email) AllRecipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	out = append(out, e.To...)
	out = append(out, e.Cc...)
	out = append(out, e.Bcc...)
	return out
}

// Log writes e-mails to the logger instead of sending them. Used when no
// SMTP server is configured.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Send(ctx context.Context, e Email) error {
	if _, err := buildMIMEMessage(e, "localhost"); err != nil {
		return err
	}
	l.Logger.LogAttrs(ctx, slog.LevelInfo, "mail not sent: smtp disabled",
		slog.Any("to", e.To),
		slog.String("subject", e.Subject),
	)
	return nil
}

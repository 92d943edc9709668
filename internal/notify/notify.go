package notify

import (
	"bytes"
	"context"

	"github.com/procat-rse/procatsrv/internal/apperrors"
	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var ErrNotify apperrors.Error = apperrors.New("error sending notification")

// Attachment is a file to attach to a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer sends plain text mail, optionally with attachments.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string, attachments ...Attachment) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{cfg: config.Config().SMTP}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string, attachments ...Attachment) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return ErrNotify.Err(err)
	}
	if err := msg.To(to); err != nil {
		return ErrNotify.Err(err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	for _, a := range attachments {
		if err := msg.AttachReader(a.Filename, bytes.NewReader(a.Content),
			mail.WithFileContentType(mail.ContentType(a.ContentType))); err != nil {
			return ErrNotify.Err(err)
		}
	}

	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return ErrNotify.Err(err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return ErrNotify.Err(err)
	}
	log.Ctx(ctx).Info().Str("to", to).Str("subject", subject).Msg("sent mail")
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used when
// no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, body string, attachments ...Attachment) error {
	event := log.Ctx(ctx).Info().Str("to", to).Str("subject", subject).Str("body", body)
	for _, a := range attachments {
		event = event.Str("attachment", a.Filename)
	}
	event.Msg("mail not sent, no smtp host configured")
	return nil
}

// NewMailer picks the SMTP mailer when a host is configured, the log
// mailer otherwise.
func NewMailer() Mailer {
	if config.Config().SMTP.Host == "" {
		return LogMailer{}
	}
	return NewSMTPMailer()
}

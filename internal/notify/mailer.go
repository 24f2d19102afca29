// Package notify sends the transactional emails of the approval workflow.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/straye-as/cpq-api/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrDelivery is returned when a mail transport rejects a message
var ErrDelivery = errors.New("email delivery failed")

// ErrMailConfig is returned when mandatory mail credentials are missing
var ErrMailConfig = errors.New("invalid mail configuration")

// Attachment is a file attached to an email
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a single outgoing email
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers messages through a transport
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	// Ping checks that the transport is reachable and accepts the credentials
	Ping(ctx context.Context) error
}

// NewMailer creates the transport selected by cfg.Provider.
// Missing credentials fail here so a misconfigured deployment never starts.
func NewMailer(ctx context.Context, cfg *config.MailConfig, logger *zap.Logger) (Mailer, error) {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	switch cfg.Provider {
	case "smtp", "":
		if cfg.Username == "" || cfg.Password == "" {
			return nil, fmt.Errorf("%w: smtp requires username and password", ErrMailConfig)
		}
		return NewSMTPMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, from, cfg.FromName, logger), nil
	case "ses":
		if cfg.SESRegion == "" {
			return nil, fmt.Errorf("%w: ses requires a region", ErrMailConfig)
		}
		if from == "" {
			return nil, fmt.Errorf("%w: ses requires a from address", ErrMailConfig)
		}
		return NewSESMailer(ctx, cfg.SESRegion, from, cfg.FromName, logger)
	case "log":
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("%w: unsupported mail provider %q", ErrMailConfig, cfg.Provider)
	}
}

// buildMessage converts a message into a MIME message
func buildMessage(from, fromName string, msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		data := att.Data
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		m.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
		)
	}
	return m
}

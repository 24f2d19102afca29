package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends mail through an SMTP relay with STARTTLS
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *zap.Logger
}

func NewSMTPMailer(host string, port int, username, password, from, fromName string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(buildMessage(m.from, m.fromName, msg)); err != nil {
		return fmt.Errorf("%w: smtp: %v", ErrDelivery, err)
	}
	m.logger.Info("Email sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return nil
}

func (m *SMTPMailer) Ping(ctx context.Context) error {
	conn, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("%w: smtp: %v", ErrDelivery, err)
	}
	return conn.Close()
}

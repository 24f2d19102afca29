package notify

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// sesAPI is the subset of the SES v2 client used by SESMailer
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
	GetAccount(ctx context.Context, params *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error)
}

// SESMailer sends raw MIME messages through Amazon SES so attachments survive intact
type SESMailer struct {
	client   sesAPI
	from     string
	fromName string
	logger   *zap.Logger
}

// NewSESMailer loads AWS credentials from the default chain
func NewSESMailer(ctx context.Context, region, from, fromName string, logger *zap.Logger) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newSESMailer(sesv2.NewFromConfig(cfg), from, fromName, logger), nil
}

func newSESMailer(client sesAPI, from, fromName string, logger *zap.Logger) *SESMailer {
	return &SESMailer{client: client, from: from, fromName: fromName, logger: logger}
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	var raw bytes.Buffer
	if _, err := buildMessage(m.from, m.fromName, msg).WriteTo(&raw); err != nil {
		return fmt.Errorf("%w: encode: %v", ErrDelivery, err)
	}

	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: msg.To},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw.Bytes()},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: ses: %v", ErrDelivery, err)
	}

	m.logger.Info("Email sent via SES",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

func (m *SESMailer) Ping(ctx context.Context) error {
	if _, err := m.client.GetAccount(ctx, &sesv2.GetAccountInput{}); err != nil {
		return fmt.Errorf("%w: ses: %v", ErrDelivery, err)
	}
	return nil
}

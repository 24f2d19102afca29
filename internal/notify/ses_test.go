package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func (f *fakeSES) GetAccount(ctx context.Context, params *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error) {
	return &sesv2.GetAccountOutput{}, f.err
}

func TestSESMailer_SendsRawMIMEWithAttachment(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "noreply@acme.test", "Acme", zap.NewNop())

	err := m.Send(context.Background(), Message{
		To:      []string{"jane@doe.test"},
		Subject: "Quote",
		HTML:    "<p>hello</p>",
		Attachments: []Attachment{
			{Filename: "quote.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "noreply@acme.test", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"jane@doe.test"}, client.input.Destination.ToAddresses)
	raw := string(client.input.Content.Raw.Data)
	assert.Contains(t, raw, "Subject: Quote")
	assert.Contains(t, raw, "quote.pdf")
	assert.True(t, strings.Contains(raw, "multipart/mixed"))
}

func TestSESMailer_WrapsErrors(t *testing.T) {
	m := newSESMailer(&fakeSES{err: errors.New("throttled")}, "noreply@acme.test", "", zap.NewNop())

	err := m.Send(context.Background(), Message{To: []string{"a@b.test"}, Subject: "x", HTML: "x"})
	assert.ErrorIs(t, err, ErrDelivery)
	assert.ErrorIs(t, m.Ping(context.Background()), ErrDelivery)
}

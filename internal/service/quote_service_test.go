package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.quotes.Create(ctx, quoteRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1600.0, resp.Quote.Standard.TotalCost)
	assert.Equal(t, 24.0, resp.Quote.Standard.PerUserCost)
	assert.Equal(t, 300.0, resp.Quote.Basic.MigrationCost)

	id := uuid.MustParse(resp.QuoteID)
	quote, err := f.quotes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusDraft, quote.Status)
	assert.Equal(t, "Jane Doe", quote.Client.Name)
	assert.Equal(t, service.QuoteSourceManual, quote.Source)

	history, err := f.quotes.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.QuoteStatusDraft, history[0].Status)

	t.Run("rejects invalid configuration", func(t *testing.T) {
		req := quoteRequest()
		req.Users = 0
		_, err := f.quotes.Create(ctx, req)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("normalizes unknown types", func(t *testing.T) {
		req := quoteRequest()
		req.InstanceType = "huge"
		req.MigrationType = ""
		resp, err := f.quotes.Create(ctx, req)
		require.NoError(t, err)

		quote, err := f.quotes.GetByID(ctx, uuid.MustParse(resp.QuoteID))
		require.NoError(t, err)
		assert.Equal(t, domain.InstanceTypeStandard, quote.Configuration.InstanceType)
		assert.Equal(t, domain.MigrationTypeContent, quote.Configuration.MigrationType)
	})
}

func TestQuoteService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createQuote(t)

	quote, err := f.quotes.UpdateStatus(ctx, &domain.UpdateQuoteStatusRequest{
		QuoteID: id.String(),
		Status:  "accepted",
		Notes:   "signed over the phone",
	}, "sales@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, quote.Status)

	history, err := f.quotes.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)

	_, err = f.quotes.UpdateStatus(ctx, &domain.UpdateQuoteStatusRequest{QuoteID: id.String(), Status: "archived"}, "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = f.quotes.UpdateStatus(ctx, &domain.UpdateQuoteStatusRequest{QuoteID: uuid.New().String(), Status: "sent"}, "")
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
}

func TestQuoteService_Resolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	manualID := f.createQuote(t)

	// HubSpot quotes are created later so they win name lookups
	time.Sleep(10 * time.Millisecond)
	hsReq := &domain.ImportHubSpotQuoteRequest{DealID: "deal-42", CreateQuoteRequest: *quoteRequest()}
	hsReq.ClientName = "Jane Doe"
	hsReq.CompanyName = "Other Corp"
	hs, err := f.quotes.ImportHubSpot(ctx, hsReq)
	require.NoError(t, err)
	assert.Equal(t, service.QuoteSourceHubSpot, hs.Source)

	t.Run("manual id", func(t *testing.T) {
		q, source, err := f.quotes.Resolve(ctx, manualID.String())
		require.NoError(t, err)
		assert.Equal(t, manualID, q.ID)
		assert.Equal(t, service.QuoteSourceManual, source)
	})

	t.Run("hubspot id", func(t *testing.T) {
		q, source, err := f.quotes.Resolve(ctx, hs.ID.String())
		require.NoError(t, err)
		assert.Equal(t, hs.ID, q.ID)
		assert.Equal(t, service.QuoteSourceHubSpot, source)
	})

	t.Run("hubspot deal id", func(t *testing.T) {
		q, source, err := f.quotes.Resolve(ctx, "deal-42")
		require.NoError(t, err)
		assert.Equal(t, hs.ID, q.ID)
		assert.Equal(t, service.QuoteSourceHubSpot, source)
	})

	t.Run("client email", func(t *testing.T) {
		q, _, err := f.quotes.Resolve(ctx, "JANE@example.com")
		require.NoError(t, err)
		assert.Equal(t, hs.ID, q.ID)
	})

	t.Run("client name picks the newest", func(t *testing.T) {
		q, source, err := f.quotes.Resolve(ctx, "  JANE   doe ")
		require.NoError(t, err)
		assert.Equal(t, hs.ID, q.ID)
		assert.Equal(t, service.QuoteSourceHubSpot, source)
	})

	t.Run("company name", func(t *testing.T) {
		q, _, err := f.quotes.Resolve(ctx, "doe industries")
		require.NoError(t, err)
		assert.Equal(t, manualID, q.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := f.quotes.Lookup(ctx, "nobody")
		assert.ErrorIs(t, err, service.ErrQuoteNotFound)

		_, _, err = f.quotes.Resolve(ctx, " ")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestQuoteService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.createQuote(t)
	}

	resp, err := f.quotes.List(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Data, 2)

	resp, err = f.quotes.List(ctx, 1, 20, "sent")
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)
}

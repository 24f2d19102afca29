package secrets_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/straye-as/cpq-api/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapFetcher struct {
	values map[string]string
	calls  int
	fail   error
}

func (m *mapFetcher) Fetch(_ context.Context, name string) (string, error) {
	m.calls++
	if m.fail != nil {
		return "", m.fail
	}
	v, ok := m.values[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", secrets.ErrNotFound, name)
	}
	return v, nil
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceAuto, "development"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource("", ""))
	assert.Equal(t, secrets.SourceVault, secrets.ResolveSource(secrets.SourceAuto, "production"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceEnvironment, "production"))
}

func TestEnvFetcher(t *testing.T) {
	t.Setenv("CPQ_TEST_SECRET", "s3cret")

	v, err := secrets.EnvFetcher{}.Fetch(context.Background(), "CPQ_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)

	_, err = secrets.EnvFetcher{}.Fetch(context.Background(), "CPQ_TEST_SECRET_UNSET")
	assert.ErrorIs(t, err, secrets.ErrNotFound)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("fetched values fill targets", func(t *testing.T) {
		var password, token string
		f := &mapFetcher{values: map[string]string{"mail-password": "pw", "hubspot-access-token": "tok"}}

		err := secrets.Resolve(ctx, f, []secrets.Binding{
			{Secret: "mail-password", Target: &password},
			{Secret: "hubspot-access-token", Target: &token},
		}, log)
		require.NoError(t, err)
		assert.Equal(t, "pw", password)
		assert.Equal(t, "tok", token)
	})

	t.Run("environment override wins", func(t *testing.T) {
		t.Setenv("CPQ_TEST_LINK_SECRET", "from-env")
		var secret string
		f := &mapFetcher{values: map[string]string{"link-signing-secret": "from-vault"}}

		err := secrets.Resolve(ctx, f, []secrets.Binding{
			{Secret: "link-signing-secret", Env: "CPQ_TEST_LINK_SECRET", Target: &secret},
		}, log)
		require.NoError(t, err)
		assert.Equal(t, "from-env", secret)
		assert.Zero(t, f.calls)
	})

	t.Run("missing optional keeps configured value", func(t *testing.T) {
		conn := "UseDevelopmentStorage=true"
		err := secrets.Resolve(ctx, &mapFetcher{}, []secrets.Binding{
			{Secret: "storage-connection-string", Target: &conn},
		}, log)
		require.NoError(t, err)
		assert.Equal(t, "UseDevelopmentStorage=true", conn)
	})

	t.Run("missing required fails", func(t *testing.T) {
		var secret string
		err := secrets.Resolve(ctx, &mapFetcher{fail: errors.New("vault unreachable")}, []secrets.Binding{
			{Secret: "link-signing-secret", Target: &secret, Required: true},
		}, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "link-signing-secret")
	})

	t.Run("required already configured is kept", func(t *testing.T) {
		secret := "configured"
		err := secrets.Resolve(ctx, &mapFetcher{}, []secrets.Binding{
			{Secret: "link-signing-secret", Target: &secret, Required: true},
		}, log)
		require.NoError(t, err)
		assert.Equal(t, "configured", secret)
	})
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	f := &mapFetcher{values: map[string]string{"mail-password": "pw"}}
	c := secrets.NewCache(f, 50*time.Millisecond)

	for i := 0; i < 3; i++ {
		v, err := c.Fetch(ctx, "mail-password")
		require.NoError(t, err)
		assert.Equal(t, "pw", v)
	}
	assert.Equal(t, 1, f.calls)

	time.Sleep(60 * time.Millisecond)
	_, err := c.Fetch(ctx, "mail-password")
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)

	_, err = c.Fetch(ctx, "unknown")
	assert.ErrorIs(t, err, secrets.ErrNotFound)
}

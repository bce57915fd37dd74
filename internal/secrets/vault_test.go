package secrets

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeKeyVault struct {
	mu     sync.Mutex
	values map[string]string
	calls  int
}

func (f *fakeKeyVault) GetSecret(_ context.Context, name, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	value, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, errors.New("SecretNotFound")
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: &value}}, nil
}

func TestVaultClient_CachesSecrets(t *testing.T) {
	api := &fakeKeyVault{values: map[string]string{"jwt-secret": "s3cret"}}
	client := newVaultClient(api, &VaultConfig{CacheEnabled: true}, zap.NewNop())

	for i := 0; i < 3; i++ {
		value, err := client.GetSecret(context.Background(), "jwt-secret")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", value)
	}
	assert.Equal(t, 1, api.calls)

	client.ClearCache()
	_, err := client.GetSecret(context.Background(), "jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, 2, api.calls)
}

func TestVaultClient_WithoutCache(t *testing.T) {
	api := &fakeKeyVault{values: map[string]string{"admin-api-key": "key"}}
	client := newVaultClient(api, &VaultConfig{}, zap.NewNop())

	_, _ = client.GetSecret(context.Background(), "admin-api-key")
	_, _ = client.GetSecret(context.Background(), "admin-api-key")

	assert.Equal(t, 2, api.calls)
}

func TestVaultClient_MissingSecret(t *testing.T) {
	client := newVaultClient(&fakeKeyVault{values: map[string]string{}}, &VaultConfig{}, zap.NewNop())

	_, err := client.GetSecret(context.Background(), "nope")

	assert.Error(t, err)
}

func TestSecretCache_Expires(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	cache := newSecretCache(time.Minute, func() time.Time { return now })

	cache.put("db", "pw")
	value, ok := cache.get("db")
	require.True(t, ok)
	assert.Equal(t, "pw", value)

	now = now.Add(time.Minute)
	_, ok = cache.get("db")
	assert.False(t, ok)
}

func TestSecretCache_NilNeverHits(t *testing.T) {
	var cache *secretCache

	cache.put("a", "b")
	_, ok := cache.get("a")

	assert.False(t, ok)
}

func TestProvider_GetSecretOrEnv(t *testing.T) {
	api := &fakeKeyVault{values: map[string]string{"POSTGRES-MAIN-USER": "vault_user"}}
	provider := NewProviderWithStore(SourceVault, newVaultClient(api, &VaultConfig{}, zap.NewNop()), zap.NewNop())

	value, err := provider.GetSecretOrEnv(context.Background(), "POSTGRES-MAIN-USER", "CRM_TEST_DB_USER")
	require.NoError(t, err)
	assert.Equal(t, "vault_user", value)

	t.Setenv("CRM_TEST_DB_USER", "env_user")
	value, err = provider.GetSecretOrEnv(context.Background(), "POSTGRES-MAIN-USER", "CRM_TEST_DB_USER")
	require.NoError(t, err)
	assert.Equal(t, "env_user", value)

	assert.Equal(t, "fallback", provider.GetSecretWithDefault(context.Background(), "missing", "fallback"))
	assert.True(t, provider.IsVaultEnabled())
}

func TestProvider_EnvironmentSource(t *testing.T) {
	provider, err := NewProvider(&ProviderConfig{Source: SourceAuto, Environment: "development"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, provider.Source())

	_, err = provider.GetSecret(context.Background(), "CRM_TEST_UNSET_SECRET")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, "development"))
	assert.Equal(t, SourceEnvironment, ResolveSource("", ""))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "production"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceEnvironment, "production"))
}

func TestNewProvider_VaultNeedsName(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Source: SourceVault}, zap.NewNop())
	assert.Error(t, err)
}

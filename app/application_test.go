package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graniteapi.app/config"
	"graniteapi.app/providers"
	"graniteapi.app/providers/cache"
)

func testAppConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Catalog: config.CatalogConfig{
			Source:          "filesystem",
			ImagesRoot:      t.TempDir(),
			CacheTTLMinutes: 5,
		},
		Cache: config.CacheConfig{
			Type:            "memory",
			ImageTTLSeconds: 60,
		},
	}
}

func TestCreateCache(t *testing.T) {
	t.Run("MemoryBackend", func(t *testing.T) {
		app := &Application{config: testAppConfig(t)}

		backend, err := app.createCache()
		require.NoError(t, err)
		assert.IsType(t, &cache.MemoryCache{}, backend)
	})

	t.Run("InstrumentedMemoryBackend", func(t *testing.T) {
		cfg := testAppConfig(t)
		cfg.Cache.EnableInstrumenting = true
		app := &Application{config: cfg}

		backend, err := app.createCache()
		require.NoError(t, err)
		assert.IsType(t, &providers.InstrumentedCache{}, backend)
	})
}

func TestCreateProviderManager(t *testing.T) {
	app := &Application{config: testAppConfig(t)}

	backend, err := app.createCache()
	require.NoError(t, err)

	manager, err := app.createProviderManager(backend)
	require.NoError(t, err)

	info := manager.GetProviderInfo()
	assert.Equal(t, "Filesystem", info["primary"])
	assert.Equal(t, true, info["cache_enabled"])
}

func TestConfigDisplayerMasking(t *testing.T) {
	cd := NewConfigDisplayer()

	assert.Equal(t, "****", cd.maskString("abc"))
	assert.Equal(t, "secre***************", cd.maskString("secret-value-here-xx"))

	assert.True(t, cd.isSensitive("DB_PASSWORD"))
	assert.True(t, cd.isSensitive("strapi_api_token"))
	assert.False(t, cd.isSensitive("SERVER_PORT"))
}

package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graniteapi.app/config"
	"graniteapi.app/providers/cache"
)

func TestProviderManagerFilesystemOnly(t *testing.T) {
	manager, err := NewProviderManager(&ProviderConfiguration{
		SourceOrder: []string{"filesystem"},
		ImagesRoot:  setupImageTree(t),
	})
	require.NoError(t, err)

	categories, err := manager.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	info := manager.GetProviderInfo()
	assert.Equal(t, "Filesystem", info["primary"])
	assert.Equal(t, false, info["cache_enabled"])
}

func TestProviderManagerStrapiFallsBackToFilesystem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	manager, err := NewProviderManager(&ProviderConfiguration{
		SourceOrder: []string{"strapi", "filesystem"},
		ImagesRoot:  setupImageTree(t),
		StrapiConfig: &config.StrapiConfig{
			BaseURL:        server.URL,
			TimeoutSeconds: 5,
		},
	})
	require.NoError(t, err)

	categories, err := manager.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2, "filesystem answers when Strapi is down")
	assert.Equal(t, "Strapi", manager.GetProviderInfo()["primary"])
}

func TestProviderManagerWithCache(t *testing.T) {
	root := setupImageTree(t)
	manager, err := NewProviderManager(&ProviderConfiguration{
		SourceOrder: []string{"filesystem"},
		ImagesRoot:  root,
		Cache:       cache.NewMemoryCache(),
		CacheTTL:    5 * time.Minute,
	})
	require.NoError(t, err)

	first, err := manager.GetCategories(context.Background())
	require.NoError(t, err)

	// A new category directory must not show up while the entry is cached.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "products", "benches"), 0o755))

	second, err := manager.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, true, manager.GetProviderInfo()["cache_enabled"])
}

func TestProviderManagerConfigurationErrors(t *testing.T) {
	t.Run("unknown source", func(t *testing.T) {
		_, err := NewProviderManager(&ProviderConfiguration{
			SourceOrder: []string{"csv"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown catalog source")
	})

	t.Run("strapi without settings", func(t *testing.T) {
		_, err := NewProviderManager(&ProviderConfiguration{
			SourceOrder: []string{"strapi"},
		})
		require.Error(t, err)
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := NewProviderManager(&ProviderConfiguration{
			SourceOrder: []string{},
		})
		require.Error(t, err)
	})
}

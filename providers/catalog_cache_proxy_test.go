package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graniteapi.app/errors"
	"graniteapi.app/models"
	"graniteapi.app/providers/cache"
)

func TestCatalogCacheProxyCachesCategories(t *testing.T) {
	real := &stubCatalogProvider{categories: []models.Category{{Name: "benches", Slug: "benches"}}}
	proxy := NewCatalogCacheProxy(real, cache.NewMemoryCache(), 5*time.Minute)

	first, err := proxy.GetCategories(context.Background())
	require.NoError(t, err)
	second, err := proxy.GetCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, real.calls, "second read must come from cache")
}

func TestCatalogCacheProxyKeysByCategory(t *testing.T) {
	real := &stubCatalogProvider{images: []models.Image{{Name: "a.jpg"}}}
	proxy := NewCatalogCacheProxy(real, cache.NewMemoryCache(), 5*time.Minute)

	_, err := proxy.GetCategoryImages(context.Background(), "single-monuments")
	require.NoError(t, err)
	_, err = proxy.GetCategoryImages(context.Background(), "double-monuments")
	require.NoError(t, err)
	_, err = proxy.GetCategoryImages(context.Background(), "single-monuments")
	require.NoError(t, err)

	assert.Equal(t, 2, real.calls, "distinct categories get distinct entries")
}

func TestCatalogCacheProxyKeysByQuery(t *testing.T) {
	real := &stubCatalogProvider{results: []models.SearchResult{{Name: "angel"}}}
	proxy := NewCatalogCacheProxy(real, cache.NewMemoryCache(), 5*time.Minute)

	_, err := proxy.Search(context.Background(), "angel")
	require.NoError(t, err)
	_, err = proxy.Search(context.Background(), "heart")
	require.NoError(t, err)

	assert.Equal(t, 2, real.calls)
}

func TestCatalogCacheProxyDoesNotCacheErrors(t *testing.T) {
	real := &stubCatalogProvider{err: errors.NewExternalAPIError("down", nil)}
	proxy := NewCatalogCacheProxy(real, cache.NewMemoryCache(), 5*time.Minute)

	_, err := proxy.GetColorVarieties(context.Background())
	require.Error(t, err)

	real.err = nil
	real.colors = []models.ColorVariety{{Name: "paradiso"}}

	colors, err := proxy.GetColorVarieties(context.Background())
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, 2, real.calls, "a failed fetch must not leave a negative entry")
}

func TestCatalogCacheProxyExpiry(t *testing.T) {
	real := &stubCatalogProvider{categories: []models.Category{{Name: "benches"}}}
	proxy := NewCatalogCacheProxy(real, cache.NewMemoryCache(), 10*time.Millisecond)

	_, err := proxy.GetCategories(context.Background())
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = proxy.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, real.calls)
}

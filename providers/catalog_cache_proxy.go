package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"graniteapi.app/models"
	"graniteapi.app/providers/cache"
)

// CatalogCacheProxy caches catalog listings in front of another provider.
// Payloads travel through the generic byte cache as JSON. Errors and empty
// results caused by failures are never cached; a miss today is retried fresh
// on the next request.
type CatalogCacheProxy struct {
	realProvider CatalogProvider
	cache        cache.GenericCacheInterface
	cacheTTL     time.Duration
}

func NewCatalogCacheProxy(realProvider CatalogProvider, genericCache cache.GenericCacheInterface, cacheTTL time.Duration) *CatalogCacheProxy {
	return &CatalogCacheProxy{
		realProvider: realProvider,
		cache:        genericCache,
		cacheTTL:     cacheTTL,
	}
}

func (p *CatalogCacheProxy) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := p.cached(ctx, cache.Keys.ProductCategories(), &categories, func(ctx context.Context) (interface{}, error) {
		return p.realProvider.GetCategories(ctx)
	})
	return categories, err
}

func (p *CatalogCacheProxy) GetCategoryImages(ctx context.Context, category string) ([]models.Image, error) {
	var images []models.Image
	err := p.cached(ctx, cache.Keys.ProductsByCategory(category), &images, func(ctx context.Context) (interface{}, error) {
		return p.realProvider.GetCategoryImages(ctx, category)
	})
	return images, err
}

func (p *CatalogCacheProxy) GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error) {
	var colors []models.ColorVariety
	err := p.cached(ctx, cache.Keys.ColorVarieties(), &colors, func(ctx context.Context) (interface{}, error) {
		return p.realProvider.GetColorVarieties(ctx)
	})
	return colors, err
}

func (p *CatalogCacheProxy) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	var results []models.SearchResult
	err := p.cached(ctx, cache.Keys.Search(query), &results, func(ctx context.Context) (interface{}, error) {
		return p.realProvider.Search(ctx, query)
	})
	return results, err
}

func (p *CatalogCacheProxy) cached(ctx context.Context, key string, out interface{}, produce func(ctx context.Context) (interface{}, error)) error {
	data, err := cache.Fetch(ctx, p.cache, key, p.cacheTTL, func(ctx context.Context) ([]byte, error) {
		slog.Debug("catalog cache miss", "key", key)

		value, err := produce(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

package providers

import (
	"context"
	"log/slog"
	"time"

	"graniteapi.app/models"
)

// CatalogLoggingDecorator logs request/response timing around a catalog provider
type CatalogLoggingDecorator struct {
	wrapped      CatalogProvider
	providerName string
}

func NewCatalogLoggingDecorator(wrapped CatalogProvider, providerName string) *CatalogLoggingDecorator {
	return &CatalogLoggingDecorator{
		wrapped:      wrapped,
		providerName: providerName,
	}
}

func (d *CatalogLoggingDecorator) GetCategories(ctx context.Context) ([]models.Category, error) {
	start := time.Now()
	categories, err := d.wrapped.GetCategories(ctx)
	d.log("GetCategories", "", len(categories), err, time.Since(start))
	return categories, err
}

func (d *CatalogLoggingDecorator) GetCategoryImages(ctx context.Context, category string) ([]models.Image, error) {
	start := time.Now()
	images, err := d.wrapped.GetCategoryImages(ctx, category)
	d.log("GetCategoryImages", category, len(images), err, time.Since(start))
	return images, err
}

func (d *CatalogLoggingDecorator) GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error) {
	start := time.Now()
	colors, err := d.wrapped.GetColorVarieties(ctx)
	d.log("GetColorVarieties", "", len(colors), err, time.Since(start))
	return colors, err
}

func (d *CatalogLoggingDecorator) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	start := time.Now()
	results, err := d.wrapped.Search(ctx, query)
	d.log("Search", query, len(results), err, time.Since(start))
	return results, err
}

func (d *CatalogLoggingDecorator) log(operation, arg string, count int, err error, duration time.Duration) {
	if err != nil {
		slog.Error("catalog provider error",
			"provider", d.providerName,
			"operation", operation,
			"arg", arg,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return
	}

	slog.Debug("catalog provider response",
		"provider", d.providerName,
		"operation", operation,
		"arg", arg,
		"count", count,
		"duration_ms", duration.Milliseconds())
}

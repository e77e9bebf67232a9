package cache

import (
	"context"
	"fmt"
	"time"
)

// Fetch returns the cached value for key when present, otherwise runs
// producer, stores its result under key with the given TTL, and returns it.
// Producer failures propagate unmodified and nothing is cached, so a failed
// fetch never turns into a persistent negative entry.
func Fetch(ctx context.Context, c GenericCacheInterface, key string, ttl time.Duration, producer func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if data, found := c.Get(ctx, key); found {
		return data, nil
	}

	data, err := producer(ctx)
	if err != nil {
		return nil, err
	}

	c.Set(ctx, key, data, ttl)
	return data, nil
}

// Keys builds the cache keys used across the catalog and image services.
// Every parameter that affects a response is folded into its key so that
// requests differing in any parameter never collide.
var Keys = keyBuilder{}

type keyBuilder struct{}

func (keyBuilder) ProductCategories() string {
	return "product-categories"
}

func (keyBuilder) ProductsByCategory(category string) string {
	return fmt.Sprintf("products-%s", category)
}

func (keyBuilder) ColorVarieties() string {
	return "color-varieties"
}

func (keyBuilder) Search(query string) string {
	return fmt.Sprintf("search-%s", query)
}

func (keyBuilder) Image(path string, width, height int, format string, quality int, fit string) string {
	w := "auto"
	if width > 0 {
		w = fmt.Sprintf("%d", width)
	}
	h := "auto"
	if height > 0 {
		h = fmt.Sprintf("%d", height)
	}
	q := "default"
	if quality > 0 {
		q = fmt.Sprintf("%d", quality)
	}
	// An absent fit resizes exactly like cover, so both share one entry.
	f := fit
	if f == "" {
		f = "cover"
	}
	return fmt.Sprintf("image-%s-%s-%s-%s-%s-%s", path, w, h, format, q, f)
}

// Invalidator groups the manual invalidation entry points used when catalog
// content changes upstream.
type Invalidator struct {
	cache GenericCacheInterface
}

func NewInvalidator(cache GenericCacheInterface) *Invalidator {
	return &Invalidator{cache: cache}
}

// Products drops the category listing.
func (i *Invalidator) Products(ctx context.Context) {
	i.cache.Delete(ctx, Keys.ProductCategories())
}

// Category drops a single category's image listing.
func (i *Invalidator) Category(ctx context.Context, category string) {
	i.cache.Delete(ctx, Keys.ProductsByCategory(category))
}

// Colors drops the color variety listing.
func (i *Invalidator) Colors(ctx context.Context) {
	i.cache.Delete(ctx, Keys.ColorVarieties())
}

// All clears every cached entry.
func (i *Invalidator) All(ctx context.Context) {
	i.cache.Clear(ctx)
}

package providers

import (
	"context"
	stderrors "errors"
	"log/slog"

	"graniteapi.app/errors"
	"graniteapi.app/models"
)

// BaseCatalogHandler links one catalog provider into a fallback chain. A link
// answers when its provider succeeds; upstream errors fall through to the
// next link, but a definitive not-found answer does not.
type BaseCatalogHandler struct {
	next         CatalogProviderChain
	provider     CatalogProvider
	providerName string
}

func NewBaseCatalogHandler(provider CatalogProvider, providerName string) *BaseCatalogHandler {
	return &BaseCatalogHandler{
		provider:     provider,
		providerName: providerName,
	}
}

func (h *BaseCatalogHandler) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := h.provider.GetCategories(ctx)
	if h.fellThrough("GetCategories", err) {
		return h.next.GetCategories(ctx)
	}
	return categories, err
}

func (h *BaseCatalogHandler) GetCategoryImages(ctx context.Context, category string) ([]models.Image, error) {
	images, err := h.provider.GetCategoryImages(ctx, category)
	if h.fellThrough("GetCategoryImages", err) {
		return h.next.GetCategoryImages(ctx, category)
	}
	return images, err
}

func (h *BaseCatalogHandler) GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error) {
	colors, err := h.provider.GetColorVarieties(ctx)
	if h.fellThrough("GetColorVarieties", err) {
		return h.next.GetColorVarieties(ctx)
	}
	return colors, err
}

func (h *BaseCatalogHandler) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	results, err := h.provider.Search(ctx, query)
	if h.fellThrough("Search", err) {
		return h.next.Search(ctx, query)
	}
	return results, err
}

// fellThrough reports whether the chain should delegate to the next link.
// NotFound is an authoritative answer from the source and is returned as-is.
func (h *BaseCatalogHandler) fellThrough(operation string, err error) bool {
	if err == nil || h.next == nil {
		return false
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Type == errors.NotFoundError {
		return false
	}

	slog.Info("catalog provider failed", "provider", h.providerName, "operation", operation, "error", err)
	return true
}

func (h *BaseCatalogHandler) SetNext(handler CatalogProviderChain) {
	h.next = handler
}

func (h *BaseCatalogHandler) GetProviderName() string {
	return h.providerName
}

type ChainBuilder struct {
	handlers []CatalogProviderChain
}

func NewChainBuilder() *ChainBuilder {
	return &ChainBuilder{
		handlers: make([]CatalogProviderChain, 0),
	}
}

func (cb *ChainBuilder) AddHandler(handler CatalogProviderChain) *ChainBuilder {
	cb.handlers = append(cb.handlers, handler)
	return cb
}

func (cb *ChainBuilder) Build() CatalogProviderChain {
	if len(cb.handlers) == 0 {
		return nil
	}

	for i := 0; i < len(cb.handlers)-1; i++ {
		cb.handlers[i].SetNext(cb.handlers[i+1])
	}

	return cb.handlers[0]
}

package providers

import (
	"context"

	"graniteapi.app/models"
)

// CatalogProvider defines the interface for product catalog data sources
type CatalogProvider interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryImages(ctx context.Context, category string) ([]models.Image, error)
	GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error)
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// CatalogProviderChain defines the interface for Chain of Responsibility pattern
type CatalogProviderChain interface {
	CatalogProvider
	SetNext(handler CatalogProviderChain)
	GetProviderName() string
}

// EmailProvider defines the interface for email providers
type EmailProvider interface {
	SendEmail(to, subject, body string, isHTML bool) error
}

// CatalogManager defines the interface for catalog provider management
type CatalogManager interface {
	CatalogProvider
	GetProviderInfo() map[string]interface{}
}

package service

import (
	"context"

	"graniteapi.app/imaging"
	"graniteapi.app/models"
	"graniteapi.app/providers"
)

// CatalogManagerInterface is an alias to the providers interface
type CatalogManagerInterface = providers.CatalogManager

// CatalogServiceInterface defines the interface for catalog listing operations
type CatalogServiceInterface interface {
	GetCategories(ctx context.Context) (*models.CategoriesResponse, error)
	GetCategoryImages(ctx context.Context, category string) (*models.CategoryImagesResponse, error)
	GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error)
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
	GetProviderInfo() map[string]interface{}
}

// ImageServiceInterface defines the interface for on-demand image delivery
type ImageServiceInterface interface {
	GetImage(ctx context.Context, path string, opts imaging.Options) (*imaging.Result, error)
}

// ContactServiceInterface defines the interface for contact form handling
type ContactServiceInterface interface {
	SubmitInquiry(req *models.InquiryRequest) (*models.InquiryResponse, error)
}

// InquiryRepositoryInterface defines the interface for inquiry data operations
type InquiryRepositoryInterface interface {
	Create(inquiry *models.Inquiry) error
	FindByReferenceID(referenceID string) (*models.Inquiry, error)
	MarkNotified(inquiry *models.Inquiry) error
}

// Ensure implementations satisfy interfaces
var _ CatalogServiceInterface = (*CatalogService)(nil)
var _ ImageServiceInterface = (*ImageService)(nil)
var _ ContactServiceInterface = (*ContactService)(nil)

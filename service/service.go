package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"graniteapi.app/config"
	"graniteapi.app/errors"
	"graniteapi.app/models"
	"graniteapi.app/pkg/pathutil"
	"graniteapi.app/pkg/validation"
	"graniteapi.app/providers"
)

// CatalogService handles product catalog operations
type CatalogService struct {
	provider CatalogManagerInterface
}

// NewCatalogService creates a new catalog service backed by the provider manager
func NewCatalogService(provider CatalogManagerInterface) *CatalogService {
	return &CatalogService{
		provider: provider,
	}
}

// GetCategories retrieves the product category listing
func (s *CatalogService) GetCategories(ctx context.Context) (*models.CategoriesResponse, error) {
	categories, err := s.provider.GetCategories(ctx)
	if err != nil {
		log.Printf("[ERROR] Catalog provider error: %v\n", err)
		return nil, err
	}

	return &models.CategoriesResponse{
		Categories: categories,
		Success:    true,
	}, nil
}

// GetCategoryImages retrieves the image listing of one category
func (s *CatalogService) GetCategoryImages(ctx context.Context, category string) (*models.CategoryImagesResponse, error) {
	sanitized, ok := pathutil.SanitizePath(category)
	if !ok || sanitized != category {
		return nil, errors.NewValidationError("invalid category name")
	}

	images, err := s.provider.GetCategoryImages(ctx, sanitized)
	if err != nil {
		return nil, err
	}

	return &models.CategoryImagesResponse{Images: images}, nil
}

// GetColorVarieties retrieves the granite color swatch listing
func (s *CatalogService) GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error) {
	return s.provider.GetColorVarieties(ctx)
}

// Search looks up products matching the query
func (s *CatalogService) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	trimmed, ok := validation.TrimAndValidate(query)
	if !ok || !validation.IsValidSearchQuery(trimmed) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("search query must be at least %d characters", validation.MinSearchQueryLength))
	}

	results, err := s.provider.Search(ctx, trimmed)
	if err != nil {
		log.Printf("[ERROR] Catalog search error: %v\n", err)
		return nil, err
	}

	return &models.SearchResponse{
		Query:   trimmed,
		Count:   len(results),
		Results: results,
	}, nil
}

// GetProviderInfo returns information about the configured catalog sources
func (s *CatalogService) GetProviderInfo() map[string]interface{} {
	return s.provider.GetProviderInfo()
}

// ContactService handles contact form submissions
type ContactService struct {
	repo          InquiryRepositoryInterface
	emailProvider providers.EmailProvider
	config        *config.Config
}

// NewContactService creates a new contact service
func NewContactService(
	repo InquiryRepositoryInterface,
	emailProvider providers.EmailProvider,
	config *config.Config,
) *ContactService {
	return &ContactService{
		repo:          repo,
		emailProvider: emailProvider,
		config:        config,
	}
}

// SubmitInquiry validates, persists, and reports a contact form submission.
// The inquiry survives even when the notification email fails; the caller
// sees the failure and the row stays flagged for a later resend.
func (s *ContactService) SubmitInquiry(req *models.InquiryRequest) (*models.InquiryResponse, error) {
	log.Printf("[DEBUG] ContactService.SubmitInquiry called for email: %s\n", req.Email)

	inquiry, err := s.buildInquiry(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(inquiry); err != nil {
		return nil, errors.NewDatabaseError("failed to save inquiry", err)
	}

	if err := s.sendNotification(inquiry); err != nil {
		log.Printf("[ERROR] Inquiry %s saved but notification failed: %v\n", inquiry.ReferenceID, err)
		return nil, err
	}

	if err := s.repo.MarkNotified(inquiry); err != nil {
		log.Printf("[ERROR] Failed to mark inquiry %s notified: %v\n", inquiry.ReferenceID, err)
	}

	return &models.InquiryResponse{
		Success:     true,
		ReferenceID: inquiry.ReferenceID,
	}, nil
}

func (s *ContactService) buildInquiry(req *models.InquiryRequest) (*models.Inquiry, error) {
	name, ok := validation.TrimAndValidate(req.Name)
	if !ok {
		return nil, errors.NewValidationError("name is required")
	}

	message, ok := validation.TrimAndValidate(req.Message)
	if !ok {
		return nil, errors.NewValidationError("message is required")
	}

	if !validation.IsValidEmail(req.Email) {
		return nil, errors.NewValidationError("invalid email format")
	}

	return &models.Inquiry{
		ReferenceID: uuid.New().String(),
		Name:        name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     message,
	}, nil
}

func (s *ContactService) sendNotification(inquiry *models.Inquiry) error {
	subject := fmt.Sprintf("New inquiry from %s", inquiry.Name)
	if inquiry.Subject != "" {
		subject = fmt.Sprintf("New inquiry: %s", inquiry.Subject)
	}

	body := fmt.Sprintf(
		"Reference: %s\nName: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		inquiry.ReferenceID, inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Message)

	return s.emailProvider.SendEmail(s.config.Email.ContactEmail, subject, body, false)
}

// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"graniteapi.app/models"
)

// InquiryRepository handles data access operations for contact inquiries
type InquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new repository for inquiry data
func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create persists a new inquiry to the database
func (r *InquiryRepository) Create(inquiry *models.Inquiry) error {
	log.Printf("[DEBUG] InquiryRepository.Create: reference=%s email=%s\n", inquiry.ReferenceID, inquiry.Email)

	result := r.db.Create(inquiry)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating inquiry: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// FindByReferenceID retrieves an inquiry by its public reference
func (r *InquiryRepository) FindByReferenceID(referenceID string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	result := r.db.Where("reference_id = ?", referenceID).First(&inquiry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding inquiry: %v\n", result.Error)
		return nil, result.Error
	}

	return &inquiry, nil
}

// MarkNotified records that the owner notification email went out
func (r *InquiryRepository) MarkNotified(inquiry *models.Inquiry) error {
	result := r.db.Model(inquiry).Update("notified", true)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when marking inquiry notified: %v\n", result.Error)
		return result.Error
	}

	inquiry.Notified = true
	return nil
}

// ListRecent returns the newest inquiries, most recent first
func (r *InquiryRepository) ListRecent(limit int) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	result := r.db.Order("created_at DESC").Limit(limit).Find(&inquiries)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing inquiries: %v\n", result.Error)
		return nil, result.Error
	}

	return inquiries, nil
}

// CountPendingNotifications returns how many inquiries still await the owner email
func (r *InquiryRepository) CountPendingNotifications() (int64, error) {
	var count int64
	result := r.db.Model(&models.Inquiry{}).Where("notified = ?", false).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

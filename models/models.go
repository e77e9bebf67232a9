// Package models defines data structures used throughout the application
package models

import (
	"time"

	"gorm.io/gorm"
)

// Category represents a product category descriptor served to the frontend
type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
	ImageCount  int    `json:"imageCount,omitempty"`
}

// Image represents a single catalog image descriptor
type Image struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ColorVariety represents a granite color swatch
type ColorVariety struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Category  string `json:"category"`
	HexCode   string `json:"hexCode,omitempty"`
	Available *bool  `json:"available,omitempty"`
}

// SearchResult represents a single product search match
type SearchResult struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Category  string `json:"category"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// CategoriesResponse is the payload of the category listing endpoint
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
	Success    bool       `json:"success"`
}

// CategoryImagesResponse is the payload of the per-category image listing endpoint
type CategoryImagesResponse struct {
	Images []Image `json:"images"`
}

// SearchResponse is the payload of the search endpoint
type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

// Inquiry represents a stored contact form submission
type Inquiry struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ReferenceID string         `json:"reference_id" gorm:"uniqueIndex;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Email       string         `json:"email" gorm:"index;not null"`
	Phone       string         `json:"phone"`
	Subject     string         `json:"subject"`
	Message     string         `json:"message" gorm:"not null"`
	Notified    bool           `json:"notified" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// InquiryRequest represents data required to submit a contact inquiry
type InquiryRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message" binding:"required"`
}

// InquiryResponse is returned after a successful contact submission
type InquiryResponse struct {
	Success     bool   `json:"success"`
	ReferenceID string `json:"referenceId"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

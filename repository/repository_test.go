package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"graniteapi.app/models"
)

// Setup test database with in-memory SQLite
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Inquiry{})
	assert.NoError(t, err)

	return db
}

func newTestInquiry(email string) *models.Inquiry {
	return &models.Inquiry{
		ReferenceID: uuid.New().String(),
		Name:        "John Smith",
		Email:       email,
		Phone:       "555-0100",
		Subject:     "Single monument pricing",
		Message:     "Looking for a gray granite upright monument.",
	}
}

// TestInquiryRepository_Create tests persisting a contact inquiry
func TestInquiryRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInquiryRepository(db)

	t.Run("ValidInquiry", func(t *testing.T) {
		inquiry := newTestInquiry("customer@example.com")
		err := repo.Create(inquiry)
		assert.NoError(t, err)
		assert.NotZero(t, inquiry.ID)
		assert.False(t, inquiry.Notified)
	})

	t.Run("DuplicateReference", func(t *testing.T) {
		inquiry := newTestInquiry("customer@example.com")
		assert.NoError(t, repo.Create(inquiry))

		duplicate := newTestInquiry("other@example.com")
		duplicate.ReferenceID = inquiry.ReferenceID
		err := repo.Create(duplicate)
		assert.Error(t, err)
	})
}

// TestInquiryRepository_FindByReferenceID tests looking up an inquiry by public reference
func TestInquiryRepository_FindByReferenceID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInquiryRepository(db)

	t.Run("NotFound", func(t *testing.T) {
		inquiry, err := repo.FindByReferenceID(uuid.New().String())
		assert.NoError(t, err)
		assert.Nil(t, inquiry)
	})

	t.Run("Found", func(t *testing.T) {
		created := newTestInquiry("customer@example.com")
		assert.NoError(t, repo.Create(created))

		found, err := repo.FindByReferenceID(created.ReferenceID)
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, created.Email, found.Email)
		assert.Equal(t, created.Message, found.Message)
	})
}

// TestInquiryRepository_MarkNotified tests flipping the notification flag
func TestInquiryRepository_MarkNotified(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInquiryRepository(db)

	inquiry := newTestInquiry("customer@example.com")
	assert.NoError(t, repo.Create(inquiry))

	err := repo.MarkNotified(inquiry)
	assert.NoError(t, err)
	assert.True(t, inquiry.Notified)

	found, err := repo.FindByReferenceID(inquiry.ReferenceID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.True(t, found.Notified)
}

// TestInquiryRepository_ListRecent tests ordering and limiting of the inquiry listing
func TestInquiryRepository_ListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInquiryRepository(db)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		assert.NoError(t, repo.Create(newTestInquiry(email)))
	}

	inquiries, err := repo.ListRecent(2)
	assert.NoError(t, err)
	assert.Len(t, inquiries, 2)
}

// TestInquiryRepository_CountPendingNotifications tests counting unnotified inquiries
func TestInquiryRepository_CountPendingNotifications(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInquiryRepository(db)

	first := newTestInquiry("a@example.com")
	second := newTestInquiry("b@example.com")
	assert.NoError(t, repo.Create(first))
	assert.NoError(t, repo.Create(second))
	assert.NoError(t, repo.MarkNotified(first))

	count, err := repo.CountPendingNotifications()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

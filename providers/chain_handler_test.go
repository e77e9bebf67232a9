package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graniteapi.app/errors"
	"graniteapi.app/models"
)

type stubCatalogProvider struct {
	categories []models.Category
	images     []models.Image
	colors     []models.ColorVariety
	results    []models.SearchResult
	err        error
	calls      int
}

func (s *stubCatalogProvider) GetCategories(ctx context.Context) ([]models.Category, error) {
	s.calls++
	return s.categories, s.err
}

func (s *stubCatalogProvider) GetCategoryImages(ctx context.Context, category string) ([]models.Image, error) {
	s.calls++
	return s.images, s.err
}

func (s *stubCatalogProvider) GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error) {
	s.calls++
	return s.colors, s.err
}

func (s *stubCatalogProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func TestChainFallsBackOnProviderError(t *testing.T) {
	primary := &stubCatalogProvider{err: errors.NewExternalAPIError("upstream down", nil)}
	secondary := &stubCatalogProvider{categories: []models.Category{{Name: "single-monuments", Slug: "single-monuments"}}}

	chain := NewChainBuilder().
		AddHandler(NewBaseCatalogHandler(primary, "Primary")).
		AddHandler(NewBaseCatalogHandler(secondary, "Secondary")).
		Build()

	categories, err := chain.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "single-monuments", categories[0].Slug)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestChainNotFoundIsAuthoritative(t *testing.T) {
	primary := &stubCatalogProvider{err: errors.NewNotFoundError("category not found")}
	secondary := &stubCatalogProvider{images: []models.Image{{Name: "fallback.jpg"}}}

	chain := NewChainBuilder().
		AddHandler(NewBaseCatalogHandler(primary, "Primary")).
		AddHandler(NewBaseCatalogHandler(secondary, "Secondary")).
		Build()

	_, err := chain.GetCategoryImages(context.Background(), "obelisks")
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.NotFoundError, appErr.Type)
	assert.Equal(t, 0, secondary.calls, "not-found answers must not trigger fallback")
}

func TestChainPrimarySuccessSkipsSecondary(t *testing.T) {
	primary := &stubCatalogProvider{colors: []models.ColorVariety{{Name: "bahama blue"}}}
	secondary := &stubCatalogProvider{}

	chain := NewChainBuilder().
		AddHandler(NewBaseCatalogHandler(primary, "Primary")).
		AddHandler(NewBaseCatalogHandler(secondary, "Secondary")).
		Build()

	colors, err := chain.GetColorVarieties(context.Background())
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, 0, secondary.calls)
}

func TestChainLastLinkErrorPropagates(t *testing.T) {
	primary := &stubCatalogProvider{err: errors.NewExternalAPIError("primary down", nil)}
	secondary := &stubCatalogProvider{err: errors.NewExternalAPIError("secondary down", nil)}

	chain := NewChainBuilder().
		AddHandler(NewBaseCatalogHandler(primary, "Primary")).
		AddHandler(NewBaseCatalogHandler(secondary, "Secondary")).
		Build()

	_, err := chain.Search(context.Background(), "angel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secondary down")
}

func TestChainBuilderEmpty(t *testing.T) {
	assert.Nil(t, NewChainBuilder().Build())
}

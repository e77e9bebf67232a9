package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"graniteapi.app/config"
	"graniteapi.app/errors"
	"graniteapi.app/models"
)

// StrapiProvider implements CatalogProvider against a headless Strapi CMS
type StrapiProvider struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

// NewStrapiProvider creates a new Strapi-backed catalog provider
func NewStrapiProvider(cfg *config.StrapiConfig) *StrapiProvider {
	return &StrapiProvider{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type strapiCategory struct {
	DocumentID   string `json:"documentId"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Featured     bool   `json:"featured"`
	DisplayOrder int    `json:"displayOrder"`
	Thumbnail    *struct {
		URL string `json:"url"`
	} `json:"thumbnail"`
}

type strapiColor struct {
	Name         string `json:"name"`
	HexCode      string `json:"hexCode"`
	Available    bool   `json:"available"`
	DisplayOrder int    `json:"displayOrder"`
	Swatch       *struct {
		URL string `json:"url"`
	} `json:"swatch"`
}

type strapiProduct struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image *struct {
		URL string `json:"url"`
	} `json:"image"`
	Categories []struct {
		Slug string `json:"slug"`
	} `json:"product_categories"`
}

// GetCategories retrieves product categories from Strapi
func (p *StrapiProvider) GetCategories(ctx context.Context) ([]models.Category, error) {
	var payload struct {
		Data []strapiCategory `json:"data"`
	}
	if err := p.request(ctx, "/api/product-categories?sort=displayOrder:asc", &payload); err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(payload.Data))
	for _, c := range payload.Data {
		category := models.Category{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Featured:    c.Featured,
			Path:        "/products/" + c.Slug,
		}
		if c.Thumbnail != nil {
			category.Thumbnail = p.mediaURL(c.Thumbnail.URL)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// GetCategoryImages retrieves the product images of one category from Strapi
func (p *StrapiProvider) GetCategoryImages(ctx context.Context, category string) ([]models.Image, error) {
	endpoint := fmt.Sprintf("/api/products?filters[product_categories][slug][$eq]=%s&populate=*&sort=displayOrder:asc",
		url.QueryEscape(category))

	var payload struct {
		Data []strapiProduct `json:"data"`
	}
	if err := p.request(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if len(payload.Data) == 0 {
		return nil, errors.NewNotFoundError("category not found")
	}

	images := make([]models.Image, 0, len(payload.Data))
	for _, prod := range payload.Data {
		if prod.Image == nil {
			continue
		}
		images = append(images, models.Image{
			Name: prod.Name,
			Path: p.mediaURL(prod.Image.URL),
		})
	}
	return images, nil
}

// GetColorVarieties retrieves granite color swatches from Strapi
func (p *StrapiProvider) GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error) {
	var payload struct {
		Data []strapiColor `json:"data"`
	}
	if err := p.request(ctx, "/api/color-varieties?sort=displayOrder:asc", &payload); err != nil {
		return nil, err
	}

	colors := make([]models.ColorVariety, 0, len(payload.Data))
	for _, c := range payload.Data {
		available := c.Available
		color := models.ColorVariety{
			Name:      c.Name,
			Category:  "colors",
			HexCode:   c.HexCode,
			Available: &available,
		}
		if c.Swatch != nil {
			color.Path = p.mediaURL(c.Swatch.URL)
		}
		colors = append(colors, color)
	}
	return colors, nil
}

// Search queries Strapi for products whose name or description contains the query
func (p *StrapiProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	endpoint := fmt.Sprintf(
		"/api/products?filters[$or][0][name][$containsi]=%s&filters[$or][1][description][$containsi]=%s&populate=*",
		url.QueryEscape(query), url.QueryEscape(query))

	var payload struct {
		Data []strapiProduct `json:"data"`
	}
	if err := p.request(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(payload.Data))
	for _, prod := range payload.Data {
		result := models.SearchResult{
			Name: prod.Name,
		}
		if len(prod.Categories) > 0 {
			result.Category = prod.Categories[0].Slug
		}
		if prod.Image != nil {
			result.Path = p.mediaURL(prod.Image.URL)
			result.Thumbnail = result.Path
		}
		results = append(results, result)
	}
	return results, nil
}

func (p *StrapiProvider) request(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+endpoint, nil)
	if err != nil {
		return errors.NewExternalAPIError("failed to build Strapi request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("failed to reach Strapi", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			// Ignore close error as it's not critical for the main operation
			_ = closeErr
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return errors.NewNotFoundError("resource not found")
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewExternalAPIError(fmt.Sprintf("Strapi returned status code %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError("failed to decode Strapi response", err)
	}

	return nil
}

// mediaURL resolves a Strapi media path to an absolute URL
func (p *StrapiProvider) mediaURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return p.baseURL + path
}

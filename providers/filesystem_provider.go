package providers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"graniteapi.app/errors"
	"graniteapi.app/models"
	"graniteapi.app/pkg/pathutil"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// FilesystemProvider serves catalog listings straight from the image tree on
// disk: categories are directories under products/, colors are files under
// colors/.
type FilesystemProvider struct {
	imagesRoot string
}

// NewFilesystemProvider creates a catalog provider backed by a local image tree
func NewFilesystemProvider(imagesRoot string) *FilesystemProvider {
	return &FilesystemProvider{imagesRoot: imagesRoot}
}

// GetCategories lists the product category directories
func (p *FilesystemProvider) GetCategories(ctx context.Context) ([]models.Category, error) {
	productsDir := filepath.Join(p.imagesRoot, "products")

	entries, err := os.ReadDir(productsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("products directory not found")
		}
		return nil, errors.NewExternalAPIError("failed to read products directory", err)
	}

	categories := make([]models.Category, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		count, err := p.countImages(filepath.Join(productsDir, entry.Name()))
		if err != nil {
			return nil, err
		}

		categories = append(categories, models.Category{
			Name:       entry.Name(),
			Slug:       entry.Name(),
			Path:       "/products/" + entry.Name(),
			ImageCount: count,
		})
	}

	return categories, nil
}

// GetCategoryImages lists the image files of one category
func (p *FilesystemProvider) GetCategoryImages(ctx context.Context, category string) ([]models.Image, error) {
	categoryDir, err := pathutil.SecureJoin(filepath.Join(p.imagesRoot, "products"), category)
	if err != nil {
		return nil, errors.NewValidationError("invalid category name")
	}

	entries, err := os.ReadDir(categoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("category not found")
		}
		return nil, errors.NewExternalAPIError("failed to read category directory", err)
	}

	images := make([]models.Image, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}

		relativePath := pathutil.NormalizeSlashes(filepath.Join("products", category, entry.Name()))
		images = append(images, models.Image{
			Name: entry.Name(),
			Path: "/images/" + relativePath,
		})
	}

	return images, nil
}

// GetColorVarieties lists the granite color swatches. Display names derive
// from the file basename with dashes turned into spaces.
func (p *FilesystemProvider) GetColorVarieties(ctx context.Context) ([]models.ColorVariety, error) {
	colorsDir := filepath.Join(p.imagesRoot, "colors")

	entries, err := os.ReadDir(colorsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("colors directory not found")
		}
		return nil, errors.NewExternalAPIError("failed to read colors directory", err)
	}

	colors := make([]models.ColorVariety, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		colors = append(colors, models.ColorVariety{
			Name:     strings.ReplaceAll(base, "-", " "),
			Path:     entry.Name(),
			Category: "colors",
		})
	}

	return colors, nil
}

// Search walks every category directory and matches the query as a substring
// of the lowercase file basename.
func (p *FilesystemProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	productsDir := filepath.Join(p.imagesRoot, "products")

	categoryEntries, err := os.ReadDir(productsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("products directory not found")
		}
		return nil, errors.NewExternalAPIError("failed to read products directory", err)
	}

	normalizedQuery := strings.ToLower(query)
	results := []models.SearchResult{}

	for _, categoryEntry := range categoryEntries {
		if !categoryEntry.IsDir() {
			continue
		}
		category := categoryEntry.Name()

		files, err := os.ReadDir(filepath.Join(productsDir, category))
		if err != nil {
			return nil, errors.NewExternalAPIError("failed to read category directory", err)
		}

		for _, file := range files {
			if file.IsDir() || !isImageFile(file.Name()) {
				continue
			}

			base := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
			if !strings.Contains(strings.ToLower(base), normalizedQuery) {
				continue
			}

			relativePath := pathutil.NormalizeSlashes(filepath.Join("products", category, file.Name()))
			results = append(results, models.SearchResult{
				Name:      base,
				Path:      "/images/" + relativePath,
				Category:  category,
				Thumbnail: "/api/image?path=" + pathutil.NormalizeSlashes(filepath.Join(category, file.Name())),
			})
		}
	}

	return results, nil
}

func (p *FilesystemProvider) countImages(dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.NewExternalAPIError("failed to read category directory", err)
	}

	count := 0
	for _, file := range files {
		if !file.IsDir() && isImageFile(file.Name()) {
			count++
		}
	}
	return count, nil
}

func isImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

package service

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"graniteapi.app/config"
	"graniteapi.app/errors"
	"graniteapi.app/imaging"
	"graniteapi.app/pkg/pathutil"
	"graniteapi.app/providers/cache"
)

// ImageService resolves catalog image paths and serves transformed variants.
// Every filesystem access goes through SecureJoin, so path sanitization is
// defense-in-depth rather than the only guard. Finished transformations are
// cached; failures never are.
type ImageService struct {
	transformer *imaging.Transformer
	cache       cache.GenericCacheInterface
	catalogCfg  *config.CatalogConfig
	imageCfg    *config.ImageConfig
	cacheTTL    time.Duration
}

// NewImageService creates a new image delivery service
func NewImageService(
	transformer *imaging.Transformer,
	genericCache cache.GenericCacheInterface,
	catalogCfg *config.CatalogConfig,
	imageCfg *config.ImageConfig,
	cacheTTL time.Duration,
) *ImageService {
	return &ImageService{
		transformer: transformer,
		cache:       genericCache,
		catalogCfg:  catalogCfg,
		imageCfg:    imageCfg,
		cacheTTL:    cacheTTL,
	}
}

// GetImage loads the image at path, applies opts, and returns the finished
// variant. Unresolvable or untransformable images degrade to the configured
// placeholder; only when the placeholder itself fails does the caller see an
// error.
func (s *ImageService) GetImage(ctx context.Context, path string, opts imaging.Options) (*imaging.Result, error) {
	sanitized, ok := pathutil.SanitizePath(path)
	if !ok {
		return nil, errors.NewValidationError("invalid image path")
	}

	if err := s.validateOptions(opts); err != nil {
		return nil, err
	}

	key := cache.Keys.Image(sanitized, opts.Width, opts.Height, string(opts.Format), opts.Quality, string(opts.Fit))

	data, err := cache.Fetch(ctx, s.cache, key, s.cacheTTL, func(ctx context.Context) ([]byte, error) {
		result, err := s.produce(sanitized, opts)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	})
	if err != nil {
		return nil, err
	}

	var result imaging.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.NewTransformError("corrupt cached image entry", err)
	}

	return &result, nil
}

func (s *ImageService) validateOptions(opts imaging.Options) error {
	if opts.Width < 0 || opts.Height < 0 {
		return errors.NewValidationError("image dimensions must be positive")
	}
	if opts.Width > s.imageCfg.MaxWidth || opts.Height > s.imageCfg.MaxHeight {
		return errors.NewValidationError("requested image dimensions exceed the allowed maximum")
	}
	if opts.Quality < 0 || opts.Quality > 100 {
		return errors.NewValidationError("image quality must be between 1 and 100")
	}
	return nil
}

func (s *ImageService) produce(sanitized string, opts imaging.Options) (*imaging.Result, error) {
	opts = s.applyQualityDefault(opts)

	source, err := s.loadSource(sanitized)
	if err != nil {
		log.Printf("[DEBUG] Image %s not resolvable, serving placeholder: %v\n", sanitized, err)
		return s.servePlaceholder(opts, err)
	}

	result, err := s.transformer.Optimize(source, opts)
	if err != nil {
		log.Printf("[ERROR] Transform failed for %s: %v\n", sanitized, err)
		return s.servePlaceholder(opts, err)
	}

	return result, nil
}

// loadSource resolves the sanitized path under the images root, retrying
// under products/ so bare "<category>/<file>" references keep working.
func (s *ImageService) loadSource(sanitized string) ([]byte, error) {
	candidates := []string{sanitized, "products/" + sanitized}

	var lastErr error
	for _, candidate := range candidates {
		full, err := pathutil.SecureJoin(s.catalogCfg.ImagesRoot, candidate)
		if err != nil {
			lastErr = errors.NewValidationError("invalid image path")
			continue
		}

		data, err := os.ReadFile(full)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, errors.NewTransformError("read image file", err)
		}
		lastErr = errors.NewNotFoundError("image not found")
	}

	return nil, lastErr
}

func (s *ImageService) servePlaceholder(opts imaging.Options, cause error) (*imaging.Result, error) {
	if s.catalogCfg.PlaceholderPath == "" {
		return nil, cause
	}

	full, err := pathutil.SecureJoin(s.catalogCfg.ImagesRoot, s.catalogCfg.PlaceholderPath)
	if err != nil {
		return nil, cause
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, cause
	}

	result, err := s.transformer.Optimize(data, opts)
	if err != nil {
		return nil, cause
	}

	return result, nil
}

func (s *ImageService) applyQualityDefault(opts imaging.Options) imaging.Options {
	if opts.Quality != 0 {
		return opts
	}

	switch opts.Format {
	case imaging.FormatWebP:
		opts.Quality = s.imageCfg.WebPQuality
	case imaging.FormatJPEG:
		opts.Quality = s.imageCfg.JPEGQuality
	}
	return opts
}

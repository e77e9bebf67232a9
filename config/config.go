package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"graniteapi.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server     ServerConfig    `split_words:"true"`
	Database   DatabaseConfig  `split_words:"true"`
	Catalog    CatalogConfig   `split_words:"true"`
	Strapi     StrapiConfig    `split_words:"true"`
	Cache      CacheConfig     `split_words:"true"`
	Image      ImageConfig     `split_words:"true"`
	Email      EmailConfig     `split_words:"true"`
	Scheduler  SchedulerConfig `split_words:"true"`
	AppBaseURL string          `envconfig:"APP_URL" default:"http://localhost:8080"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"graniteapi"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// CatalogConfig contains settings for the product catalog source
type CatalogConfig struct {
	// Source selects where catalog listings come from: "filesystem",
	// "strapi", or "strapi,filesystem" for remote-first with local fallback.
	Source          string `envconfig:"CATALOG_SOURCE" default:"filesystem"`
	ImagesRoot      string `envconfig:"CATALOG_IMAGES_ROOT" default:"public/images"`
	PlaceholderPath string `envconfig:"CATALOG_PLACEHOLDER" default:"placeholder.jpg"`
	CacheTTLMinutes int    `envconfig:"CATALOG_CACHE_TTL_MINUTES" default:"5"`
}

// StrapiConfig contains settings for the headless CMS upstream
type StrapiConfig struct {
	BaseURL        string `envconfig:"STRAPI_URL" default:"http://localhost:1337"`
	APIToken       string `envconfig:"STRAPI_API_TOKEN"`
	TimeoutSeconds int    `envconfig:"STRAPI_TIMEOUT_SECONDS" default:"10"`
}

// CacheConfig contains cache backend settings
type CacheConfig struct {
	Type                string `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr           string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword       string `envconfig:"CACHE_REDIS_PASSWORD"`
	RedisDB             int    `envconfig:"CACHE_REDIS_DB" default:"0"`
	DialTimeoutSecs     int    `envconfig:"CACHE_REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeoutSecs     int    `envconfig:"CACHE_REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeoutSecs    int    `envconfig:"CACHE_REDIS_WRITE_TIMEOUT" default:"3"`
	ImageTTLSeconds     int    `envconfig:"CACHE_IMAGE_TTL_SECONDS" default:"2592000"`
	EnableInstrumenting bool   `envconfig:"CACHE_ENABLE_METRICS" default:"true"`
}

// ImageConfig contains settings for the image transformation pipeline
type ImageConfig struct {
	MaxWidth             int `envconfig:"IMAGE_MAX_WIDTH" default:"1920"`
	MaxHeight            int `envconfig:"IMAGE_MAX_HEIGHT" default:"1920"`
	WebPQuality          int `envconfig:"IMAGE_WEBP_QUALITY" default:"80"`
	JPEGQuality          int `envconfig:"IMAGE_JPEG_QUALITY" default:"85"`
	MaxAgeSeconds        int `envconfig:"IMAGE_MAX_AGE_SECONDS" default:"2592000"`
	StaleWhileRevalidate int `envconfig:"IMAGE_SWR_SECONDS" default:"604800"`
}

// EmailConfig contains email server and sending settings
type EmailConfig struct {
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"EMAIL_SMTP_USERNAME"`
	SMTPPassword string `envconfig:"EMAIL_SMTP_PASSWORD"`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"Granite Catalog"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS" default:"no-reply@graniteapi.app"`
	ContactEmail string `envconfig:"CONTACT_EMAIL" default:"sales@graniteapi.app"`
}

// SchedulerConfig contains settings for the background task scheduler
type SchedulerConfig struct {
	CacheCleanupInterval int `envconfig:"CACHE_CLEANUP_INTERVAL" default:"10"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Strapi.Validate(c.Catalog.UsesStrapi()); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Image.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.validateAppBaseURL(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAppBaseURL() error {
	if c.AppBaseURL == "" {
		return errors.NewConfigurationError("APP_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(c.AppBaseURL, "http://") && !strings.HasPrefix(c.AppBaseURL, "https://") {
		return errors.NewConfigurationError("APP_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// SourceOrder returns the configured catalog sources in priority order
func (c *CatalogConfig) SourceOrder() []string {
	parts := strings.Split(c.Source, ",")
	sources := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sources = append(sources, trimmed)
		}
	}
	return sources
}

// UsesStrapi reports whether the Strapi upstream participates in the catalog chain
func (c *CatalogConfig) UsesStrapi() bool {
	for _, s := range c.SourceOrder() {
		if s == "strapi" {
			return true
		}
	}
	return false
}

// Validate checks catalog configuration
func (c *CatalogConfig) Validate() error {
	if c.ImagesRoot == "" {
		return errors.NewConfigurationError("CATALOG_IMAGES_ROOT cannot be empty", nil)
	}
	if c.CacheTTLMinutes < 1 {
		return errors.NewConfigurationError("CATALOG_CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	sources := c.SourceOrder()
	if len(sources) == 0 {
		return errors.NewConfigurationError("CATALOG_SOURCE cannot be empty", nil)
	}
	for _, s := range sources {
		if s != "filesystem" && s != "strapi" {
			return errors.NewConfigurationError(
				fmt.Sprintf("CATALOG_SOURCE entries must be 'filesystem' or 'strapi', got %q", s), nil)
		}
	}
	return nil
}

// Validate checks Strapi configuration; the token is only required when the
// catalog chain actually uses the Strapi upstream.
func (s *StrapiConfig) Validate(required bool) error {
	if !required {
		return nil
	}
	if s.BaseURL == "" {
		return errors.NewConfigurationError("STRAPI_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(s.BaseURL, "http://") && !strings.HasPrefix(s.BaseURL, "https://") {
		return errors.NewConfigurationError("STRAPI_URL must start with http:// or https://", nil)
	}
	if s.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("STRAPI_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be 'memory' or 'redis'", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty when CACHE_TYPE is redis", nil)
	}
	if c.ImageTTLSeconds < 1 {
		return errors.NewConfigurationError("CACHE_IMAGE_TTL_SECONDS must be at least 1 second", nil)
	}
	return nil
}

// Validate checks image pipeline configuration
func (i *ImageConfig) Validate() error {
	if i.MaxWidth < 1 || i.MaxHeight < 1 {
		return errors.NewConfigurationError("IMAGE_MAX_WIDTH and IMAGE_MAX_HEIGHT must be positive", nil)
	}
	if i.WebPQuality < 1 || i.WebPQuality > 100 {
		return errors.NewConfigurationError("IMAGE_WEBP_QUALITY must be between 1 and 100", nil)
	}
	if i.JPEGQuality < 1 || i.JPEGQuality > 100 {
		return errors.NewConfigurationError("IMAGE_JPEG_QUALITY must be between 1 and 100", nil)
	}
	if i.MaxAgeSeconds < 0 || i.StaleWhileRevalidate < 0 {
		return errors.NewConfigurationError("image cache header durations cannot be negative", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.CacheCleanupInterval < 1 {
		return errors.NewConfigurationError("CACHE_CLEANUP_INTERVAL must be at least 1 minute", nil)
	}
	if s.CacheCleanupInterval > 1440 {
		return errors.NewConfigurationError("CACHE_CLEANUP_INTERVAL cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}

package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"graniteapi.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Host: %s\n", cfg.Database.Host)
	log.Printf("  Port: %d\n", cfg.Database.Port)
	log.Printf("  User: %s\n", cfg.Database.User)
	log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
	log.Printf("  Name: %s\n", cfg.Database.Name)
	log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)

	log.Printf("\nCATALOG:\n")
	log.Printf("  Source: %s\n", cfg.Catalog.Source)
	log.Printf("  Images Root: %s\n", cfg.Catalog.ImagesRoot)
	log.Printf("  Placeholder: %s\n", cfg.Catalog.PlaceholderPath)
	log.Printf("  Cache TTL: %d minutes\n", cfg.Catalog.CacheTTLMinutes)

	if cfg.Catalog.UsesStrapi() {
		log.Printf("\nSTRAPI:\n")
		log.Printf("  Base URL: %s\n", cfg.Strapi.BaseURL)
		log.Printf("  API Token: %s\n", cd.maskString(cfg.Strapi.APIToken))
		log.Printf("  Timeout: %d seconds\n", cfg.Strapi.TimeoutSeconds)
	}

	log.Printf("\nCACHE:\n")
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	log.Printf("  Image TTL: %d seconds\n", cfg.Cache.ImageTTLSeconds)
	log.Printf("  Metrics: %t\n", cfg.Cache.EnableInstrumenting)

	log.Printf("\nIMAGE:\n")
	log.Printf("  Max Dimensions: %dx%d\n", cfg.Image.MaxWidth, cfg.Image.MaxHeight)
	log.Printf("  WebP Quality: %d\n", cfg.Image.WebPQuality)
	log.Printf("  JPEG Quality: %d\n", cfg.Image.JPEGQuality)

	log.Printf("\nEMAIL:\n")
	log.Printf("  SMTP Host: %s\n", cfg.Email.SMTPHost)
	log.Printf("  SMTP Port: %d\n", cfg.Email.SMTPPort)
	log.Printf("  SMTP Username: %s\n", cfg.Email.SMTPUsername)
	log.Printf("  SMTP Password: %s\n", cd.maskString(cfg.Email.SMTPPassword))
	log.Printf("  From Name: %s\n", cfg.Email.FromName)
	log.Printf("  From Address: %s\n", cfg.Email.FromAddress)
	log.Printf("  Contact Email: %s\n", cfg.Email.ContactEmail)

	log.Printf("\nSCHEDULER:\n")
	log.Printf("  Cache Cleanup Interval: %d minutes\n", cfg.Scheduler.CacheCleanupInterval)

	log.Printf("\nAPP BASE URL: %s\n", cfg.AppBaseURL)

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		log.Printf("%s=%s\n", key, value)
	}

	log.Println("===============================")
}

// maskString masks sensitive information like passwords and API keys
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// isSensitive checks if an environment variable key is considered sensitive
func (cd *ConfigDisplayer) isSensitive(key string) bool {
	sensitiveKeys := []string{
		"API_KEY", "PASSWORD", "SECRET", "TOKEN", "KEY", "PASS", "PWD",
	}

	key = strings.ToUpper(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}

	return false
}

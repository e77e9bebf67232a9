package providers

import (
	"fmt"
	"time"

	"graniteapi.app/config"
	"graniteapi.app/providers/cache"
)

// ProviderManager assembles the configured catalog sources into a fallback
// chain and fronts it with caching.
type ProviderManager struct {
	chain         CatalogProviderChain
	configuration *ProviderConfiguration
	CatalogProvider
}

type ProviderConfiguration struct {
	SourceOrder   []string
	ImagesRoot    string
	StrapiConfig  *config.StrapiConfig
	Cache         cache.GenericCacheInterface
	CacheTTL      time.Duration
	EnableLogging bool
}

func NewProviderManager(configuration *ProviderConfiguration) (*ProviderManager, error) {
	manager := &ProviderManager{
		configuration: configuration,
	}

	if err := manager.buildProviderChain(); err != nil {
		return nil, fmt.Errorf("build provider chain: %w", err)
	}

	return manager, nil
}

func (pm *ProviderManager) buildProviderChain() error {
	builder := NewChainBuilder()

	for _, source := range pm.configuration.SourceOrder {
		switch source {
		case "strapi":
			if pm.configuration.StrapiConfig == nil {
				return fmt.Errorf("strapi source configured without Strapi settings")
			}
			var provider CatalogProvider = NewStrapiProvider(pm.configuration.StrapiConfig)
			if pm.configuration.EnableLogging {
				provider = NewCatalogLoggingDecorator(provider, "Strapi")
			}
			builder.AddHandler(NewBaseCatalogHandler(provider, "Strapi"))
		case "filesystem":
			var provider CatalogProvider = NewFilesystemProvider(pm.configuration.ImagesRoot)
			if pm.configuration.EnableLogging {
				provider = NewCatalogLoggingDecorator(provider, "Filesystem")
			}
			builder.AddHandler(NewBaseCatalogHandler(provider, "Filesystem"))
		default:
			return fmt.Errorf("unknown catalog source: %s", source)
		}
	}

	chain := builder.Build()
	if chain == nil {
		return fmt.Errorf("no catalog sources configured")
	}
	pm.chain = chain

	var provider CatalogProvider = chain
	if pm.configuration.Cache != nil {
		provider = NewCatalogCacheProxy(chain, pm.configuration.Cache, pm.configuration.CacheTTL)
	}
	pm.CatalogProvider = provider

	return nil
}

// GetProviderInfo describes the assembled chain for debugging endpoints
func (pm *ProviderManager) GetProviderInfo() map[string]interface{} {
	return map[string]interface{}{
		"sources":       pm.configuration.SourceOrder,
		"primary":       pm.chain.GetProviderName(),
		"cache_enabled": pm.configuration.Cache != nil,
		"cache_ttl":     pm.configuration.CacheTTL.String(),
	}
}

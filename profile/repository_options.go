package profile

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
)

// RepositoryOption configures profile repository construction.
type RepositoryOption func(*RepositoryOptions)

// RepositoryOptions captures optional behavior for profile persistence.
type RepositoryOptions struct {
	CacheEnabled bool
	CacheConfig  *cache.Config
}

// WithCache toggles the read-through cache decorator. Public profile pages
// are read-heavy; the decorator keeps by-handle lookups off the store.
func WithCache(enabled bool) RepositoryOption {
	return func(opts *RepositoryOptions) {
		if opts == nil {
			return
		}
		opts.CacheEnabled = enabled
	}
}

// WithCacheConfig enables caching with the given configuration.
func WithCacheConfig(cfg cache.Config) RepositoryOption {
	return func(opts *RepositoryOptions) {
		if opts == nil {
			return
		}
		opts.CacheEnabled = true
		opts.CacheConfig = &cfg
	}
}

func applyRepositoryOptions(options []RepositoryOption) RepositoryOptions {
	var opts RepositoryOptions
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}

func maybeWrapCache(repo repository.Repository[*Record], opts RepositoryOptions) (repository.Repository[*Record], error) {
	if !opts.CacheEnabled {
		return repo, nil
	}
	if _, ok := repo.(*repositorycache.CachedRepository[*Record]); ok {
		return repo, nil
	}
	cfg := cache.DefaultConfig()
	if opts.CacheConfig != nil {
		cfg = *opts.CacheConfig
	}
	service, err := cache.NewCacheService(cfg)
	if err != nil {
		return nil, err
	}
	return repositorycache.New(repo, service, cache.NewDefaultKeySerializer()), nil
}

package annotate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/attest/internal/cache"
	"github.com/ppiankov/attest/internal/model"
)

// New creates an annotator from configuration, optionally wrapped in the
// annotation cache
func New(cfg model.AnnotatorConfig, cacheCfg model.CacheConfig) (Annotator, error) {
	var backend Annotator

	switch strings.ToLower(cfg.Backend) {
	case "", "rules":
		backend = NewRuleAnnotator()

	case "remote":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("remote annotator requires a base URL")
		}
		backend = NewRemoteAnnotator(cfg.BaseURL, cfg.Timeout, cfg.RequestsPerSecond, cfg.BurstSize)

	default:
		return nil, fmt.Errorf("unknown annotator backend: %s (supported: rules, remote)", cfg.Backend)
	}

	if !cacheCfg.Enabled {
		return backend, nil
	}

	var store cache.Cache
	if cacheCfg.Dir != "" {
		store = cache.NewLayeredCache(cacheCfg.MemoryTTL, cacheCfg.Dir, cacheCfg.DiskTTL)
	} else {
		store = cache.NewMemoryCache(cacheCfg.MemoryTTL, cacheCfg.MemoryTTL/2)
	}
	return NewCachedAnnotator(backend, store), nil
}

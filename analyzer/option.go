package analyzer

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/logrush/analyzer/cache"
)

type Option func(*Analyzer)

// WithCache shares an existing cache; WithCacheSize and WithRegisterer are then ignored
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCacheSize sets the number of documents retained by the analyzer's own cache
func WithCacheSize(size int) Option {
	return func(a *Analyzer) {
		a.cacheSize = size
	}
}

// WithRegisterer registers cache metrics with r
func WithRegisterer(r prometheus.Registerer) Option {
	return func(a *Analyzer) {
		a.registerer = r
	}
}

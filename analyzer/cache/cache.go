package cache

import (
	"log/slog"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/logrush/analyzer/parser"
	"github.com/viant/logrush/analyzer/scope"
)

// DefaultSize is the number of documents retained by default
const DefaultSize = 128

type (
	// ParseFunc turns source text into a tree
	ParseFunc func(text, fileName string) (*parser.Tree, error)
	// BuildFunc turns a tree into a scope root
	BuildFunc func(tree *parser.Tree) *scope.Scope
)

// Entry holds the analysis of one document version
type Entry struct {
	Key   string
	Tree  *parser.Tree
	Scope *scope.Scope
}

// Cache memoizes trees and scopes per file id and content fingerprint
type Cache struct {
	mux      sync.Mutex
	size     int
	entries  *lru.Cache[string, *Entry]
	lastSeen map[string]string // file id to fingerprint
	parse    ParseFunc
	build    BuildFunc
	logger   *slog.Logger
	metrics  *metrics
	registry prometheus.Registerer
}

// Option configures a Cache
type Option func(*Cache)

// WithSize sets the number of retained documents
func WithSize(size int) Option {
	return func(c *Cache) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegisterer registers the cache counters with r
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *Cache) {
		c.registry = r
	}
}

// WithParseFunc replaces the parser
func WithParseFunc(fn ParseFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.parse = fn
		}
	}
}

// WithBuildFunc replaces the scope builder
func WithBuildFunc(fn BuildFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.build = fn
		}
	}
}

// New creates a cache
func New(options ...Option) (*Cache, error) {
	ret := &Cache{
		size:     DefaultSize,
		lastSeen: map[string]string{},
		parse:    parser.Parse,
		build:    scope.Build,
		logger:   slog.Default(),
		metrics:  newMetrics(),
	}
	for _, opt := range options {
		opt(ret)
	}
	entries, err := lru.NewWithEvict[string, *Entry](ret.size, ret.onEvict)
	if err != nil {
		return nil, err
	}
	ret.entries = entries
	if err = ret.metrics.register(ret.registry); err != nil {
		return nil, err
	}
	return ret, nil
}

func keyFor(fileID, fingerprint string) string {
	return fileID + ":" + fingerprint
}

func fileOf(key string) string {
	if index := strings.LastIndex(key, ":"); index >= 0 {
		return key[:index]
	}
	return key
}

// onEvict is only triggered by callers holding c.mux
func (c *Cache) onEvict(key string, _ *Entry) {
	fileID := fileOf(key)
	if fingerprint, ok := c.lastSeen[fileID]; ok && keyFor(fileID, fingerprint) == key {
		delete(c.lastSeen, fileID)
	}
}

// Get returns the entry for text, parsing and building on a miss
func (c *Cache) Get(text, fileID string) (*Entry, error) {
	fingerprint, err := Fingerprint(text)
	if err != nil {
		return nil, err
	}
	key := keyFor(fileID, fingerprint)

	c.mux.Lock()
	defer c.mux.Unlock()
	previous, seen := c.lastSeen[fileID]
	if seen && previous == fingerprint {
		if entry, ok := c.entries.Get(key); ok {
			c.metrics.hits.Inc()
			c.logger.Debug("cache hit", slog.String("file", fileID))
			return entry, nil
		}
	}
	c.metrics.misses.Inc()
	if seen && previous != fingerprint {
		c.entries.Remove(keyFor(fileID, previous))
		delete(c.lastSeen, fileID)
	}

	tree, err := c.parse(text, fileID)
	if err != nil {
		c.metrics.parseFailures.Inc()
		return nil, err
	}
	entry := &Entry{Key: key, Tree: tree, Scope: c.build(tree)}
	c.entries.Add(key, entry)
	c.lastSeen[fileID] = fingerprint
	c.logger.Info("parsed document", slog.String("file", fileID), slog.String("fingerprint", fingerprint))
	return entry, nil
}

// Tree returns the syntax tree for text
func (c *Cache) Tree(text, fileID string) (*parser.Tree, error) {
	entry, err := c.Get(text, fileID)
	if err != nil {
		return nil, err
	}
	return entry.Tree, nil
}

// Scope returns the global scope for text
func (c *Cache) Scope(text, fileID string) (*scope.Scope, error) {
	entry, err := c.Get(text, fileID)
	if err != nil {
		return nil, err
	}
	return entry.Scope, nil
}

// Invalidate drops entries for the given file ids, or everything when none are given
func (c *Cache) Invalidate(fileIDs ...string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if len(fileIDs) == 0 {
		c.entries.Purge()
		c.lastSeen = map[string]string{}
		c.logger.Info("cache cleared")
		return
	}
	for _, fileID := range fileIDs {
		for _, key := range c.entries.Keys() {
			if fileOf(key) == fileID {
				c.entries.Remove(key)
			}
		}
		delete(c.lastSeen, fileID)
		c.logger.Info("cache invalidated", slog.String("file", fileID))
	}
}

// Len returns the number of retained documents
func (c *Cache) Len() int {
	return c.entries.Len()
}

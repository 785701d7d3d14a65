package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/logrush/analyzer/cache"
	"github.com/viant/logrush/analyzer/scope"
	"github.com/viant/logrush/document"
)

// Analyzer resolves lexical context and insertion points for documents
type Analyzer struct {
	cache      *cache.Cache
	logger     *slog.Logger
	cacheSize  int
	registerer prometheus.Registerer
}

// New creates an analyzer
func New(options ...Option) (*Analyzer, error) {
	ret := &Analyzer{logger: slog.Default(), cacheSize: cache.DefaultSize}
	for _, opt := range options {
		opt(ret)
	}
	if ret.cache == nil {
		c, err := cache.New(cache.WithSize(ret.cacheSize), cache.WithLogger(ret.logger), cache.WithRegisterer(ret.registerer))
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		ret.cache = c
	}
	return ret, nil
}

// Cache returns the underlying cache
func (a *Analyzer) Cache() *cache.Cache {
	return a.cache
}

// ResolveContext returns the function and owner enclosing position; an empty ContextInfo when unknown
func (a *Analyzer) ResolveContext(doc document.Document, position document.Position) (ret ContextInfo) {
	defer a.recover(doc, "context", func() { ret = ContextInfo{} })
	entry, err := a.cache.Get(doc.Text(), doc.FileName())
	if err != nil {
		a.logger.Warn("context unavailable", slog.String("file", doc.FileName()), slog.Any("error", err))
		return ContextInfo{}
	}
	return resolveContext(entry.Tree, entry.Scope, doc.OffsetAt(position))
}

// ResolveInsertionPoint returns where a statement logging name can be placed for selection.
// It always returns a position; the end of the selection's line is the last resort.
func (a *Analyzer) ResolveInsertionPoint(doc document.Document, selection document.Selection, name string) (ret InsertionPosition) {
	defer a.recover(doc, "insertion", func() { ret = lineEnd(doc, selection) })
	entry, err := a.cache.Get(doc.Text(), doc.FileName())
	if err != nil {
		a.logger.Warn("insertion falls back to line end", slog.String("file", doc.FileName()), slog.Any("error", err))
		return lineEnd(doc, selection)
	}
	found, ok := resolveInsertion(entry.Tree, entry.Scope, doc.OffsetAt(selection.Start), name)
	if !ok {
		a.logger.Debug("no statement found", slog.String("file", doc.FileName()), slog.String("variable", name))
		return lineEnd(doc, selection)
	}
	p := doc.PositionAt(found.offset)
	a.logger.Debug("insertion resolved", slog.String("file", doc.FileName()), slog.String("variable", name), slog.String("tier", string(found.tier)))
	return InsertionPosition{
		Line:             p.Line,
		Character:        p.Character,
		IsEndOfStatement: true,
		Scope:            spanOf(found.scope, len(entry.Tree.Source)),
		Tier:             found.tier,
	}
}

// FindVariable looks name up through the scope chain at position
func (a *Analyzer) FindVariable(doc document.Document, position document.Position, name string) (*scope.Variable, bool) {
	global, err := a.cache.Scope(doc.Text(), doc.FileName())
	if err != nil {
		return nil, false
	}
	current := global.Innermost(doc.OffsetAt(position))
	if current == nil {
		return nil, false
	}
	v, _ := current.Lookup(name)
	return v, v != nil
}

// ClearCache drops cached analysis for the given files, or for all files when none are given
func (a *Analyzer) ClearCache(fileIDs ...string) {
	a.cache.Invalidate(fileIDs...)
}

func (a *Analyzer) recover(doc document.Document, operation string, fallback func()) {
	if r := recover(); r != nil {
		a.logger.Error("analysis failed", slog.String("operation", operation), slog.String("file", doc.FileName()), slog.Any("panic", r))
		fallback()
	}
}

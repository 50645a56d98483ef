// Package preview serves generated project trees over HTTP and keeps live
// sessions in step with the latest configuration.
package preview

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/compat"
	"github.com/ai-stack/stackbuilder/internal/generator"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/vfs"
)

// DefaultCacheSize is the number of generated trees kept in memory.
const DefaultCacheSize = 256

// Result is a previewed stack. Tree is shared with the cache and must be
// treated as read-only.
type Result struct {
	Success     bool                             `json:"success"`
	Tree        *vfs.Node                        `json:"tree"`
	Stack       stack.State                      `json:"stack"`
	Changes     []compat.Change                  `json:"changes"`
	Notes       map[catalog.Category]compat.Note `json:"notes"`
	Fingerprint string                           `json:"fingerprint"`
	Summary     generator.Summary                `json:"summary"`
}

type entry struct {
	tree    *vfs.Node
	summary generator.Summary
}

// Service analyzes and generates stacks, caching trees by the fingerprint
// of the corrected stack. It is safe for concurrent use.
type Service struct {
	gen    *generator.Generator
	cache  *lru.Cache[string, entry]
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	cacheSize int
	gen       *generator.Generator
	logger    *zap.Logger
}

// WithCacheSize overrides DefaultCacheSize.
func WithCacheSize(n int) Option {
	return func(o *serviceOptions) { o.cacheSize = n }
}

// WithGenerator replaces the built-in generator.
func WithGenerator(g *generator.Generator) Option {
	return func(o *serviceOptions) { o.gen = g }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *serviceOptions) { o.logger = l }
}

// NewService creates a preview service.
func NewService(opts ...Option) (*Service, error) {
	o := serviceOptions{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheSize <= 0 {
		o.cacheSize = DefaultCacheSize
	}
	if o.gen == nil {
		o.gen = generator.New()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	cache, err := lru.New[string, entry](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}
	return &Service{gen: o.gen, cache: cache, logger: o.logger}, nil
}

// Preview corrects s with the compatibility rules and returns the tree of
// the corrected stack.
func (svc *Service) Preview(s stack.State) (*Result, error) {
	normalized := s.Normalize()
	analysis := compat.Analyze(normalized)
	final := analysis.Final(normalized)
	fp := final.Fingerprint()

	e, ok := svc.cache.Get(fp)
	if !ok {
		fs, err := svc.gen.Generate(final)
		if err != nil {
			svc.logger.Error("generation failed", zap.String("fingerprint", fp), zap.Error(err))
			return nil, err
		}
		e = entry{tree: fs.Tree(), summary: generator.Summarize(fs)}
		svc.cache.Add(fp, e)
		svc.logger.Debug("preview generated",
			zap.String("fingerprint", fp),
			zap.Int("files", e.summary.Files),
		)
	}

	return &Result{
		Success:     true,
		Tree:        e.tree,
		Stack:       final,
		Changes:     analysis.Changes,
		Notes:       analysis.Notes,
		Fingerprint: fp,
		Summary:     e.summary,
	}, nil
}

// File returns the content of one generated file.
func (svc *Service) File(s stack.State, path string) (string, error) {
	res, err := svc.Preview(s)
	if err != nil {
		return "", err
	}
	p, err := vfs.Clean(path)
	if err != nil {
		return "", err
	}
	n := vfs.Find(res.Tree, p)
	if n == nil || n.Content == nil {
		return "", fmt.Errorf("%s is not a generated file", path)
	}
	return *n.Content, nil
}

// Cached reports how many trees are cached.
func (svc *Service) Cached() int {
	return svc.cache.Len()
}

package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/recipebox/pkg/cache"
	"github.com/dmitrymomot/recipebox/pkg/logger"
)

type cacheKey struct {
	tab   Tab
	query string
}

// Service runs searches against a Backend and caches results per tab and query.
type Service struct {
	backend Backend
	cfg     Config
	cache   *cache.LRU[cacheKey, Result]
	onQuery func(Tab)
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithConfig applies cfg. Zero Limit and CacheSize keep their defaults.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.Limit > 0 {
			s.cfg.Limit = cfg.Limit
		}
		if cfg.CacheSize > 0 {
			s.cfg.CacheSize = cfg.CacheSize
		}
		s.cfg.CacheTTL = cfg.CacheTTL
	}
}

// WithSearchHook registers a callback run for every query that reaches the
// backend or the cache.
func WithSearchHook(fn func(Tab)) Option {
	return func(s *Service) { s.onQuery = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service with DefaultConfig unless overridden.
func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		cfg:     DefaultConfig(),
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = cache.New[cacheKey, Result](s.cfg.CacheSize, cache.WithTTL(s.cfg.CacheTTL), cache.WithClock(s.now))
	return s
}

// Search matches query against tab. Results are cached per tab and
// case-folded query.
func (s *Service) Search(ctx context.Context, query string, tab Tab) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrEmptyQuery
	}
	tab = ParseTab(string(tab))
	if s.onQuery != nil {
		s.onQuery(tab)
	}

	key := cacheKey{tab: tab, query: strings.ToLower(query)}
	if res, ok := s.cache.Get(key); ok {
		return res, nil
	}

	res := Result{Type: tab}
	var err error
	switch tab {
	case TabIngredient:
		res.Ingredients, err = s.backend.Ingredients(ctx, query, s.cfg.Limit)
	case TabAuthor:
		res.Authors, err = s.backend.Authors(ctx, query, s.cfg.Limit)
	default:
		res.Recipes, err = s.backend.Titles(ctx, query, s.cfg.Limit)
	}
	if err != nil {
		return Result{}, fmt.Errorf("search %s: %w", tab, err)
	}

	s.cache.Put(key, res)
	s.log.DebugContext(ctx, "search", slog.String("tab", string(tab)), slog.Int("matches", res.Len()))
	return res, nil
}

// Invalidate drops every cached result. Called when recipes or authors change.
func (s *Service) Invalidate() {
	s.cache.Clear()
}

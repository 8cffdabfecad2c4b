package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kasuboski/seriez/config"
	"github.com/kasuboski/seriez/pkg/catalog"
	"github.com/kasuboski/seriez/pkg/classify"
	"github.com/kasuboski/seriez/pkg/episode"
	"github.com/kasuboski/seriez/pkg/logger"
	"github.com/kasuboski/seriez/pkg/query"
	"github.com/kasuboski/seriez/pkg/webshare"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyName = errors.New("series name is empty")
	ErrNotFound  = errors.New("not found")
)

// SeriesManager builds series catalogs from search results and serves the stored catalogs
type SeriesManager struct {
	searcher webshare.Searcher
	store    *catalog.Store
	search   config.Search
	token    string
	matcher  episode.Matcher
	now      func() time.Time
}

type Option func(*SeriesManager)

// WithClock sets the clock used to stamp catalogs
func WithClock(now func() time.Time) Option {
	return func(m *SeriesManager) {
		m.now = now
	}
}

// WithMatcher sets the matcher used to classify search hits
func WithMatcher(matcher episode.Matcher) Option {
	return func(m *SeriesManager) {
		m.matcher = matcher
	}
}

// New creates a SeriesManager. token is sent with every search request.
func New(searcher webshare.Searcher, store *catalog.Store, search config.Search, token string, opts ...Option) SeriesManager {
	if search.Category == "" {
		search.Category = webshare.CategoryVideo
	}
	if search.Sort == "" {
		search.Sort = webshare.SortRecent
	}
	if search.Limit <= 0 {
		search.Limit = webshare.DefaultLimit
	}
	if search.Concurrency < 1 {
		search.Concurrency = 1
	}

	m := SeriesManager{
		searcher: searcher,
		store:    store,
		search:   search,
		token:    token,
		matcher:  episode.NewMatcher(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Search runs every planned query for seriesName, classifies the hits and
// replaces the stored catalog with the result. Failed queries count as empty
// and a failed save is logged; the built catalog is returned either way.
func (m SeriesManager) Search(ctx context.Context, seriesName string) (catalog.Series, error) {
	if strings.TrimSpace(seriesName) == "" {
		return catalog.Series{}, ErrEmptyName
	}

	log := logger.FromCtx(ctx, "series", seriesName)

	queries := query.Plan(seriesName)
	if m.search.DedupeQueries {
		queries = query.Unique(queries)
	}

	results := m.runQueries(ctx, log, queries)
	if err := ctx.Err(); err != nil {
		return catalog.Series{}, fmt.Errorf("search for %q canceled: %w", seriesName, err)
	}

	acc := classify.NewAccumulator(seriesName, m.matcher)
	for _, entries := range results {
		acc.Add(entries...)
	}

	series := catalog.NewSeries(seriesName, m.now())
	series.Seasons = acc.Seasons()

	log.Infow("classified search results",
		"queries", len(queries),
		"accepted", acc.Accepted(),
		"rejected", acc.Rejected(),
		"seasons", len(series.Seasons),
		"episodes", series.EpisodeCount())

	if err := m.store.Save(ctx, seriesName, series); err != nil {
		log.Warn("catalog was not saved", zap.Error(err))
	}

	return series, nil
}

// Refresh rebuilds the catalog for seriesName from scratch
func (m SeriesManager) Refresh(ctx context.Context, seriesName string) (catalog.Series, error) {
	return m.Search(ctx, seriesName)
}

// runQueries issues queries with at most search.concurrency in flight. Results
// are returned in query order.
func (m SeriesManager) runQueries(ctx context.Context, log *zap.SugaredLogger, queries []string) [][]catalog.RawEntry {
	results := make([][]catalog.RawEntry, len(queries))

	var g errgroup.Group
	g.SetLimit(m.search.Concurrency)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results[i] = m.runQuery(ctx, log.With("query", q), q)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (m SeriesManager) runQuery(ctx context.Context, log *zap.SugaredLogger, q string) []catalog.RawEntry {
	entries, err := m.searcher.Search(ctx, webshare.SearchParams{
		Query:        q,
		Category:     m.search.Category,
		Sort:         m.search.Sort,
		Limit:        m.search.Limit,
		Offset:       m.search.Offset,
		Token:        m.token,
		MaybeRemoved: m.search.MaybeRemoved,
	})
	if err != nil {
		log.Warn("search query failed", zap.Error(err))
		return nil
	}

	log.Debugw("search query finished", "results", len(entries))
	return entries
}

package manager

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kasuboski/seriez/pkg/catalog"
	"github.com/kasuboski/seriez/pkg/logger"
	"go.uber.org/zap"
)

// EpisodeListing is an episode paired with its number within the season
type EpisodeListing struct {
	Number  string          `json:"number"`
	Episode catalog.Episode `json:"episode"`
}

// ListSeries lists every stored catalog
func (m SeriesManager) ListSeries(ctx context.Context) []catalog.IndexEntry {
	return m.store.ListAll(ctx)
}

// Catalog returns the stored catalog for seriesName. Missing and unreadable
// catalogs both return ErrNotFound.
func (m SeriesManager) Catalog(ctx context.Context, seriesName string) (catalog.Series, error) {
	log := logger.FromCtx(ctx, "series", seriesName)

	series, err := m.store.Load(ctx, seriesName)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			log.Debug("no stored catalog")
		} else {
			log.Warn("stored catalog is unusable", zap.Error(err))
		}
		return catalog.Series{}, fmt.Errorf("%w: series %q", ErrNotFound, seriesName)
	}

	return series, nil
}

// Seasons returns the season keys of a stored catalog in numeric order
func (m SeriesManager) Seasons(ctx context.Context, seriesName string) ([]string, error) {
	series, err := m.Catalog(ctx, seriesName)
	if err != nil {
		return nil, err
	}

	return series.Seasons.Keys(), nil
}

// Episodes returns the episodes of a season in numeric order
func (m SeriesManager) Episodes(ctx context.Context, seriesName, season string) ([]EpisodeListing, error) {
	s, err := m.season(ctx, seriesName, season)
	if err != nil {
		return nil, err
	}

	listings := make([]EpisodeListing, 0, len(s))
	for _, key := range s.Keys() {
		listings = append(listings, EpisodeListing{
			Number:  key,
			Episode: s[key],
		})
	}

	return listings, nil
}

// Streams returns the alternate streams of an episode in discovery order
func (m SeriesManager) Streams(ctx context.Context, seriesName, season, episode string) ([]catalog.Stream, error) {
	s, err := m.season(ctx, seriesName, season)
	if err != nil {
		return nil, err
	}

	ep, ok := s[numberKey(episode)]
	if !ok {
		return nil, fmt.Errorf("%w: episode %s of season %s", ErrNotFound, episode, season)
	}

	if len(ep.Streams) == 0 {
		return []catalog.Stream{{Name: ep.Name, Ident: ep.Ident, Size: ep.Size}}, nil
	}

	return ep.Streams, nil
}

func (m SeriesManager) season(ctx context.Context, seriesName, season string) (catalog.Season, error) {
	series, err := m.Catalog(ctx, seriesName)
	if err != nil {
		return nil, err
	}

	s, ok := series.Seasons[numberKey(season)]
	if !ok {
		return nil, fmt.Errorf("%w: season %s", ErrNotFound, season)
	}

	return s, nil
}

// numberKey accepts padded numbers like "01" for the key "1"
func numberKey(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return catalog.Key(n)
	}
	return s
}

// SeasonLabel is the display label of a season
func SeasonLabel(season string) string {
	return "Season " + season
}

// EpisodeLabel is the display label of an episode
func EpisodeLabel(number, name string) string {
	return fmt.Sprintf("Episode %s - %s", number, name)
}

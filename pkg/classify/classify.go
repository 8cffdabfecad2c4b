package classify

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/kasuboski/seriez/pkg/catalog"
	"github.com/kasuboski/seriez/pkg/episode"
	"github.com/kasuboski/seriez/pkg/textnorm"
	"golang.org/x/exp/maps"
)

var episodeKeywords = []string{"episode", "season", "series", "ep", "complete", "serie", "disk"}

// IsCandidate reports whether a search hit is likely an episode of the series.
// The series name must appear in the filename and the filename must carry an
// episode pattern or one of the episode keywords.
func IsCandidate(filename, seriesName string) bool {
	normFilename := textnorm.Normalize(filename)
	if !strings.Contains(normFilename, textnorm.Normalize(seriesName)) {
		return false
	}

	if episode.HasPattern(filename) {
		return true
	}

	for _, keyword := range episodeKeywords {
		if strings.Contains(normFilename, keyword) {
			return true
		}
	}

	return false
}

type bucketKey struct {
	season  int
	episode int
}

// Accumulator collects search hits for a series in discovery order. Duplicate
// hits are dropped so the first one seen stays canonical.
type Accumulator struct {
	seriesName string
	matcher    episode.Matcher

	seen    map[uint64]struct{}
	order   []bucketKey
	buckets map[bucketKey][]catalog.Stream

	accepted int
	rejected int
}

// NewAccumulator creates an Accumulator for seriesName using matcher for classification
func NewAccumulator(seriesName string, matcher episode.Matcher) *Accumulator {
	return &Accumulator{
		seriesName: seriesName,
		matcher:    matcher,
		seen:       make(map[uint64]struct{}),
		buckets:    make(map[bucketKey][]catalog.Stream),
	}
}

// Add filters, deduplicates and classifies entries in order
func (a *Accumulator) Add(entries ...catalog.RawEntry) {
	for _, e := range entries {
		if !IsCandidate(e.Name(), a.seriesName) {
			a.rejected++
			continue
		}

		h := entryHash(e)
		if _, ok := a.seen[h]; ok {
			continue
		}
		a.seen[h] = struct{}{}

		match, ok := a.matcher.Detect(e.Name(), a.seriesName)
		if !ok {
			a.rejected++
			continue
		}

		key := bucketKey{season: match.Season, episode: match.Episode}
		if _, ok := a.buckets[key]; !ok {
			a.order = append(a.order, key)
		}
		a.buckets[key] = append(a.buckets[key], e.Stream())
		a.accepted++
	}
}

// Accepted is the number of unique hits classified into an episode
func (a *Accumulator) Accepted() int {
	return a.accepted
}

// Rejected is the number of hits filtered out or left unclassified
func (a *Accumulator) Rejected() int {
	return a.rejected
}

// Seasons builds the episode records collected so far
func (a *Accumulator) Seasons() catalog.Seasons {
	seasons := catalog.Seasons{}
	for _, key := range a.order {
		ep, ok := catalog.NewEpisode(a.buckets[key])
		if !ok {
			continue
		}
		seasons.Put(key.season, key.episode, ep)
	}
	return seasons
}

// Group classifies entries for seriesName into seasons using the default matcher
func Group(entries []catalog.RawEntry, seriesName string) catalog.Seasons {
	acc := NewAccumulator(seriesName, episode.NewMatcher())
	acc.Add(entries...)
	return acc.Seasons()
}

// entryHash identifies an entry by its ident. Entries without one are
// identified by all of their fields.
func entryHash(e catalog.RawEntry) uint64 {
	d := xxhash.New()
	if ident := e.Ident(); ident != "" {
		d.WriteString(catalog.FieldIdent)
		d.WriteString("\x00")
		d.WriteString(ident)
		return d.Sum64()
	}

	keys := maps.Keys(e)
	slices.Sort(keys)
	for _, k := range keys {
		d.WriteString(k)
		d.WriteString("\x00")
		d.WriteString(e[k])
		d.WriteString("\x00")
	}
	return d.Sum64()
}

package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"time"
)

const (
	FieldIdent = "ident"
	FieldName  = "name"
	FieldSize  = "size"

	defaultSize = "0"
	dateLayout  = time.DateOnly
)

// RawEntry is a single search hit as returned by the search service: field name to text
type RawEntry map[string]string

// Ident is the opaque external reference of the file
func (e RawEntry) Ident() string {
	return e[FieldIdent]
}

// Name is the display name of the file
func (e RawEntry) Name() string {
	return e[FieldName]
}

// Size is the size field, "0" when missing
func (e RawEntry) Size() string {
	if size, ok := e[FieldSize]; ok && size != "" {
		return size
	}
	return defaultSize
}

// Stream converts the entry into a stored stream
func (e RawEntry) Stream() Stream {
	return Stream{
		Name:  e.Name(),
		Ident: e.Ident(),
		Size:  e.Size(),
	}
}

// Stream is one file resolved to an episode
type Stream struct {
	Name  string `json:"name"`
	Ident string `json:"ident"`
	Size  string `json:"size"`
}

// Episode is the canonical record for a season/episode pair. The record's own
// fields always equal the first stream.
type Episode struct {
	Name    string   `json:"name"`
	Ident   string   `json:"ident"`
	Size    string   `json:"size"`
	Streams []Stream `json:"streams"`
}

// NewEpisode builds an episode from streams in discovery order. ok is false when streams is empty.
func NewEpisode(streams []Stream) (Episode, bool) {
	if len(streams) == 0 {
		return Episode{}, false
	}

	first := streams[0]
	return Episode{
		Name:    first.Name,
		Ident:   first.Ident,
		Size:    first.Size,
		Streams: slices.Clone(streams),
	}, true
}

// Season maps an episode number key to its record
type Season map[string]Episode

// Seasons maps a season number key to its episodes
type Seasons map[string]Season

// Series is the stored catalog for a single series name
type Series struct {
	Name        string  `json:"name"`
	LastUpdated string  `json:"last_updated"`
	Seasons     Seasons `json:"seasons"`
}

// NewSeries creates an empty catalog stamped with the date of t
func NewSeries(name string, t time.Time) Series {
	return Series{
		Name:        name,
		LastUpdated: t.Format(dateLayout),
		Seasons:     Seasons{},
	}
}

// IndexEntry describes a stored catalog found in the store directory
type IndexEntry struct {
	DisplayName string `json:"display_name"`
	SafeID      string `json:"safe_id"`
	Filename    string `json:"filename"`
}

// Key formats a season or episode number as a map key
func Key(n int) string {
	return strconv.Itoa(n)
}

// Put stores ep under the given season and episode numbers
func (s Seasons) Put(season, episode int, ep Episode) {
	key := Key(season)
	if s[key] == nil {
		s[key] = Season{}
	}
	s[key][Key(episode)] = ep
}

// Keys returns season keys ordered numerically
func (s Seasons) Keys() []string {
	return sortedKeys(s)
}

// Keys returns episode keys ordered numerically
func (s Season) Keys() []string {
	return sortedKeys(s)
}

// EpisodeCount returns the total number of episodes in the catalog
func (s Series) EpisodeCount() int {
	count := 0
	for _, season := range s.Seasons {
		count += len(season)
	}
	return count
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	SortNumeric(keys)
	return keys
}

// SortNumeric orders decimal keys by value. Keys that don't parse sort after
// numeric ones in string order.
func SortNumeric(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		ai, aErr := strconv.Atoi(a)
		bi, bErr := strconv.Atoi(b)
		switch {
		case aErr == nil && bErr == nil:
			return cmp.Compare(ai, bi)
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		}
		return cmp.Compare(a, b)
	})
}

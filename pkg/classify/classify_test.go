package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/kasuboski/seriez/pkg/catalog"
	"github.com/kasuboski/seriez/pkg/episode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		desc     string
		filename string
		series   string
		want     bool
	}{
		{"pattern match", "Friends.S01E01.mkv", "Friends", true},
		{"keyword complete", "Friends Complete Collection", "Friends", true},
		{"keyword disk", "Friends DVD disk 2", "Friends", true},
		{"normalized series", "ztraty-a-nalezy 1x02", "Ztráty a Nálezy", true},
		{"unrelated movie", "Random.Movie.mkv", "Friends", false},
		{"series absent with keyword", "Other Show Season 1 Episode 2", "Friends", false},
		{"no pattern no keyword", "Friends Reunion.mkv", "Friends", false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCandidate(tt.filename, tt.series))
		})
	}
}

func TestGroup(t *testing.T) {
	t.Run("unrelated entries excluded", func(t *testing.T) {
		entries := []catalog.RawEntry{
			{"ident": "1", "name": "Friends.S01E01.mkv", "size": "10"},
			{"ident": "2", "name": "Friends.S01E02.mkv"},
			{"ident": "3", "name": "Random.Movie.mkv"},
		}

		seasons := Group(entries, "Friends")
		require.Equal(t, []string{"1"}, seasons.Keys())
		assert.Equal(t, []string{"1", "2"}, seasons["1"].Keys())
		assert.Equal(t, "Friends.S01E01.mkv", seasons["1"]["1"].Name)
		assert.Equal(t, "10", seasons["1"]["1"].Size)
		assert.Equal(t, "0", seasons["1"]["2"].Size)
	})

	t.Run("alternate streams merge into one episode", func(t *testing.T) {
		entries := []catalog.RawEntry{
			{"ident": "a", "name": "Show Ep3"},
			{"ident": "b", "name": "Show Episode 3"},
		}

		seasons := Group(entries, "Show")
		ep := seasons["1"]["3"]
		assert.Equal(t, "Show Ep3", ep.Name)
		assert.Equal(t, "a", ep.Ident)
		assert.Equal(t, []catalog.Stream{
			{Name: "Show Ep3", Ident: "a", Size: "0"},
			{Name: "Show Episode 3", Ident: "b", Size: "0"},
		}, ep.Streams)
	})

	t.Run("first stream is the record", func(t *testing.T) {
		entries := []catalog.RawEntry{
			{"ident": "b", "name": "Show S02E01 720p"},
			{"ident": "a", "name": "Show 2x01 1080p"},
			{"ident": "c", "name": "Show S02E02"},
		}

		for _, season := range Group(entries, "Show") {
			for _, ep := range season {
				require.NotEmpty(t, ep.Streams)
				assert.Equal(t, ep.Name, ep.Streams[0].Name)
				assert.Equal(t, ep.Ident, ep.Streams[0].Ident)
			}
		}
	})

	t.Run("no entries", func(t *testing.T) {
		seasons := Group(nil, "Show")
		assert.NotNil(t, seasons)
		assert.Empty(t, seasons)
	})
}

func TestAccumulator(t *testing.T) {
	t.Run("duplicates across batches are dropped", func(t *testing.T) {
		acc := NewAccumulator("Friends", episode.NewMatcher())
		acc.Add(
			catalog.RawEntry{"ident": "1", "name": "Friends.S01E01.mkv"},
			catalog.RawEntry{"ident": "2", "name": "Friends.S01E01.CZ.mkv"},
		)
		acc.Add(
			catalog.RawEntry{"ident": "2", "name": "Friends.S01E01.CZ.mkv"},
			catalog.RawEntry{"ident": "1", "name": "Friends.S01E01.mkv"},
			catalog.RawEntry{"ident": "3", "name": "Friends Pilot"},
		)

		seasons := acc.Seasons()
		ep := seasons["1"]["1"]
		assert.Len(t, ep.Streams, 2)
		assert.Equal(t, "1", ep.Ident)
		assert.Equal(t, 2, acc.Accepted())
		assert.Equal(t, 1, acc.Rejected())
	})

	t.Run("entries without ident compared by fields", func(t *testing.T) {
		acc := NewAccumulator("Show", episode.NewMatcher())
		acc.Add(
			catalog.RawEntry{"name": "Show E1"},
			catalog.RawEntry{"name": "Show E1"},
			catalog.RawEntry{"name": "Show E1", "size": "5"},
		)

		assert.Len(t, acc.Seasons()["1"]["1"].Streams, 2)
	})

	t.Run("unclassifiable candidates are dropped", func(t *testing.T) {
		acc := NewAccumulator("Show", episode.NewMatcher(episode.WithFallback(nil)))
		acc.Add(catalog.RawEntry{"ident": "1", "name": "Show Season 2 part 5"})

		assert.Empty(t, acc.Seasons())
		assert.Equal(t, 1, acc.Rejected())
	})
}

func TestClassification(t *testing.T) {
	entries := getEntriesFromFile(t, "./testing/friends-results.json")
	matcher := episode.NewMatcher()

	for _, e := range entries {
		candidate := IsCandidate(e.Name(), "Friends")

		detected := "none"
		if m, ok := matcher.Detect(e.Name(), "Friends"); ok {
			detected = fmt.Sprintf("S%02dE%02d", m.Season, m.Episode)
		}

		snaps.MatchSnapshot(t, []string{e.Name(), strconv.FormatBool(candidate), detected})
	}
}

func getEntriesFromFile(t *testing.T, path string) []catalog.RawEntry {
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	entries := make([]catalog.RawEntry, 0)
	err = json.Unmarshal(b, &entries)
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawEntry(t *testing.T) {
	e := RawEntry{"ident": "abc", "name": "Friends.S01E01.mkv"}
	assert.Equal(t, "abc", e.Ident())
	assert.Equal(t, "Friends.S01E01.mkv", e.Name())
	assert.Equal(t, "0", e.Size())
	assert.Equal(t, Stream{Name: "Friends.S01E01.mkv", Ident: "abc", Size: "0"}, e.Stream())

	e["size"] = "734003200"
	assert.Equal(t, "734003200", e.Size())
}

func TestNewEpisode(t *testing.T) {
	_, ok := NewEpisode(nil)
	assert.False(t, ok)

	streams := []Stream{
		{Name: "Show Ep3", Ident: "a", Size: "1"},
		{Name: "Show Episode 3", Ident: "b", Size: "2"},
	}
	ep, ok := NewEpisode(streams)
	require.True(t, ok)
	assert.Equal(t, "Show Ep3", ep.Name)
	assert.Equal(t, "a", ep.Ident)
	assert.Equal(t, "1", ep.Size)
	assert.Equal(t, streams, ep.Streams)

	streams[0].Name = "changed"
	assert.Equal(t, "Show Ep3", ep.Streams[0].Name)
}

func TestSeasons(t *testing.T) {
	seasons := Seasons{}
	ep, _ := NewEpisode([]Stream{{Name: "x", Ident: "x", Size: "0"}})
	for _, n := range []int{10, 2, 1} {
		seasons.Put(n, n*10, ep)
		seasons.Put(n, 9, ep)
	}

	assert.Equal(t, []string{"1", "2", "10"}, seasons.Keys())
	assert.Equal(t, []string{"9", "100"}, seasons["10"].Keys())

	series := Series{Seasons: seasons}
	assert.Equal(t, 6, series.EpisodeCount())
}

func TestSortNumeric(t *testing.T) {
	keys := []string{"10", "b", "2", "a", "1"}
	SortNumeric(keys)
	assert.Equal(t, []string{"1", "2", "10", "a", "b"}, keys)
}

func TestNewSeries(t *testing.T) {
	s := NewSeries("Friends", time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "Friends", s.Name)
	assert.Equal(t, "2024-03-09", s.LastUpdated)
	assert.NotNil(t, s.Seasons)
	assert.Empty(t, s.Seasons)
}

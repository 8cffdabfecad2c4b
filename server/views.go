package server

import (
	"github.com/dustin/go-humanize"
	"github.com/kasuboski/seriez/pkg/catalog"
	"github.com/kasuboski/seriez/pkg/manager"
	"github.com/kasuboski/seriez/pkg/pagination"
	"github.com/spf13/cast"
)

type SearchRequest struct {
	Name string `json:"name" validate:"required"`
}

type SeriesListResponse struct {
	Series []catalog.IndexEntry `json:"series"`
	Meta   pagination.Meta      `json:"meta"`
}

type SeasonView struct {
	Season string `json:"season"`
	Label  string `json:"label"`
}

type EpisodeView struct {
	Episode   string `json:"episode"`
	Label     string `json:"label"`
	Name      string `json:"name"`
	Ident     string `json:"ident"`
	Size      string `json:"size"`
	HumanSize string `json:"humanSize,omitempty"`
	Streams   int    `json:"streams"`
}

type StreamView struct {
	Name      string `json:"name"`
	Ident     string `json:"ident"`
	Size      string `json:"size"`
	HumanSize string `json:"humanSize,omitempty"`
}

// humanSize renders a size field in bytes. Unparseable sizes render empty.
func humanSize(size string) string {
	n, err := cast.ToUint64E(size)
	if err != nil {
		return ""
	}
	return humanize.Bytes(n)
}

func toSeasonViews(seasons []string) []SeasonView {
	views := make([]SeasonView, 0, len(seasons))
	for _, season := range seasons {
		views = append(views, SeasonView{
			Season: season,
			Label:  manager.SeasonLabel(season),
		})
	}
	return views
}

func toEpisodeViews(episodes []manager.EpisodeListing) []EpisodeView {
	views := make([]EpisodeView, 0, len(episodes))
	for _, e := range episodes {
		views = append(views, EpisodeView{
			Episode:   e.Number,
			Label:     manager.EpisodeLabel(e.Number, e.Episode.Name),
			Name:      e.Episode.Name,
			Ident:     e.Episode.Ident,
			Size:      e.Episode.Size,
			HumanSize: humanSize(e.Episode.Size),
			Streams:   len(e.Episode.Streams),
		})
	}
	return views
}

func toStreamViews(streams []catalog.Stream) []StreamView {
	views := make([]StreamView, 0, len(streams))
	for _, s := range streams {
		views = append(views, StreamView{
			Name:      s.Name,
			Ident:     s.Ident,
			Size:      s.Size,
			HumanSize: humanSize(s.Size),
		})
	}
	return views
}

package webshare

import (
	"context"

	"github.com/kasuboski/seriez/pkg/catalog"
)

const (
	StatusOK = "OK"

	CategoryVideo = "video"
	SortRecent    = "recent"
	DefaultLimit  = 100
)

// Searcher is a file search service
type Searcher interface {
	Search(ctx context.Context, params SearchParams) ([]catalog.RawEntry, error)
}

// SearchParams are the arguments of a single search request
type SearchParams struct {
	Query        string
	Category     string
	Sort         string
	Limit        int
	Offset       int
	Token        string
	MaybeRemoved bool
}

package query

import (
	"strings"

	"github.com/kasuboski/seriez/pkg/textnorm"
)

var suffixes = []string{"season", "s01", "episode"}

// Plan returns the search queries to issue for a series name, in the order they
// should be issued. Duplicates are kept; use Unique to drop them.
func Plan(seriesName string) []string {
	normalized := textnorm.Normalize(seriesName)

	queries := []string{
		seriesName,
		normalized,
		strings.ReplaceAll(normalized, " ", ""),
		strings.ReplaceAll(normalized, " ", "_"),
		strings.ReplaceAll(normalized, " ", "-"),
	}

	for _, base := range []string{seriesName, normalized} {
		for _, suffix := range suffixes {
			queries = append(queries, base+" "+suffix)
		}
	}

	return queries
}

// Unique drops repeated queries keeping the first occurrence of each
func Unique(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	unique := make([]string, 0, len(queries))
	for _, q := range queries {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		unique = append(unique, q)
	}
	return unique
}

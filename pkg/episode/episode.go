package episode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kasuboski/seriez/pkg/textnorm"
)

// Pattern locates an episode in a filename. Patterns with a single capture group
// only carry the episode number and imply the first season.
type Pattern struct {
	Name  string
	Regex *regexp.Regexp
}

// Patterns are tried in order and the first structural match wins.
var Patterns = []Pattern{
	{Name: "SxxExx", Regex: regexp.MustCompile(`(?i)s(\d+)e(\d+)`)},
	{Name: "NxN", Regex: regexp.MustCompile(`(?i)(\d+)x(\d+)`)},
	{Name: "Episode N", Regex: regexp.MustCompile(`(?i)episode\s*(\d+)`)},
	{Name: "Ep N", Regex: regexp.MustCompile(`(?i)ep\s*(\d+)`)},
	{Name: "EN", Regex: regexp.MustCompile(`(?i)e(\d+)`)},
	{Name: "N.N", Regex: regexp.MustCompile(`(\d+)\.\s*(\d+)`)},
}

// Match is a detected season and episode number.
type Match struct {
	Season  int
	Episode int
}

// Fallback is consulted when none of the Patterns match the cleaned filename.
type Fallback interface {
	Detect(cleaned string) (Match, bool)
}

// Matcher classifies filenames into a season and episode.
type Matcher struct {
	fallback Fallback
}

// Option configures a Matcher
type Option func(*Matcher)

// WithFallback replaces the secondary detection strategy. A nil fallback disables it.
func WithFallback(f Fallback) Option {
	return func(m *Matcher) {
		m.fallback = f
	}
}

// NewMatcher creates a Matcher using SeasonKeywordFallback unless configured otherwise
func NewMatcher(opts ...Option) Matcher {
	m := Matcher{
		fallback: SeasonKeywordFallback{},
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

var defaultMatcher = NewMatcher()

// Detect uses the default Matcher
func Detect(filename, seriesName string) (Match, bool) {
	return defaultMatcher.Detect(filename, seriesName)
}

// Detect removes the series name from the filename and tries the known patterns
// against what remains. ok is false when the entry cannot be classified.
func (m Matcher) Detect(filename, seriesName string) (Match, bool) {
	cleaned := Clean(filename, seriesName)

	if match, matched, ok := matchPatterns(cleaned); matched {
		return match, ok
	}

	if m.fallback == nil {
		return Match{}, false
	}
	return m.fallback.Detect(cleaned)
}

// Clean normalizes both inputs and strips the first occurrence of the series name
func Clean(filename, seriesName string) string {
	normFilename := textnorm.Normalize(filename)
	normSeries := textnorm.Normalize(seriesName)
	if normSeries != "" {
		normFilename = strings.Replace(normFilename, normSeries, "", 1)
	}
	return strings.TrimSpace(normFilename)
}

// MatchPatterns applies Patterns in priority order to s. Only the first
// pattern found is used; a number too large for an int is no match.
func MatchPatterns(s string) (Match, bool) {
	match, _, ok := matchPatterns(s)
	return match, ok
}

// matchPatterns reports whether any pattern was found and whether its
// numbers parsed
func matchPatterns(s string) (match Match, matched bool, ok bool) {
	for _, p := range Patterns {
		groups := p.Regex.FindStringSubmatch(s)
		if groups == nil {
			continue
		}

		match, ok = fromGroups(groups[1:])
		return match, true, ok
	}

	return Match{}, false, false
}

// HasPattern reports whether any of the Patterns appear in s
func HasPattern(s string) bool {
	for _, p := range Patterns {
		if p.Regex.MatchString(s) {
			return true
		}
	}
	return false
}

func fromGroups(groups []string) (Match, bool) {
	switch len(groups) {
	case 1:
		ep, err := strconv.Atoi(groups[0])
		if err != nil {
			return Match{}, false
		}
		return Match{Season: 1, Episode: ep}, true
	case 2:
		season, err := strconv.Atoi(groups[0])
		if err != nil {
			return Match{}, false
		}
		ep, err := strconv.Atoi(groups[1])
		if err != nil {
			return Match{}, false
		}
		return Match{Season: season, Episode: ep}, true
	}

	return Match{}, false
}

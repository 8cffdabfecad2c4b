package episode

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	seasonRegex   = regexp.MustCompile(`season\s*(\d+)`)
	digitRunRegex = regexp.MustCompile(`(\d+)`)
)

// SeasonKeywordFallback handles names like "season 2 part 5": the number after
// "season" is the season and the first other digit run is the episode. It can
// misfire on unrelated numbers such as release years.
type SeasonKeywordFallback struct{}

func (SeasonKeywordFallback) Detect(cleaned string) (Match, bool) {
	if !strings.Contains(cleaned, "season") && !strings.Contains(cleaned, "serie") {
		return Match{}, false
	}

	seasonGroups := seasonRegex.FindStringSubmatch(cleaned)
	if seasonGroups == nil {
		return Match{}, false
	}

	season, err := strconv.Atoi(seasonGroups[1])
	if err != nil {
		return Match{}, false
	}

	rest := strings.ReplaceAll(cleaned, seasonGroups[0], "")
	epGroups := digitRunRegex.FindStringSubmatch(rest)
	if epGroups == nil {
		return Match{}, false
	}

	ep, err := strconv.Atoi(epGroups[1])
	if err != nil {
		return Match{}, false
	}

	return Match{Season: season, Episode: ep}, true
}

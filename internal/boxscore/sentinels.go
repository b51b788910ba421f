package boxscore

import (
	"regexp"
	"strings"
	"unicode"
)

// Sentinels holds the literal markers the source renderer places around each
// team's box score. Retargeting the extractor to a differently worded page only
// means supplying a different Sentinels value.
type Sentinels struct {
	Shots  string // follows each team name at the start of its shooting block
	Totals string // closes each team's roster ("ΣΥΝΟΛΟ" on esake.gr)
	Jersey string // placeholder rendered between a player's name and the duration stamp
	Header string // column header word that shares tokens with roster entries
}

// DefaultSentinels returns the markers used by esake.gr game pages.
func DefaultSentinels() Sentinels {
	return Sentinels{
		Shots:  "SHOTS",
		Totals: "ΣΥΝΟΛΟ",
		Jersey: "00",
		Header: "RANK",
	}
}

// Word characters are Unicode-aware so Greek names survive tokenization.
const wordClass = `\p{L}\p{N}_`

// teamPattern mirrors `(\w*|\w*\s\w*) SHOTS`: one or two words right before the marker.
func (s Sentinels) teamPattern() *regexp.Regexp {
	return regexp.MustCompile(`([` + wordClass + `]*|[` + wordClass + `]*\s[` + wordClass + `]*) ` + regexp.QuoteMeta(s.Shots))
}

// cleanTeamName trims the captured name and drops a leading all-digit word, which
// the two-word alternative picks up when a percentage precedes the team name.
func cleanTeamName(raw string) string {
	name := strings.TrimSpace(raw)
	fields := strings.Fields(name)
	if len(fields) > 1 && isDigits(fields[0]) {
		name = strings.Join(fields[1:], " ")
	}
	return name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

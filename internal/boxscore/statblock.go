package boxscore

import (
	"regexp"
	"strings"
)

const (
	stamp = `\d\d:\d\d:\d\d`

	// nameStart keeps a name from matching inside a longer word.
	nameStart = `(?:^|[^` + wordClass + `])`
)

var rankNoise = regexp.MustCompile(`\s*(?:#|\d+)?\s*$`)

// StatSpans locates the raw stat span of every player in both rosters, in
// roster order. Spans are the shortest match between a name and its successor.
// Each search starts where the previous player's row began, so a name that
// also appears inside an earlier row cannot capture that row.
func (s Sentinels) StatSpans(text string, rosters [2][]string) ([2][]string, error) {
	var spans [2][]string
	totals := regexp.QuoteMeta(s.Totals)
	cursor := 0

	for team, roster := range rosters {
		for i := 0; i < len(roster)-1; i++ {
			span, next, err := pairSpan(text[cursor:], roster[i], roster[i+1])
			if err != nil {
				return spans, err
			}
			spans[team] = append(spans[team], span)
			cursor += next
		}

		last := roster[len(roster)-1]
		q := regexp.QuoteMeta(last)
		var span string
		if team == 0 {
			// Bound by the other team's first player so a repeated name later in
			// the page cannot stretch the span into the second box score.
			outerRe := regexp.MustCompile(`(?s)` + nameStart + `(` + q + ` ` + stamp + `.*?)` + nameStart + regexp.QuoteMeta(rosters[1][0]))
			outer := outerRe.FindStringSubmatchIndex(text[cursor:])
			if outer == nil {
				return spans, &StatSpanError{Player: last, Next: rosters[1][0]}
			}
			region := text[cursor+outer[2] : cursor+outer[3]]
			inner := regexp.MustCompile(`(?s)^` + q + `.*?` + totals).FindStringIndex(region)
			if inner == nil {
				return spans, &StatSpanError{Player: last, Next: s.Totals}
			}
			span = region[:inner[1]]
			cursor += outer[2] + inner[1]
		} else {
			m := regexp.MustCompile(`(?s)` + nameStart + `(` + q + ` ` + stamp + `.*?` + totals + `)`).FindStringSubmatch(text[cursor:])
			if m == nil {
				return spans, &StatSpanError{Player: last, Next: s.Totals}
			}
			span = m[1]
		}
		spans[team] = append(spans[team], strings.TrimSpace(strings.TrimSuffix(span, s.Totals)))
	}
	return spans, nil
}

// pairSpan returns the span of player and the offset in text where next's
// row begins.
func pairSpan(text, player, next string) (string, int, error) {
	re := regexp.MustCompile(`(?s)` + nameStart + `(` + regexp.QuoteMeta(player) + ` ` + stamp + `.*?)` + nameStart + `(` + regexp.QuoteMeta(next) + `)`)
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", 0, &StatSpanError{Player: player, Next: next}
	}
	// The markup sometimes leaves a "#" or a rank number between two players.
	span := rankNoise.ReplaceAllString(text[loc[2]:loc[3]], "")
	return strings.TrimSpace(span), loc[4], nil
}

package boxscore

import (
	"fmt"
	"regexp"
	"strings"
)

var digitSpaceRun = regexp.MustCompile(`[0-9\s]+`)

// Segment splits classified tokens into the two team regions: everything before
// the first totals token, and everything strictly between the first and second.
func Segment(tokens []Token) ([2][]Token, error) {
	var regions [2][]Token

	var totals []int
	for i, tok := range tokens {
		if tok.Kind == TokenTotals {
			totals = append(totals, i)
			if len(totals) == 2 {
				break
			}
		}
	}
	if len(totals) < 2 {
		return regions, fmt.Errorf("%w: found %d totals markers, need 2", ErrMalformedGame, len(totals))
	}

	regions[0] = tokens[:totals[0]]
	regions[1] = tokens[totals[0]+1 : totals[1]]
	return regions, nil
}

// Roster recovers the ordered player names of one team region.
func (s Sentinels) Roster(region []Token) ([]string, error) {
	var names []string
	for _, tok := range region {
		if tok.Kind != TokenRosterEntry {
			continue
		}
		name := strings.TrimSpace(strings.ReplaceAll(tok.Text, s.Jersey, ""))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %w: no roster entries in team region", ErrMalformedGame, ErrMalformedRoster)
	}

	last := len(names) - 1
	names[last] = stripNumericNoise(names[last])
	if names[last] == "" {
		return nil, fmt.Errorf("%w: %w: last roster entry is only numbers", ErrMalformedGame, ErrMalformedRoster)
	}
	return names, nil
}

// stripNumericNoise removes stat digits glued onto the last player of a team.
// Shot pairs were split on their hyphen by the digit runs, so joining the runs
// with "-" rebuilds the exact substring to cut.
func stripNumericNoise(name string) string {
	var runs []string
	for _, run := range digitSpaceRun.FindAllString(name, -1) {
		if strings.TrimSpace(run) == "" {
			continue
		}
		runs = append(runs, run)
	}
	if len(runs) == 0 {
		return name
	}
	noise := strings.Join(runs, "-")
	return strings.TrimSpace(strings.ReplaceAll(name, noise, ""))
}

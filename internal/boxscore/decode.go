package boxscore

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	durationPattern = regexp.MustCompile(`(\d\d):(\d\d):(\d\d)`)
	pointsPattern   = regexp.MustCompile(`:\d\d (\d+)`)
	shotPairPattern = regexp.MustCompile(`(\d+) - (\d+)`)
)

// shotFields maps the three shot pairs, in page order, to record columns.
var shotFields = [3][2]string{
	{"two_point_achieved", "two_point_attempted"},
	{"three_point_achieved", "three_point_attempted"},
	{"free_throws_achieved", "free_throws_attempted"},
}

// decodeSpan fills rec from a single player's raw stat span.
func decodeSpan(rec *PlayerStatRecord, span string, counters []FieldWidth) error {
	fail := func(field, value string, err error) error {
		return &FieldDecodeError{Player: rec.PlayerName, Field: field, Value: value, Err: err}
	}

	m := durationPattern.FindStringSubmatch(span)
	if m == nil {
		return fail("duration", "", fmt.Errorf("no HH:MM:SS stamp"))
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	secs, _ := strconv.Atoi(m[3])
	if mins >= 60 || secs >= 60 {
		return fail("duration", m[0], fmt.Errorf("minutes and seconds must be below 60"))
	}
	rec.DurationSeconds = h*3600 + mins*60 + secs

	pm := pointsPattern.FindStringSubmatch(span)
	if pm == nil {
		return fail("points", "", fmt.Errorf("no points after duration"))
	}
	points, err := strconv.Atoi(pm[1])
	if err != nil {
		return fail("points", pm[1], err)
	}
	rec.Points = points

	pairs := shotPairPattern.FindAllStringSubmatch(span, -1)
	if len(pairs) != len(shotFields) {
		return fail("shots", "", fmt.Errorf("found %d shot pairs, want %d", len(pairs), len(shotFields)))
	}
	for i, pair := range pairs {
		for j := 0; j < 2; j++ {
			v, err := strconv.Atoi(pair[j+1])
			if err != nil {
				return fail(shotFields[i][j], pair[j+1], err)
			}
			*rec.Field(shotFields[i][j]) = v
		}
	}

	values, err := DecodeFixedWidth(span, counters)
	if err != nil {
		return fail("counters", "", err)
	}
	for i, f := range counters {
		dst := rec.Field(f.Name)
		if dst == nil {
			return fail(f.Name, "", fmt.Errorf("unknown counter column"))
		}
		*dst = values[i]
	}
	return nil
}

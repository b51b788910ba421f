package season

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// GroupKey selects the column a summary is grouped by.
type GroupKey string

const (
	ByPlayer GroupKey = "player_name"
	ByTeam   GroupKey = "team"
)

// Undefined is written in place of a percentage with no attempts.
const Undefined = "-"

// Options tunes the derived summary columns.
type Options struct {
	// LegacyAttemptedPoints derives points from two/three point shots using
	// attempted instead of made shots, reproducing older published tables.
	LegacyAttemptedPoints bool
}

// SummaryColumns is the fixed column order of a stats table; the first column
// is named after the group key.
var SummaryColumns = []string{
	"games",
	"avg_points",
	"avg_points_from_two_point",
	"avg_points_from_three_point",
	"avg_free_throws_attempted",
	"avg_two_point_attempted",
	"avg_three_point_attempted",
	"two_point_pct",
	"three_point_pct",
	"free_throws_pct",
	"avg_rebounds",
	"avg_offensive_rebounds",
	"avg_defensive_rebounds",
	"avg_assists",
	"avg_blocks",
	"avg_turnovers",
	"avg_fouls_committed",
	"avg_fouls_received",
	"avg_duration",
}

// SummaryRow holds per-entity averages. Percentages are invalid when the
// entity never attempted that shot type.
type SummaryRow struct {
	Key                     string
	Games                   int
	AvgPoints               float64
	AvgPointsFromTwoPoint   float64
	AvgPointsFromThreePoint float64
	AvgFreeThrowsAttempted  float64
	AvgTwoPointAttempted    float64
	AvgThreePointAttempted  float64
	TwoPointPct             sql.NullFloat64
	ThreePointPct           sql.NullFloat64
	FreeThrowsPct           sql.NullFloat64
	AvgRebounds             float64
	AvgOffensiveRebounds    float64
	AvgDefensiveRebounds    float64
	AvgAssists              float64
	AvgBlocks               float64
	AvgTurnovers            float64
	AvgFoulsCommitted       float64
	AvgFoulsReceived        float64
	AvgDuration             float64 // minutes
}

// Header returns the table header for a summary grouped by key.
func Header(key GroupKey) []string {
	return append([]string{string(key)}, SummaryColumns...)
}

// Strings renders the row in Header order.
func (r SummaryRow) Strings() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	pct := func(v sql.NullFloat64) string {
		if !v.Valid {
			return Undefined
		}
		return f(v.Float64)
	}
	return []string{
		r.Key,
		strconv.Itoa(r.Games),
		f(r.AvgPoints),
		f(r.AvgPointsFromTwoPoint),
		f(r.AvgPointsFromThreePoint),
		f(r.AvgFreeThrowsAttempted),
		f(r.AvgTwoPointAttempted),
		f(r.AvgThreePointAttempted),
		pct(r.TwoPointPct),
		pct(r.ThreePointPct),
		pct(r.FreeThrowsPct),
		f(r.AvgRebounds),
		f(r.AvgOffensiveRebounds),
		f(r.AvgDefensiveRebounds),
		f(r.AvgAssists),
		f(r.AvgBlocks),
		f(r.AvgTurnovers),
		f(r.AvgFoulsCommitted),
		f(r.AvgFoulsReceived),
		f(r.AvgDuration),
	}
}

// MarshalJSON emits undefined percentages as null.
func (r SummaryRow) MarshalJSON() ([]byte, error) {
	pct := func(v sql.NullFloat64) *float64 {
		if !v.Valid {
			return nil
		}
		return &v.Float64
	}
	return json.Marshal(struct {
		Key                     string   `json:"key"`
		Games                   int      `json:"games"`
		AvgPoints               float64  `json:"avg_points"`
		AvgPointsFromTwoPoint   float64  `json:"avg_points_from_two_point"`
		AvgPointsFromThreePoint float64  `json:"avg_points_from_three_point"`
		AvgFreeThrowsAttempted  float64  `json:"avg_free_throws_attempted"`
		AvgTwoPointAttempted    float64  `json:"avg_two_point_attempted"`
		AvgThreePointAttempted  float64  `json:"avg_three_point_attempted"`
		TwoPointPct             *float64 `json:"two_point_pct"`
		ThreePointPct           *float64 `json:"three_point_pct"`
		FreeThrowsPct           *float64 `json:"free_throws_pct"`
		AvgRebounds             float64  `json:"avg_rebounds"`
		AvgOffensiveRebounds    float64  `json:"avg_offensive_rebounds"`
		AvgDefensiveRebounds    float64  `json:"avg_defensive_rebounds"`
		AvgAssists              float64  `json:"avg_assists"`
		AvgBlocks               float64  `json:"avg_blocks"`
		AvgTurnovers            float64  `json:"avg_turnovers"`
		AvgFoulsCommitted       float64  `json:"avg_fouls_committed"`
		AvgFoulsReceived        float64  `json:"avg_fouls_received"`
		AvgDuration             float64  `json:"avg_duration"`
	}{
		r.Key, r.Games, r.AvgPoints, r.AvgPointsFromTwoPoint, r.AvgPointsFromThreePoint,
		r.AvgFreeThrowsAttempted, r.AvgTwoPointAttempted, r.AvgThreePointAttempted,
		pct(r.TwoPointPct), pct(r.ThreePointPct), pct(r.FreeThrowsPct),
		r.AvgRebounds, r.AvgOffensiveRebounds, r.AvgDefensiveRebounds,
		r.AvgAssists, r.AvgBlocks, r.AvgTurnovers, r.AvgFoulsCommitted, r.AvgFoulsReceived,
		r.AvgDuration,
	})
}

type totals struct {
	rows int

	points, twoMade, twoAtt, threeMade, threeAtt, ftMade, ftAtt int
	blocks, foulsCommitted, foulsReceived, offReb, defReb       int
	turnovers, assists, duration                                int
}

func (t *totals) add(r GameRow) {
	t.rows++
	t.points += r.Points
	t.twoMade += r.TwoPointAchieved
	t.twoAtt += r.TwoPointAttempted
	t.threeMade += r.ThreePointAchieved
	t.threeAtt += r.ThreePointAttempted
	t.ftMade += r.FreeThrowsAchieved
	t.ftAtt += r.FreeThrowsAttempted
	t.blocks += r.Blocks
	t.foulsCommitted += r.FoulsCommitted
	t.foulsReceived += r.FoulsReceived
	t.offReb += r.OffensiveRebounds
	t.defReb += r.DefensiveRebounds
	t.turnovers += r.Turnovers
	t.assists += r.Assists
	t.duration += r.DurationSeconds
}

func ratio(made, attempted int) sql.NullFloat64 {
	if attempted == 0 {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: float64(made) / float64(attempted), Valid: true}
}

// Summarize computes one summary row per distinct key, ordered by key.
func Summarize(rows []GameRow, key GroupKey, opts Options) ([]SummaryRow, error) {
	var keyOf func(GameRow) string
	switch key {
	case ByPlayer:
		keyOf = func(r GameRow) string { return r.PlayerName }
	case ByTeam:
		keyOf = func(r GameRow) string { return r.Team }
	default:
		return nil, fmt.Errorf("unknown group key %q", key)
	}

	groups := make(map[string]*totals)
	for _, row := range rows {
		k := keyOf(row)
		t, ok := groups[k]
		if !ok {
			t = &totals{}
			groups[k] = t
		}
		t.add(row)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]SummaryRow, 0, len(keys))
	for _, k := range keys {
		t := groups[k]
		n := float64(t.rows)
		mean := func(sum int) float64 { return float64(sum) / n }

		twoPts, threePts := mean(t.twoMade)*2, mean(t.threeMade)*3
		if opts.LegacyAttemptedPoints {
			twoPts, threePts = mean(t.twoAtt)*2, mean(t.threeAtt)*3
		}

		out = append(out, SummaryRow{
			Key:                     k,
			Games:                   t.rows,
			AvgPoints:               mean(t.points),
			AvgPointsFromTwoPoint:   twoPts,
			AvgPointsFromThreePoint: threePts,
			AvgFreeThrowsAttempted:  mean(t.ftAtt),
			AvgTwoPointAttempted:    mean(t.twoAtt),
			AvgThreePointAttempted:  mean(t.threeAtt),
			TwoPointPct:             ratio(t.twoMade, t.twoAtt),
			ThreePointPct:           ratio(t.threeMade, t.threeAtt),
			FreeThrowsPct:           ratio(t.ftMade, t.ftAtt),
			AvgRebounds:             mean(t.offReb) + mean(t.defReb),
			AvgOffensiveRebounds:    mean(t.offReb),
			AvgDefensiveRebounds:    mean(t.defReb),
			AvgAssists:              mean(t.assists),
			AvgBlocks:               mean(t.blocks),
			AvgTurnovers:            mean(t.turnovers),
			AvgFoulsCommitted:       mean(t.foulsCommitted),
			AvgFoulsReceived:        mean(t.foulsReceived),
			AvgDuration:             mean(t.duration) / 60,
		})
	}
	return out, nil
}

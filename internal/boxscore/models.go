package boxscore

import "strconv"

// Columns is the per-game table layout, in file order.
var Columns = []string{
	"team",
	"player_name",
	"duration",
	"points",
	"two_point_achieved",
	"two_point_attempted",
	"three_point_achieved",
	"three_point_attempted",
	"free_throws_achieved",
	"free_throws_attempted",
	"turnovers",
	"steals",
	"fouls_committed",
	"fouls_received",
	"blocks",
	"assists",
	"offensive_rebounds",
	"defensive_rebounds",
}

// PlayerStatRecord is one player's line in a single game
type PlayerStatRecord struct {
	Team                string `json:"team"`
	PlayerName          string `json:"player_name"`
	DurationSeconds     int    `json:"duration"`
	Points              int    `json:"points"`
	TwoPointAchieved    int    `json:"two_point_achieved"`
	TwoPointAttempted   int    `json:"two_point_attempted"`
	ThreePointAchieved  int    `json:"three_point_achieved"`
	ThreePointAttempted int    `json:"three_point_attempted"`
	FreeThrowsAchieved  int    `json:"free_throws_achieved"`
	FreeThrowsAttempted int    `json:"free_throws_attempted"`
	Turnovers           int    `json:"turnovers"`
	Steals              int    `json:"steals"`
	FoulsCommitted      int    `json:"fouls_committed"`
	FoulsReceived       int    `json:"fouls_received"`
	Blocks              int    `json:"blocks"`
	Assists             int    `json:"assists"`
	OffensiveRebounds   int    `json:"offensive_rebounds"`
	DefensiveRebounds   int    `json:"defensive_rebounds"`
}

// BoxScore is the extracted table for one game. Rows for Teams[0] come first.
type BoxScore struct {
	Teams       [2]string          `json:"teams"`
	RosterSizes [2]int             `json:"roster_sizes"`
	Rows        []PlayerStatRecord `json:"rows"`
}

// Strings returns the record in Columns order.
func (r PlayerStatRecord) Strings() []string {
	out := []string{r.Team, r.PlayerName}
	for _, v := range r.numbers() {
		out = append(out, strconv.Itoa(v))
	}
	return out
}

func (r PlayerStatRecord) numbers() []int {
	return []int{
		r.DurationSeconds, r.Points,
		r.TwoPointAchieved, r.TwoPointAttempted,
		r.ThreePointAchieved, r.ThreePointAttempted,
		r.FreeThrowsAchieved, r.FreeThrowsAttempted,
		r.Turnovers, r.Steals, r.FoulsCommitted, r.FoulsReceived,
		r.Blocks, r.Assists, r.OffensiveRebounds, r.DefensiveRebounds,
	}
}

// Field returns a pointer to the integer column with the given name, or nil.
func (r *PlayerStatRecord) Field(name string) *int {
	switch name {
	case "duration":
		return &r.DurationSeconds
	case "points":
		return &r.Points
	case "two_point_achieved":
		return &r.TwoPointAchieved
	case "two_point_attempted":
		return &r.TwoPointAttempted
	case "three_point_achieved":
		return &r.ThreePointAchieved
	case "three_point_attempted":
		return &r.ThreePointAttempted
	case "free_throws_achieved":
		return &r.FreeThrowsAchieved
	case "free_throws_attempted":
		return &r.FreeThrowsAttempted
	case "turnovers":
		return &r.Turnovers
	case "steals":
		return &r.Steals
	case "fouls_committed":
		return &r.FoulsCommitted
	case "fouls_received":
		return &r.FoulsReceived
	case "blocks":
		return &r.Blocks
	case "assists":
		return &r.Assists
	case "offensive_rebounds":
		return &r.OffensiveRebounds
	case "defensive_rebounds":
		return &r.DefensiveRebounds
	}
	return nil
}

// ShotAnomalies lists the shot types where more shots were made than attempted.
// The extractor passes such records through; callers decide what to do with them.
func (r PlayerStatRecord) ShotAnomalies() []string {
	var out []string
	if r.TwoPointAchieved > r.TwoPointAttempted {
		out = append(out, "two_point")
	}
	if r.ThreePointAchieved > r.ThreePointAttempted {
		out = append(out, "three_point")
	}
	if r.FreeThrowsAchieved > r.FreeThrowsAttempted {
		out = append(out, "free_throws")
	}
	return out
}

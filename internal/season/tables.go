// Package season merges per-game box scores into season tables: the combined
// games table, player and team identities, and per-entity stat summaries.
package season

import "github.com/fortuna/esake/internal/boxscore"

// Game is one extracted box score tagged with the identifier it was stored under.
type Game struct {
	ID   string
	Rows []boxscore.PlayerStatRecord
}

// GameRow is a box score row tagged with its game.
type GameRow struct {
	GameID string `json:"game_id"`
	boxscore.PlayerStatRecord
}

// PlayerIdentity assigns a stable id to a canonical player name.
type PlayerIdentity struct {
	ID   int    `json:"id"`
	Name string `json:"player_name"`
}

// TeamIdentity assigns a stable id to a team name.
type TeamIdentity struct {
	ID   int    `json:"id"`
	Team string `json:"team"`
}

// GamesTable concatenates the games in order and canonicalizes player names.
// The input rows are not modified.
func GamesTable(games []Game) []GameRow {
	var rows []GameRow
	for _, g := range games {
		for _, rec := range g.Rows {
			rec.PlayerName = Canonicalize(rec.PlayerName)
			rows = append(rows, GameRow{GameID: g.ID, PlayerStatRecord: rec})
		}
	}
	return rows
}

// PlayersTable lists the distinct canonical player names in first-appearance
// order with dense 0-based ids. Names containing digits are parse noise and
// are left out.
func PlayersTable(rows []GameRow) []PlayerIdentity {
	var out []PlayerIdentity
	seen := make(map[string]bool)
	for _, row := range rows {
		name := Canonicalize(row.PlayerName)
		if containsDigit(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, PlayerIdentity{ID: len(out), Name: name})
	}
	return out
}

// TeamsTable lists the distinct teams in first-appearance order.
func TeamsTable(rows []GameRow) []TeamIdentity {
	var out []TeamIdentity
	seen := make(map[string]bool)
	for _, row := range rows {
		if seen[row.Team] {
			continue
		}
		seen[row.Team] = true
		out = append(out, TeamIdentity{ID: len(out), Team: row.Team})
	}
	return out
}

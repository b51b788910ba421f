package store

import (
	"time"

	"github.com/fortuna/esake/internal/season"
)

// SummaryKind names the grouping a stored summary row belongs to.
type SummaryKind string

const (
	SummaryPlayers SummaryKind = "players"
	SummaryTeams   SummaryKind = "teams"
)

// Season is one loaded set of season artifacts
type Season struct {
	Label        string    `json:"label" db:"label"`
	Games        int       `json:"games" db:"games"`
	GamesSkipped int       `json:"games_skipped" db:"games_skipped"`
	LoadedAt     time.Time `json:"loaded_at" db:"loaded_at"`
}

// PlayerDetail is a player identity with its season summary
type PlayerDetail struct {
	season.PlayerIdentity
	Season  string             `json:"season"`
	Summary *season.SummaryRow `json:"summary,omitempty"`
}

// TeamDetail is a team identity with its season summary and roster
type TeamDetail struct {
	season.TeamIdentity
	Season  string             `json:"season"`
	Summary *season.SummaryRow `json:"summary,omitempty"`
	Players []string           `json:"players"`
}

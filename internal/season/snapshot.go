package season

import "fmt"

// Snapshot is every artifact derived from one season's games.
type Snapshot struct {
	Games        []GameRow
	Players      []PlayerIdentity
	Teams        []TeamIdentity
	PlayerStats  []SummaryRow
	TeamStats    []SummaryRow
	GamesSkipped int
}

// Build aggregates the games into a snapshot in a single pass over the rows.
func Build(games []Game, opts Options) (*Snapshot, error) {
	rows := GamesTable(games)

	playerStats, err := Summarize(rows, ByPlayer, opts)
	if err != nil {
		return nil, fmt.Errorf("summarizing players: %w", err)
	}
	teamStats, err := Summarize(rows, ByTeam, opts)
	if err != nil {
		return nil, fmt.Errorf("summarizing teams: %w", err)
	}

	return &Snapshot{
		Games:       rows,
		Players:     PlayersTable(rows),
		Teams:       TeamsTable(rows),
		PlayerStats: playerStats,
		TeamStats:   teamStats,
	}, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/season"
	"github.com/fortuna/esake/internal/store"
)

// ErrNotFound is returned when a requested season, player, team or game does not exist.
var ErrNotFound = errors.New("not found")

// SeasonRepository handles season artifact storage
type SeasonRepository struct {
	db *store.Database
}

// NewSeasonRepository creates a new season repository
func NewSeasonRepository(db *store.Database) *SeasonRepository {
	return &SeasonRepository{db: db}
}

const summaryColumns = `games, avg_points, avg_points_from_two_point, avg_points_from_three_point,
	avg_free_throws_attempted, avg_two_point_attempted, avg_three_point_attempted,
	two_point_pct, three_point_pct, free_throws_pct,
	avg_rebounds, avg_offensive_rebounds, avg_defensive_rebounds,
	avg_assists, avg_blocks, avg_turnovers, avg_fouls_committed, avg_fouls_received, avg_duration`

// ReplaceSeason stores a snapshot under label, replacing anything stored there before.
func (r *SeasonRepository) ReplaceSeason(ctx context.Context, label string, snap *season.Snapshot) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"game_stats", "players", "teams", "stats_summaries", "seasons"} {
		col := "season"
		if table == "seasons" {
			col = "label"
		}
		if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM `+table+` WHERE `+col+` = $1`), label); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	games := make(map[string]bool)
	for _, row := range snap.Games {
		games[row.GameID] = true
	}
	_, err = tx.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO seasons (label, games, games_skipped, loaded_at) VALUES ($1, $2, $3, $4)`),
		label, len(games), snap.GamesSkipped, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting season: %w", err)
	}

	if err := r.insertGames(ctx, tx, label, snap.Games); err != nil {
		return err
	}

	for _, p := range snap.Players {
		if _, err := tx.ExecContext(ctx, r.db.Rebind(`INSERT INTO players (season, player_id, player_name) VALUES ($1, $2, $3)`),
			label, p.ID, p.Name); err != nil {
			return fmt.Errorf("inserting player %s: %w", p.Name, err)
		}
	}
	for _, t := range snap.Teams {
		if _, err := tx.ExecContext(ctx, r.db.Rebind(`INSERT INTO teams (season, team_id, team) VALUES ($1, $2, $3)`),
			label, t.ID, t.Team); err != nil {
			return fmt.Errorf("inserting team %s: %w", t.Team, err)
		}
	}

	if err := r.insertSummaries(ctx, tx, label, store.SummaryPlayers, snap.PlayerStats); err != nil {
		return err
	}
	if err := r.insertSummaries(ctx, tx, label, store.SummaryTeams, snap.TeamStats); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing season %s: %w", label, err)
	}
	return nil
}

func (r *SeasonRepository) insertGames(ctx context.Context, tx *sql.Tx, label string, rows []season.GameRow) error {
	cols := strings.Join(boxscore.Columns, ", ")
	holders := make([]string, len(boxscore.Columns)+3)
	for i := range holders {
		holders[i] = fmt.Sprintf("$%d", i+1)
	}
	stmt, err := tx.PrepareContext(ctx, r.db.Rebind(`INSERT INTO game_stats (season, game_id, row_index, `+cols+`)
		VALUES (`+strings.Join(holders, ", ")+`)`))
	if err != nil {
		return fmt.Errorf("preparing game insert: %w", err)
	}
	defer stmt.Close()

	index := make(map[string]int)
	for _, row := range rows {
		args := []interface{}{label, row.GameID, index[row.GameID], row.Team, row.PlayerName}
		for _, col := range boxscore.Columns[2:] {
			args = append(args, *row.Field(col))
		}
		index[row.GameID]++
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting game %s row: %w", row.GameID, err)
		}
	}
	return nil
}

func (r *SeasonRepository) insertSummaries(ctx context.Context, tx *sql.Tx, label string, kind store.SummaryKind, rows []season.SummaryRow) error {
	query := r.db.Rebind(`INSERT INTO stats_summaries (season, kind, group_key, ` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`)
	for _, s := range rows {
		_, err := tx.ExecContext(ctx, query, label, string(kind), s.Key,
			s.Games, s.AvgPoints, s.AvgPointsFromTwoPoint, s.AvgPointsFromThreePoint,
			s.AvgFreeThrowsAttempted, s.AvgTwoPointAttempted, s.AvgThreePointAttempted,
			s.TwoPointPct, s.ThreePointPct, s.FreeThrowsPct,
			s.AvgRebounds, s.AvgOffensiveRebounds, s.AvgDefensiveRebounds,
			s.AvgAssists, s.AvgBlocks, s.AvgTurnovers, s.AvgFoulsCommitted, s.AvgFoulsReceived, s.AvgDuration,
		)
		if err != nil {
			return fmt.Errorf("inserting %s summary %s: %w", kind, s.Key, err)
		}
	}
	return nil
}

// ListSeasons returns every loaded season, most recently loaded first.
func (r *SeasonRepository) ListSeasons(ctx context.Context) ([]*store.Season, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT label, games, games_skipped, loaded_at FROM seasons ORDER BY loaded_at DESC, label`)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*store.Season
	for rows.Next() {
		s := &store.Season{}
		if err := rows.Scan(&s.Label, &s.Games, &s.GamesSkipped, &s.LoadedAt); err != nil {
			return nil, fmt.Errorf("scanning season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// LatestSeason returns the label of the most recently loaded season.
func (r *SeasonRepository) LatestSeason(ctx context.Context) (string, error) {
	var label string
	err := r.db.DB().QueryRowContext(ctx, `SELECT label FROM seasons ORDER BY loaded_at DESC, label LIMIT 1`).Scan(&label)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no season loaded: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying latest season: %w", err)
	}
	return label, nil
}

// ListPlayers returns the season's players ordered by id.
func (r *SeasonRepository) ListPlayers(ctx context.Context, label string) ([]season.PlayerIdentity, error) {
	return r.queryPlayers(ctx, `SELECT player_id, player_name FROM players WHERE season = $1 ORDER BY player_id`, label)
}

// SearchPlayers matches q against canonical player names, so accents and case do not matter.
func (r *SeasonRepository) SearchPlayers(ctx context.Context, label, q string) ([]season.PlayerIdentity, error) {
	pattern := "%" + escapeLike(season.Canonicalize(strings.TrimSpace(q))) + "%"
	return r.queryPlayers(ctx, `SELECT player_id, player_name FROM players
		WHERE season = $1 AND player_name LIKE $2 ESCAPE '\' ORDER BY player_id`, label, pattern)
}

func (r *SeasonRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]season.PlayerIdentity, error) {
	rows, err := r.db.DB().QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	players := []season.PlayerIdentity{}
	for rows.Next() {
		var p season.PlayerIdentity
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayer returns a player with their season summary.
func (r *SeasonRepository) GetPlayer(ctx context.Context, label string, playerID int) (*store.PlayerDetail, error) {
	detail := &store.PlayerDetail{Season: label}
	err := r.db.DB().QueryRowContext(ctx, r.db.Rebind(`SELECT player_id, player_name FROM players WHERE season = $1 AND player_id = $2`),
		label, playerID).Scan(&detail.ID, &detail.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %d: %w", playerID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	summary, err := r.getSummary(ctx, label, store.SummaryPlayers, detail.Name)
	if err != nil {
		return nil, err
	}
	detail.Summary = summary
	return detail, nil
}

// ListTeams returns the season's teams ordered by id.
func (r *SeasonRepository) ListTeams(ctx context.Context, label string) ([]season.TeamIdentity, error) {
	rows, err := r.db.DB().QueryContext(ctx, r.db.Rebind(`SELECT team_id, team FROM teams WHERE season = $1 ORDER BY team_id`), label)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	teams := []season.TeamIdentity{}
	for rows.Next() {
		var t season.TeamIdentity
		if err := rows.Scan(&t.ID, &t.Team); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam returns a team with its season summary and the players who appeared for it.
func (r *SeasonRepository) GetTeam(ctx context.Context, label string, teamID int) (*store.TeamDetail, error) {
	detail := &store.TeamDetail{Season: label, Players: []string{}}
	err := r.db.DB().QueryRowContext(ctx, r.db.Rebind(`SELECT team_id, team FROM teams WHERE season = $1 AND team_id = $2`),
		label, teamID).Scan(&detail.ID, &detail.Team)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team %d: %w", teamID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	summary, err := r.getSummary(ctx, label, store.SummaryTeams, detail.Team)
	if err != nil {
		return nil, err
	}
	detail.Summary = summary

	rows, err := r.db.DB().QueryContext(ctx, r.db.Rebind(`SELECT DISTINCT player_name FROM game_stats
		WHERE season = $1 AND team = $2 ORDER BY player_name`), label, detail.Team)
	if err != nil {
		return nil, fmt.Errorf("querying team roster: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning roster: %w", err)
		}
		detail.Players = append(detail.Players, name)
	}
	return detail, rows.Err()
}

// ListSummaries returns every summary row of one kind, ordered by key.
func (r *SeasonRepository) ListSummaries(ctx context.Context, label string, kind store.SummaryKind) ([]season.SummaryRow, error) {
	rows, err := r.db.DB().QueryContext(ctx, r.db.Rebind(`SELECT group_key, `+summaryColumns+`
		FROM stats_summaries WHERE season = $1 AND kind = $2 ORDER BY group_key`), label, string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	out := []season.SummaryRow{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SeasonRepository) getSummary(ctx context.Context, label string, kind store.SummaryKind, key string) (*season.SummaryRow, error) {
	row := r.db.DB().QueryRowContext(ctx, r.db.Rebind(`SELECT group_key, `+summaryColumns+`
		FROM stats_summaries WHERE season = $1 AND kind = $2 AND group_key = $3`), label, string(kind), key)
	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSummary(sc scanner) (*season.SummaryRow, error) {
	s := &season.SummaryRow{}
	err := sc.Scan(&s.Key, &s.Games, &s.AvgPoints, &s.AvgPointsFromTwoPoint, &s.AvgPointsFromThreePoint,
		&s.AvgFreeThrowsAttempted, &s.AvgTwoPointAttempted, &s.AvgThreePointAttempted,
		&s.TwoPointPct, &s.ThreePointPct, &s.FreeThrowsPct,
		&s.AvgRebounds, &s.AvgOffensiveRebounds, &s.AvgDefensiveRebounds,
		&s.AvgAssists, &s.AvgBlocks, &s.AvgTurnovers, &s.AvgFoulsCommitted, &s.AvgFoulsReceived, &s.AvgDuration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning summary: %w", err)
	}
	return s, nil
}

// GameBoxScore returns the stored rows of one game in their original order.
func (r *SeasonRepository) GameBoxScore(ctx context.Context, label, gameID string) ([]season.GameRow, error) {
	cols := strings.Join(boxscore.Columns, ", ")
	rows, err := r.db.DB().QueryContext(ctx, r.db.Rebind(`SELECT game_id, `+cols+`
		FROM game_stats WHERE season = $1 AND game_id = $2 ORDER BY row_index`), label, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying box score: %w", err)
	}
	defer rows.Close()

	var out []season.GameRow
	for rows.Next() {
		var g season.GameRow
		dest := []interface{}{&g.GameID, &g.Team, &g.PlayerName}
		for _, col := range boxscore.Columns[2:] {
			dest = append(dest, g.Field(col))
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning box score row: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

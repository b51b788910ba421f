// Package tablefile reads and writes the CSV artifacts: one box score file per
// game and the season tables derived from them.
package tablefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/season"
)

// Season artifact file names.
const (
	GamesFile       = "games_table.csv"
	PlayersFile     = "players_table.csv"
	TeamsFile       = "teams_table.csv"
	PlayerStatsFile = "player_stats_table.csv"
	TeamStatsFile   = "team_stats_table.csv"
)

// BoxScoreName is the file name of a game's box score.
func BoxScoreName(teams [2]string) string {
	clean := func(s string) string {
		return strings.NewReplacer("/", "-", string(os.PathSeparator), "-").Replace(s)
	}
	return clean(teams[0]) + "_" + clean(teams[1]) + ".csv"
}

// WriteBoxScore writes box to dir and returns the file path.
func WriteBoxScore(dir string, box *boxscore.BoxScore) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, BoxScoreName(box.Teams))

	records := make([][]string, 0, len(box.Rows)+1)
	records = append(records, boxscore.Columns)
	for _, row := range box.Rows {
		records = append(records, row.Strings())
	}
	if err := writeCSV(path, records); err != nil {
		return "", err
	}
	return path, nil
}

// ReadBoxScore reads a box score file. Columns are matched by name, so files
// carrying an extra leading row-index column are accepted.
func ReadBoxScore(path string) ([]boxscore.PlayerStatRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return decodeBoxScore(f)
}

func decodeBoxScore(r io.Reader) ([]boxscore.PlayerStatRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range boxscore.Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []boxscore.PlayerStatRecord
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(record), len(header))
		}

		rec := boxscore.PlayerStatRecord{
			Team:       record[index["team"]],
			PlayerName: record[index["player_name"]],
		}
		for _, col := range boxscore.Columns[2:] {
			v, err := strconv.Atoi(strings.TrimSpace(record[index[col]]))
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, col, err)
			}
			*rec.Field(col) = v
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// GameFile is a discovered box score file.
type GameFile struct {
	ID   string // slash-separated path relative to the root, without extension
	Path string
}

// DiscoverGames finds every box score file under root, in lexical order of id.
// Season artifacts written into the same tree are ignored.
func DiscoverGames(root string) ([]GameFile, error) {
	artifacts := map[string]bool{
		GamesFile: true, PlayersFile: true, TeamsFile: true, PlayerStatsFile: true, TeamStatsFile: true,
	}

	var files []GameFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".csv" || artifacts[d.Name()] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(filepath.ToSlash(rel), ".csv")
		files = append(files, GameFile{ID: id, Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	slices.SortFunc(files, func(a, b GameFile) int { return strings.Compare(a.ID, b.ID) })
	return files, nil
}

// LoadGames reads every discovered game. Unreadable files are logged and
// counted, and the remaining games are still returned.
func LoadGames(root string) ([]season.Game, int, error) {
	files, err := DiscoverGames(root)
	if err != nil {
		return nil, 0, err
	}

	var games []season.Game
	skipped := 0
	for _, f := range files {
		rows, err := ReadBoxScore(f.Path)
		if err != nil {
			log.Printf("[aggregate] ⚠️  Skipping %s: %v", f.ID, err)
			skipped++
			continue
		}
		games = append(games, season.Game{ID: f.ID, Rows: rows})
	}
	return games, skipped, nil
}

// WriteSeason writes the five season artifacts into dir.
func WriteSeason(dir string, snap *season.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	games := [][]string{append([]string{"game_id"}, boxscore.Columns...)}
	for _, row := range snap.Games {
		games = append(games, append([]string{row.GameID}, row.Strings()...))
	}

	players := [][]string{{"id", "player_name"}}
	for _, p := range snap.Players {
		players = append(players, []string{strconv.Itoa(p.ID), p.Name})
	}

	teams := [][]string{{"id", "team"}}
	for _, tm := range snap.Teams {
		teams = append(teams, []string{strconv.Itoa(tm.ID), tm.Team})
	}

	summary := func(key season.GroupKey, rows []season.SummaryRow) [][]string {
		out := [][]string{season.Header(key)}
		for _, r := range rows {
			out = append(out, r.Strings())
		}
		return out
	}

	artifacts := []struct {
		name    string
		records [][]string
	}{
		{GamesFile, games},
		{PlayersFile, players},
		{TeamsFile, teams},
		{PlayerStatsFile, summary(season.ByPlayer, snap.PlayerStats)},
		{TeamStatsFile, summary(season.ByTeam, snap.TeamStats)},
	}
	for _, a := range artifacts {
		if err := writeCSV(filepath.Join(dir, a.name), a.records); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

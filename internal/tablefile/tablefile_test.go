package tablefile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/boxscore/boxscoretest"
	"github.com/fortuna/esake/internal/season"
)

func extractFixture(t *testing.T) *boxscore.BoxScore {
	t.Helper()
	box, err := boxscore.NewExtractor().ExtractGame(boxscoretest.GameText)
	if err != nil {
		t.Fatalf("ExtractGame: %v", err)
	}
	return box
}

func TestBoxScoreRoundTrip(t *testing.T) {
	box := extractFixture(t)
	dir := filepath.Join(t.TempDir(), "regular", "1")

	path, err := WriteBoxScore(dir, box)
	if err != nil {
		t.Fatalf("WriteBoxScore: %v", err)
	}
	if filepath.Base(path) != "ΑΕΚ_ΠΑΟΚ.csv" {
		t.Errorf("file name = %s", filepath.Base(path))
	}

	rows, err := ReadBoxScore(path)
	if err != nil {
		t.Fatalf("ReadBoxScore: %v", err)
	}
	if len(rows) != len(box.Rows) {
		t.Fatalf("rows = %d, want %d", len(rows), len(box.Rows))
	}
	for i := range rows {
		if rows[i] != box.Rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], box.Rows[i])
		}
	}
}

func TestReadBoxScoreWithIndexColumn(t *testing.T) {
	header := "," + strings.Join(boxscore.Columns, ",")
	line := "0,ΑΕΚ,ΠΑΠΑΣ,600,5,1,2,1,1,2,2,0,0,1,1,0,0,1,3"
	rows, err := decodeBoxScore(strings.NewReader(header + "\n" + line + "\n"))
	if err != nil {
		t.Fatalf("decodeBoxScore: %v", err)
	}
	if len(rows) != 1 || rows[0].PlayerName != "ΠΑΠΑΣ" || rows[0].DurationSeconds != 600 || rows[0].DefensiveRebounds != 3 {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestReadBoxScoreRejectsBadRows(t *testing.T) {
	header := strings.Join(boxscore.Columns, ",")
	tests := map[string]string{
		"missing column": "team,player_name\nΑΕΚ,Α\n",
		"non numeric":    header + "\nΑΕΚ,Α,x,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1\n",
		"short row":      header + "\nΑΕΚ,Α,1\n",
	}
	for name, data := range tests {
		if _, err := decodeBoxScore(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDiscoverAndLoadGames(t *testing.T) {
	root := t.TempDir()
	box := extractFixture(t)

	if _, err := WriteBoxScore(filepath.Join(root, "regular", "2"), box); err != nil {
		t.Fatalf("WriteBoxScore: %v", err)
	}
	if _, err := WriteBoxScore(filepath.Join(root, "regular", "1"), box); err != nil {
		t.Fatalf("WriteBoxScore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "regular", "broken.csv"), []byte("nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverGames(root)
	if err != nil {
		t.Fatalf("DiscoverGames: %v", err)
	}
	var ids []string
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	want := "regular/1/ΑΕΚ_ΠΑΟΚ|regular/2/ΑΕΚ_ΠΑΟΚ|regular/broken"
	if strings.Join(ids, "|") != want {
		t.Fatalf("ids = %v, want %s", ids, want)
	}

	games, skipped, err := LoadGames(root)
	if err != nil {
		t.Fatalf("LoadGames: %v", err)
	}
	if len(games) != 2 || skipped != 1 {
		t.Fatalf("games = %d skipped = %d", len(games), skipped)
	}
}

func TestWriteSeason(t *testing.T) {
	box := extractFixture(t)
	snap, err := season.Build([]season.Game{{ID: "g1", Rows: box.Rows}}, season.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dir := t.TempDir()
	if err := WriteSeason(dir, snap); err != nil {
		t.Fatalf("WriteSeason: %v", err)
	}

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return records
	}

	games := read(GamesFile)
	if len(games) != 7 || games[0][0] != "game_id" || games[1][2] != "ΜΠΕΤΣ ΑΝΤΡΙΟΥ" {
		t.Errorf("games table = %v", games[:2])
	}
	if players := read(PlayersFile); len(players) != 7 || players[1][0] != "0" {
		t.Errorf("players table = %v", players)
	}
	if teams := read(TeamsFile); len(teams) != 3 || teams[2][1] != "ΠΑΟΚ" {
		t.Errorf("teams table = %v", teams)
	}

	stats := read(PlayerStatsFile)
	if stats[0][0] != "player_name" || len(stats[0]) != len(season.Header(season.ByPlayer)) {
		t.Errorf("player stats header = %v", stats[0])
	}
	// ΜΑΥΡΟΣ ΠΕΤΡΟΣ never attempted a three.
	found := false
	for _, r := range stats[1:] {
		if r[0] == "ΜΑΥΡΟΣ ΠΕΤΡΟΣ" {
			found = true
			if r[9] != season.Undefined {
				t.Errorf("three_point_pct = %q, want %q", r[9], season.Undefined)
			}
		}
	}
	if !found {
		t.Errorf("ΜΑΥΡΟΣ ΠΕΤΡΟΣ missing from player stats")
	}
	if teamStats := read(TeamStatsFile); teamStats[0][0] != "team" || len(teamStats) != 3 {
		t.Errorf("team stats = %v", teamStats)
	}
}

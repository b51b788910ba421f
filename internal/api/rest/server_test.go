package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/boxscore/boxscoretest"
	"github.com/fortuna/esake/internal/season"
	"github.com/fortuna/esake/internal/store"
	"github.com/fortuna/esake/internal/store/repository"
)

func newTestServer(t *testing.T, seed bool) http.Handler {
	t.Helper()
	db, err := store.NewDatabase(store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	if seed {
		box, err := boxscore.NewExtractor().ExtractGame(boxscoretest.GameText)
		if err != nil {
			t.Fatalf("ExtractGame: %v", err)
		}
		snap, err := season.Build([]season.Game{{ID: "regular/1/ΑΕΚ_ΠΑΟΚ", Rows: box.Rows}}, season.Options{})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if err := repository.NewSeasonRepository(db).ReplaceSeason(context.Background(), "2019-20", snap); err != nil {
			t.Fatalf("ReplaceSeason: %v", err)
		}
	}

	return NewServer("0", db, nil).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, false)
	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q", got)
	}
}

func TestNoSeasonLoaded(t *testing.T) {
	h := newTestServer(t, false)
	rec := do(t, h, http.MethodGet, "/api/v1/players", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestSeasonRoutes(t *testing.T) {
	h := newTestServer(t, true)

	tests := []struct {
		name   string
		target string
		status int
		check  func(t *testing.T, body []byte)
	}{
		{
			name:   "players default season",
			target: "/api/v1/players",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var players []season.PlayerIdentity
				if err := json.Unmarshal(body, &players); err != nil {
					t.Fatal(err)
				}
				if len(players) != 6 || players[0].Name != "ΜΠΕΤΣ ΑΝΤΡΙΟΥ" {
					t.Errorf("players = %+v", players)
				}
			},
		},
		{
			name:   "search",
			target: "/api/v1/players/search?q=" + url.QueryEscape("σλουκας"),
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var players []season.PlayerIdentity
				if err := json.Unmarshal(body, &players); err != nil {
					t.Fatal(err)
				}
				if len(players) != 1 || players[0].Name != "ΣΛΟΥΚΑΣ ΘΑΝΟΣ" {
					t.Errorf("players = %+v", players)
				}
			},
		},
		{name: "search without q", target: "/api/v1/players/search", status: http.StatusBadRequest},
		{name: "player", target: "/api/v1/players/0?season=2019-20", status: http.StatusOK},
		{name: "player not found", target: "/api/v1/players/42", status: http.StatusNotFound},
		{name: "player bad id", target: "/api/v1/players/abc", status: http.StatusBadRequest},
		{
			name:   "team",
			target: "/api/v1/teams/1",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var team struct {
					Team    string   `json:"team"`
					Players []string `json:"players"`
				}
				if err := json.Unmarshal(body, &team); err != nil {
					t.Fatal(err)
				}
				if team.Team != "ΠΑΟΚ" || len(team.Players) != 3 {
					t.Errorf("team = %+v", team)
				}
			},
		},
		{
			name:   "team stats",
			target: "/api/v1/stats/teams",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var rows []map[string]interface{}
				if err := json.Unmarshal(body, &rows); err != nil {
					t.Fatal(err)
				}
				if len(rows) != 2 || rows[0]["key"] != "ΑΕΚ" {
					t.Errorf("rows = %+v", rows)
				}
			},
		},
		{
			name:   "player stats null pct",
			target: "/api/v1/stats/players",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var rows []map[string]interface{}
				if err := json.Unmarshal(body, &rows); err != nil {
					t.Fatal(err)
				}
				for _, row := range rows {
					if row["key"] == "ΜΑΥΡΟΣ ΠΕΤΡΟΣ" && row["three_point_pct"] != nil {
						t.Errorf("three_point_pct = %v, want null", row["three_point_pct"])
					}
				}
			},
		},
		{
			name:   "box score",
			target: "/api/v1/games/regular/1/" + url.PathEscape("ΑΕΚ_ΠΑΟΚ") + "/boxscore",
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp struct {
					GameID string           `json:"game_id"`
					Rows   []season.GameRow `json:"rows"`
				}
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatal(err)
				}
				if resp.GameID != "regular/1/ΑΕΚ_ΠΑΟΚ" || len(resp.Rows) != 6 {
					t.Errorf("resp = %+v", resp)
				}
			},
		},
		{name: "unknown game", target: "/api/v1/games/x/boxscore", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.status, rec.Body)
			}
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}

func TestExtract(t *testing.T) {
	h := newTestServer(t, false)

	body, _ := json.Marshal(map[string]interface{}{"text": boxscoretest.GameText})
	rec := do(t, h, http.MethodPost, "/api/v1/extract", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var box boxscore.BoxScore
	if err := json.Unmarshal(rec.Body.Bytes(), &box); err != nil {
		t.Fatal(err)
	}
	if box.Teams != boxscoretest.Teams || len(box.Rows) != 6 {
		t.Fatalf("box = %+v", box)
	}

	body, _ = json.Marshal(map[string]interface{}{"text": boxscoretest.SingleTotalsText})
	rec = do(t, h, http.MethodPost, "/api/v1/extract", string(body))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	body, _ = json.Marshal(map[string]interface{}{"text": "x", "teams": []string{"ΑΕΚ"}})
	rec = do(t, h, http.MethodPost, "/api/v1/extract", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/extract", "{")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

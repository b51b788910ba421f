package boxscore

import (
	"errors"
	"strings"
	"testing"

	"github.com/fortuna/esake/internal/boxscore/boxscoretest"
)

func TestExtractGame(t *testing.T) {
	box, err := NewExtractor().ExtractGame(boxscoretest.GameText)
	if err != nil {
		t.Fatalf("ExtractGame: %v", err)
	}

	if box.Teams != boxscoretest.Teams {
		t.Fatalf("teams = %v, want %v", box.Teams, boxscoretest.Teams)
	}
	if len(box.Rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(box.Rows))
	}
	if box.RosterSizes != [2]int{3, 3} {
		t.Fatalf("roster sizes = %v", box.RosterSizes)
	}

	for i, row := range box.Rows {
		team, idx := 0, i
		if i >= box.RosterSizes[0] {
			team, idx = 1, i-box.RosterSizes[0]
		}
		if row.Team != boxscoretest.Teams[team] {
			t.Errorf("row %d team = %q, want %q", i, row.Team, boxscoretest.Teams[team])
		}
		if row.PlayerName != boxscoretest.Players[team][idx] {
			t.Errorf("row %d player = %q, want %q", i, row.PlayerName, boxscoretest.Players[team][idx])
		}
	}

	want := PlayerStatRecord{
		Team:                "ΑΕΚ",
		PlayerName:          "ΜΠΕΤΣ Άντριου",
		DurationSeconds:     23*60 + 13,
		Points:              12,
		TwoPointAchieved:    3,
		TwoPointAttempted:   5,
		ThreePointAchieved:  1,
		ThreePointAttempted: 2,
		FreeThrowsAchieved:  3,
		FreeThrowsAttempted: 4,
		Turnovers:           1,
		Steals:              0,
		FoulsCommitted:      2,
		FoulsReceived:       3,
		Blocks:              1,
		Assists:             0,
		OffensiveRebounds:   0,
		DefensiveRebounds:   4,
	}
	if box.Rows[0] != want {
		t.Errorf("first row = %+v\nwant %+v", box.Rows[0], want)
	}

	// Last players are bounded by the totals row, not the next name.
	home := box.Rows[2]
	if home.DurationSeconds != 15*60+40 || home.Points != 4 || home.DefensiveRebounds != 3 {
		t.Errorf("home last player = %+v", home)
	}
	away := box.Rows[5]
	if away.DurationSeconds != 10*60+10 || away.Points != 2 || away.ThreePointAttempted != 0 || away.DefensiveRebounds != 1 {
		t.Errorf("away last player = %+v", away)
	}
	// A rank number between two players must not leak into the earlier span.
	if got := box.Rows[4]; got.DefensiveRebounds != 4 || got.Points != 7 {
		t.Errorf("row before ranked player = %+v", got)
	}
}

func TestExtractRejectsPartialTable(t *testing.T) {
	// Seconds out of range in a middle row of the home team.
	text := strings.Replace(boxscoretest.GameText, "ΠΑΠΑΣ ΓΙΩΡΓΟΣ 00:30:05", "ΠΑΠΑΣ ΓΙΩΡΓΟΣ 00:30:75", 1)
	box, err := NewExtractor().Extract(text, boxscoretest.Teams)
	if box != nil {
		t.Fatalf("box = %+v, want nil", box)
	}
	var decodeErr *FieldDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want *FieldDecodeError", err)
	}
	if decodeErr.Player != "ΠΑΠΑΣ ΓΙΩΡΓΟΣ" || decodeErr.Field != "duration" {
		t.Errorf("decode error = %+v", decodeErr)
	}
	if !IsSkippable(err) {
		t.Errorf("IsSkippable = false")
	}
}

func TestExtractRepeatedNames(t *testing.T) {
	tests := []struct {
		name     string
		away     string
		duration int
	}{
		// Same full name on both teams.
		{"same name", "ΛΑΓΙΟΣ ΝΙΚΟΣ", 10*60 + 10},
		// Away name is the last word of a home player's name.
		{"suffix of home name", "ΓΙΩΡΓΟΣ", 10*60 + 10},
		// Away name is the tail of a word in a home row.
		{"inside a word", "ΩΡΓΟΣ", 10*60 + 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Replace(boxscoretest.GameText, "4 ΜΑΥΡΟΣ ΠΕΤΡΟΣ", "4 "+tt.away, 1)
			box, err := NewExtractor().Extract(text, boxscoretest.Teams)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if len(box.Rows) != 6 {
				t.Fatalf("rows = %d, want 6", len(box.Rows))
			}
			home, away := box.Rows[2], box.Rows[5]
			if home.DurationSeconds != 15*60+40 || home.Points != 4 {
				t.Errorf("home last player = %+v", home)
			}
			if away.PlayerName != tt.away || away.DurationSeconds != tt.duration || away.Points != 2 || away.DefensiveRebounds != 1 {
				t.Errorf("away last player = %+v", away)
			}
		})
	}
}

func TestExtractSingleTotals(t *testing.T) {
	_, err := NewExtractor().ExtractGame(boxscoretest.SingleTotalsText)
	if !errors.Is(err, ErrMalformedGame) {
		t.Fatalf("err = %v, want ErrMalformedGame", err)
	}
	if !IsSkippable(err) {
		t.Fatalf("expected skippable error")
	}
}

func TestTeams(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [2]string
		err  bool
	}{
		{"simple", "ΑΕΚ SHOTS 45% ΠΑΟΚ SHOTS 41%", [2]string{"ΑΕΚ", "ΠΑΟΚ"}, false},
		{"two words", "x ΑΡΗΣ ΘΕΣ SHOTS 1% ΗΡΑΚΛΗΣ SHOTS", [2]string{"ΑΡΗΣ ΘΕΣ", "ΗΡΑΚΛΗΣ"}, false},
		{"leading number dropped", "ΑΕΚ SHOTS 45 ΠΑΟΚ SHOTS", [2]string{"ΑΕΚ", "ΠΑΟΚ"}, false},
		{"one team", "ΑΕΚ SHOTS 45%", [2]string{}, true},
	}

	ex := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ex.Teams(tt.text)
			if tt.err {
				if !errors.Is(err, ErrMalformedGame) {
					t.Fatalf("err = %v, want ErrMalformedGame", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Teams: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRosters(t *testing.T) {
	rosters, err := NewExtractor().Rosters(boxscoretest.GameText)
	if err != nil {
		t.Fatalf("Rosters: %v", err)
	}
	for team := range rosters {
		if strings.Join(rosters[team], "|") != strings.Join(boxscoretest.Players[team], "|") {
			t.Errorf("team %d roster = %q, want %q", team, rosters[team], boxscoretest.Players[team])
		}
	}
}

func TestRosterEmpty(t *testing.T) {
	s := DefaultSentinels()
	_, err := s.Roster([]Token{{Text: "RANK ΠΑΙΚΤΗΣ", Kind: TokenHeader}})
	if !errors.Is(err, ErrMalformedRoster) || !errors.Is(err, ErrMalformedGame) {
		t.Fatalf("err = %v, want both roster and game sentinels", err)
	}
}

func TestStripNumericNoise(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1 0 2 3 1 0 0 4 5 ΛΑΓΙΟΣ ΝΙΚΟΣ", "ΛΑΓΙΟΣ ΝΙΚΟΣ"},
		{"3 - 5 ΚΑΛΑΘΑΚΗΣ", "ΚΑΛΑΘΑΚΗΣ"},
		{"ΚΑΛΑΘΑΚΗΣ", "ΚΑΛΑΘΑΚΗΣ"},
	}
	for _, tt := range tests {
		if got := stripNumericNoise(tt.in); got != tt.want {
			t.Errorf("stripNumericNoise(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	s := DefaultSentinels()
	tokens := s.Classify(Tokenize("RANK ΠΑΙΚΤΗΣ # ΠΑΠΑΣ ΓΙΩΡΓΟΣ 00:10 5 0 4 ΣΥΝΟΛΟ 200"))
	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []TokenKind{TokenHeader, TokenRosterEntry, TokenTotals}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v (tokens %q), want %v", kinds, tokens, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d (%q) kind = %v, want %v", i, tokens[i].Text, kinds[i], want[i])
		}
	}
}

func TestTokenizeStopsEarly(t *testing.T) {
	n := 0
	for range Tokenize(boxscoretest.GameText) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("consumed %d tokens", n)
	}

	// Ranging twice yields the same sequence.
	var first, second []string
	for tok := range Tokenize(boxscoretest.GameText) {
		first = append(first, tok)
	}
	for tok := range Tokenize(boxscoretest.GameText) {
		second = append(second, tok)
	}
	if strings.Join(first, "|") != strings.Join(second, "|") {
		t.Fatalf("tokenizer is not restartable")
	}
}

func TestStatSpanMissing(t *testing.T) {
	s := DefaultSentinels()
	rosters := [2][]string{{"ΑΓΝΩΣΤΟΣ", "ΚΑΝΕΙΣ"}, {"ΚΩΣΤΑΣ ΔΗΜΟΥ"}}
	_, err := s.StatSpans(boxscoretest.GameText, rosters)

	var spanErr *StatSpanError
	if !errors.As(err, &spanErr) {
		t.Fatalf("err = %v, want *StatSpanError", err)
	}
	if spanErr.Player != "ΑΓΝΩΣΤΟΣ" {
		t.Errorf("player = %q", spanErr.Player)
	}
	if !errors.Is(err, ErrMalformedStatSpan) {
		t.Errorf("errors.Is(err, ErrMalformedStatSpan) = false")
	}
}

func TestDecodeSpan(t *testing.T) {
	tests := []struct {
		name  string
		span  string
		field string
	}{
		{"minutes out of range", "Χ 00:75:13 12 3 - 5 60% 1 - 2 50% 3 - 4 75% 1 0 2 3 1 0 0 4", "duration"},
		{"no stamp", "Χ 12 3 - 5 60% 1 - 2 50% 3 - 4 75% 1 0 2 3 1 0 0 4", "duration"},
		{"two shot pairs", "Χ 00:10:13 12 3 - 5 60% 1 - 2 50% 75% 1 0 2 3 1 0 0 4", "shots"},
		{"non numeric counter", "Χ 00:10:13 12 3 - 5 60% 1 - 2 50% 3 - 4 75% 1 0 2 x 1 0 0 4", "counters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := PlayerStatRecord{PlayerName: "Χ"}
			err := decodeSpan(&rec, tt.span, DefaultCounterFields)
			var fe *FieldDecodeError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FieldDecodeError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
			if !errors.Is(err, ErrFieldDecode) {
				t.Errorf("errors.Is(err, ErrFieldDecode) = false")
			}
		})
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for _, stamp := range []string{"00:00:00", "00:59:59", "01:02:03", "00:23:13"} {
		rec := PlayerStatRecord{}
		span := "Χ " + stamp + " 1 0 - 0 0% 0 - 0 0% 0 - 0 0% 0 0 0 0 0 0 0 0"
		if err := decodeSpan(&rec, span, DefaultCounterFields); err != nil {
			t.Fatalf("%s: %v", stamp, err)
		}
		var h, m, s int
		h = int(stamp[0]-'0')*10 + int(stamp[1]-'0')
		m = int(stamp[3]-'0')*10 + int(stamp[4]-'0')
		s = int(stamp[6]-'0')*10 + int(stamp[7]-'0')
		if rec.DurationSeconds != h*3600+m*60+s {
			t.Errorf("%s decoded to %d", stamp, rec.DurationSeconds)
		}
	}
}

func TestCustomSentinels(t *testing.T) {
	text := strings.NewReplacer("ΣΥΝΟΛΟ", "TOTALS", "SHOTS", "FG").Replace(boxscoretest.GameText)
	ex := NewExtractor(WithSentinels(Sentinels{Shots: "FG", Totals: "TOTALS", Jersey: "00", Header: "RANK"}))

	box, err := ex.ExtractGame(text)
	if err != nil {
		t.Fatalf("ExtractGame: %v", err)
	}
	if len(box.Rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(box.Rows))
	}
}

func TestShotAnomaliesPassThrough(t *testing.T) {
	text := strings.Replace(boxscoretest.GameText, "3 - 5 60%", "6 - 5 120%", 1)
	box, err := NewExtractor().ExtractGame(text)
	if err != nil {
		t.Fatalf("ExtractGame: %v", err)
	}
	got := box.Rows[0].ShotAnomalies()
	if len(got) != 1 || got[0] != "two_point" {
		t.Fatalf("anomalies = %v", got)
	}
}

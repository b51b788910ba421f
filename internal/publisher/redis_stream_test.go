package publisher

import (
	"testing"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/boxscore/boxscoretest"
)

func TestEventEncoding(t *testing.T) {
	box, err := boxscore.NewExtractor().ExtractGame(boxscoretest.GameText)
	if err != nil {
		t.Fatalf("ExtractGame: %v", err)
	}

	values, err := encodeEvent(BoxScoreEvent{GameID: "0000A1B2", BoxScore: box, Timestamp: 42})
	if err != nil {
		t.Fatalf("encodeEvent: %v", err)
	}
	if values["game_id"] != "0000A1B2" {
		t.Errorf("game_id field = %v", values["game_id"])
	}

	ev, err := decodeEvent(values)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if ev.GameID != "0000A1B2" || ev.Timestamp != 42 || len(ev.BoxScore.Rows) != 6 {
		t.Fatalf("event = %+v", ev)
	}
	if ev.BoxScore.Rows[0] != box.Rows[0] {
		t.Errorf("row 0 = %+v, want %+v", ev.BoxScore.Rows[0], box.Rows[0])
	}
}

func TestDecodeEventMissingData(t *testing.T) {
	if _, err := decodeEvent(map[string]interface{}{"game_id": "x"}); err == nil {
		t.Fatalf("expected error")
	}
}

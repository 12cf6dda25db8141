package geoguessr

import (
	"encoding/json"
	"testing"
)

func TestHighscoresDecode(t *testing.T) {
	payload := `{
		"items": [
			{"game": {"player": {"nick": "alice", "totalScore": {"amount": "24750"}}}},
			{"game": {"player": {"nick": "bob", "totalScore": {"amount": 19850}}}},
			{"game": {"player": {"totalScore": {"amount": "12000"}}}},
			{"game": {"player": {"nick": "carol"}}}
		]
	}`
	var hs Highscores
	if err := json.Unmarshal([]byte(payload), &hs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(hs.Items) != 4 {
		t.Fatalf("items: got %d", len(hs.Items))
	}
	if hs.Items[0].Game.Player.Nick != "alice" || hs.Items[0].Game.Player.TotalScore.Amount != 24750 {
		t.Fatalf("item 0: %+v", hs.Items[0])
	}
	if hs.Items[1].Game.Player.TotalScore.Amount != 19850 {
		t.Fatalf("item 1 numeric amount: %+v", hs.Items[1])
	}
	if hs.Items[2].Game.Player.Nick != "" {
		t.Fatalf("item 2 nick should be empty: %+v", hs.Items[2])
	}
	if hs.Items[3].Game.Player.TotalScore.Amount != 0 {
		t.Fatalf("item 3 missing score should be zero: %+v", hs.Items[3])
	}
}

func TestHighscoresDecodeEmpty(t *testing.T) {
	var hs Highscores
	if err := json.Unmarshal([]byte(`{"items": []}`), &hs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(hs.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(hs.Items))
	}
}

func TestScoreDecodeOddValues(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`{"amount": "24750.5"}`, 24750},
		{`{"amount": null}`, 0},
		{`{"amount": ""}`, 0},
		{`{"amount": "n/a"}`, 0},
		{`{}`, 0},
	}
	for _, c := range cases {
		var s Score
		if err := json.Unmarshal([]byte(c.in), &s); err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if s.Amount != c.want {
			t.Fatalf("%s: got %d, want %d", c.in, s.Amount, c.want)
		}
	}
}

func TestChallengeURL(t *testing.T) {
	got := ChallengeURL("AbCd1234")
	want := "https://www.geoguessr.com/challenge/AbCd1234"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

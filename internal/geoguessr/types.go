package geoguessr

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ModeSettings are the game restrictions sent when creating a challenge.
type ModeSettings struct {
	ForbidMoving   bool `json:"forbidMoving"`
	ForbidZooming  bool `json:"forbidZooming"`
	ForbidRotating bool `json:"forbidRotating"`
	TimeLimit      int  `json:"timeLimit"` // seconds per round
}

type createChallengeRequest struct {
	Map string `json:"map"`
	ModeSettings
}

type createChallengeResponse struct {
	Token string `json:"token"`
}

// Highscores is the decoded leaderboard payload for a challenge token.
type Highscores struct {
	Items []HighscoreItem `json:"items"`
}

type HighscoreItem struct {
	Game HighscoreGame `json:"game"`
}

type HighscoreGame struct {
	Player HighscorePlayer `json:"player"`
}

type HighscorePlayer struct {
	Nick       string `json:"nick"`
	TotalScore Score  `json:"totalScore"`
}

// Score tolerates both numeric and string "amount" values; the live API
// has been observed returning either.
type Score struct {
	Amount int
}

func (s *Score) UnmarshalJSON(b []byte) error {
	var raw struct {
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Amount) == 0 {
		s.Amount = 0
		return nil
	}
	text := strings.Trim(string(raw.Amount), `"`)
	if text == "" || text == "null" {
		s.Amount = 0
		return nil
	}
	// Scores may arrive with a decimal part; truncate it.
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		s.Amount = int(f)
		return nil
	}
	// An unparsable amount counts as zero rather than failing the payload.
	s.Amount = 0
	return nil
}

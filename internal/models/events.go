package models

// Server → client event types.
const (
	EventRoomCreated     = "room_created"
	EventRoomJoined      = "room_joined"
	EventPlayerJoined    = "player_joined"
	EventPlayerLeft      = "player_left"
	EventSettingsUpdated = "settings_updated"
	EventGameStarted     = "game_started"
	EventQuestion        = "question"
	EventTimeUp          = "time_up"
	EventResult          = "result"
	EventScores          = "scores"
	EventGameFinished    = "game_finished"
	EventHintRevealed    = "hint_revealed"
	EventHintNone        = "hint_none"
	EventError           = "error"
)

type QuestionPayload struct {
	Question PublicQuestion `json:"question"`
	Index    int            `json:"index"`
}

type ResultPayload struct {
	Correct       bool `json:"correct"`
	CorrectAnswer bool `json:"correct_answer"`
	ScoreAwarded  int  `json:"score_awarded"`
}

type ScoresPayload struct {
	Players []*Player `json:"players"`
}

type FinishedPayload struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

type HintPayload struct {
	Hint            Hint    `json:"hint"`
	ScoreMultiplier float64 `json:"score_multiplier"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSwedish Language = "sv"
)

type RoomStatus string

const (
	StatusLobby    RoomStatus = "lobby"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

// MaxHints is the number of progressive hints available per question.
const MaxHints = 3

// HintScoreMultipliers maps the highest hint level a player used on a
// question to the multiplier applied to their score for it.
var HintScoreMultipliers = map[int]float64{
	1: 0.75,
	2: 0.5,
	3: 0.25,
}

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Avatar string `json:"avatar,omitempty"`
}

type Question struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	IsTrue    bool   `json:"is_true"`
	Category  string `json:"category,omitempty"`
	Source    string `json:"source,omitempty"`
	// Pre-authored hints ordered from least to most revealing.
	Hints []string `json:"hints,omitempty"`
}

// PublicQuestion is the client-facing view of a question. The ground truth
// must never reach clients before their answer is recorded, so it has no
// is_true field at all.
type PublicQuestion struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	Category  string `json:"category,omitempty"`
}

func (q Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:        q.ID,
		Statement: q.Statement,
		Category:  q.Category,
	}
}

type Hint struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type GameSettings struct {
	QuestionCount   int      `json:"question_count"`
	TimePerQuestion int      `json:"time_per_question"` // seconds
	HintsEnabled    bool     `json:"hints_enabled"`
	UseAI           bool     `json:"use_ai"`
	Language        Language `json:"language"`
}

func DefaultSettings() GameSettings {
	return GameSettings{
		QuestionCount:   10,
		TimePerQuestion: 15,
		HintsEnabled:    true,
		UseAI:           false,
		Language:        LanguageSwedish,
	}
}

// Room is one quiz session, addressed by a short shareable code. All
// mutation of a room (membership, scores, phase transitions) happens under
// its lock; rooms are independent of each other.
type Room struct {
	sync.Mutex `json:"-"`

	ID                   string       `json:"id"`
	Code                 string       `json:"code"`
	HostID               string       `json:"host_id"`
	Players              []*Player    `json:"players"`
	Status               RoomStatus   `json:"status"`
	CurrentQuestionIndex int          `json:"current_question_index"`
	Questions            []Question   `json:"-"`
	Settings             GameSettings `json:"settings"`
}

func NewRoom(code, hostID, hostName string, questions []Question, settings GameSettings) *Room {
	host := &Player{
		ID:   hostID,
		Name: hostName,
	}
	return &Room{
		ID:        uuid.NewString(),
		Code:      code,
		HostID:    hostID,
		Players:   []*Player{host},
		Status:    StatusLobby,
		Questions: questions,
		Settings:  settings,
	}
}

func (r *Room) AddPlayer(id, name string) *Player {
	player := &Player{
		ID:   id,
		Name: name,
	}
	r.Players = append(r.Players, player)
	return player
}

func (r *Room) RemovePlayer(playerID string) bool {
	for i, player := range r.Players {
		if player.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) GetPlayer(playerID string) *Player {
	for _, player := range r.Players {
		if player.ID == playerID {
			return player
		}
	}
	return nil
}

func (r *Room) CanStart() bool {
	return len(r.Players) >= 2 && r.Status == StatusLobby && len(r.Questions) > 0
}

type LeaderboardEntry struct {
	Player         *Player `json:"player"`
	Rank           int     `json:"rank"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	AverageTimeMs  float64 `json:"average_time_ms"`
}

type GameEvent struct {
	Type      string      `json:"type"`
	RoomID    string      `json:"room_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEvent(eventType, roomID string, data interface{}) GameEvent {
	return GameEvent{
		Type:      eventType,
		RoomID:    roomID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

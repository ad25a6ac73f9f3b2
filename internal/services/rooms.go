package services

import (
	"log"
	"math/rand"
	"strings"
	"sync"

	"facit-game/internal/models"
)

// Alphabet for join codes. I and O are left out to avoid confusion with 1/0.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	codeLength      = 4
	codeMaxAttempts = 10
)

// QuestionSource supplies the ordered question list for a room. useAI selects
// the generative path; implementations must fall back to the bank themselves
// so callers never observe a failure.
type QuestionSource interface {
	GetQuestions(count int, language models.Language, useAI bool) []models.Question
}

// RoomService owns room lifecycle: creation, code assignment, membership and
// host reassignment. It holds no timers; time-based behavior lives in
// GameService.
type RoomService struct {
	mu         sync.RWMutex
	rooms      map[string]*models.Room // room id → room
	codeToRoom map[string]string       // join code → room id
	connToRoom map[string]string       // connection id → room id

	questions QuestionSource
	defaults  models.GameSettings

	// Overridable for tests that force code collisions.
	generateCode func() string
}

func NewRoomService(questions QuestionSource, defaults models.GameSettings) *RoomService {
	return &RoomService{
		rooms:        make(map[string]*models.Room),
		codeToRoom:   make(map[string]string),
		connToRoom:   make(map[string]string),
		questions:    questions,
		defaults:     defaults,
		generateCode: randomCode,
	}
}

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// CreateRoom creates a room with the caller as host and sole member. The
// question draw (possibly a slow generative call) runs before any lock is
// taken. Fails with ErrNoRoomCodes if no unique code can be found within the
// attempt limit; a duplicate code is never silently accepted.
func (s *RoomService) CreateRoom(connID, playerName string, language models.Language) (*models.Room, error) {
	settings := s.defaults
	if language != "" {
		settings.Language = language
	}

	questions := s.questions.GetQuestions(settings.QuestionCount, settings.Language, settings.UseAI)

	s.mu.Lock()
	defer s.mu.Unlock()

	code := ""
	for i := 0; i < codeMaxAttempts; i++ {
		candidate := s.generateCode()
		if _, taken := s.codeToRoom[candidate]; !taken {
			code = candidate
			break
		}
	}
	if code == "" {
		log.Printf("Room code space exhausted after %d attempts", codeMaxAttempts)
		return nil, ErrNoRoomCodes
	}

	room := models.NewRoom(code, connID, playerName, questions, settings)
	s.rooms[room.ID] = room
	s.codeToRoom[code] = room.ID
	s.connToRoom[connID] = room.ID

	log.Printf("Room %s created by %s (%s) with %d questions", code, playerName, connID, len(questions))
	return room, nil
}

// JoinRoom adds a player to the room with the given code. Codes are matched
// case-insensitively. Joining a room that is playing or finished is rejected;
// re-joining a room the connection is already in returns the existing player.
func (s *RoomService) JoinRoom(connID, code, playerName string) (*models.Room, *models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, ok := s.codeToRoom[strings.ToUpper(code)]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	room := s.rooms[roomID]

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusLobby {
		return nil, nil, ErrRoomNotJoinable
	}

	if existing := room.GetPlayer(connID); existing != nil {
		return room, existing, nil
	}

	player := room.AddPlayer(connID, playerName)
	s.connToRoom[connID] = roomID

	log.Printf("%s (%s) joined room %s (%d players)", playerName, connID, room.Code, len(room.Players))
	return room, player, nil
}

// LeaveRoom removes the connection's player from its room, if any. An empty
// room is deleted and its code freed; if the host left, the first remaining
// player by insertion order becomes host. Safe to call for connections that
// are not in a room.
func (s *RoomService) LeaveRoom(connID string) (*models.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, ok := s.connToRoom[connID]
	if !ok {
		return nil, false
	}
	delete(s.connToRoom, connID)

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, false
	}

	room.Lock()
	defer room.Unlock()

	room.RemovePlayer(connID)

	if len(room.Players) == 0 {
		delete(s.rooms, roomID)
		delete(s.codeToRoom, room.Code)
		log.Printf("Room %s deleted (last player left)", room.Code)
		return room, true
	}

	if room.HostID == connID {
		room.HostID = room.Players[0].ID
		log.Printf("Room %s host left, %s is the new host", room.Code, room.HostID)
	}

	return room, false
}

// UpdateSettings replaces the room settings. Host only, lobby only. Changing
// the question count, language or AI flag re-draws the room's questions so
// the next game reflects it.
func (s *RoomService) UpdateSettings(connID string, settings models.GameSettings) (*models.Room, error) {
	if settings.QuestionCount < 1 || settings.TimePerQuestion < 1 {
		return nil, ErrInvalidSettings
	}

	room := s.RoomByConnection(connID)
	if room == nil {
		return nil, ErrRoomNotFound
	}

	room.Lock()
	if room.HostID != connID {
		room.Unlock()
		return nil, ErrNotHost
	}
	if room.Status != models.StatusLobby {
		room.Unlock()
		return nil, ErrGameInProgress
	}
	previous := room.Settings
	room.Settings = settings
	room.Unlock()

	if settings.QuestionCount != previous.QuestionCount ||
		settings.Language != previous.Language ||
		settings.UseAI != previous.UseAI {
		// The draw may hit the generative source, so it runs unlocked.
		questions := s.questions.GetQuestions(settings.QuestionCount, settings.Language, settings.UseAI)
		room.Lock()
		if room.Status == models.StatusLobby {
			room.Questions = questions
		}
		room.Unlock()
	}

	return room, nil
}

func (s *RoomService) RoomByConnection(connID string) *models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roomID, ok := s.connToRoom[connID]
	if !ok {
		return nil
	}
	return s.rooms[roomID]
}

func (s *RoomService) RoomByID(roomID string) *models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[roomID]
}

func (s *RoomService) RoomByCode(code string) *models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roomID, ok := s.codeToRoom[strings.ToUpper(code)]
	if !ok {
		return nil
	}
	return s.rooms[roomID]
}

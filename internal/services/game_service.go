package services

import (
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"facit-game/internal/models"
)

// Notifier pushes events to connected players. Delivery is fire-and-forget:
// a disconnected recipient simply misses the event and nothing retries.
type Notifier interface {
	ToPlayer(playerID string, event models.GameEvent)
	ToRoom(roomID string, event models.GameEvent)
}

type playerQuestionState struct {
	answered     bool
	answer       *bool // nil when no answer was submitted
	correct      bool
	timeMs       int64
	scoreAwarded int
}

type activeGame struct {
	roomID        string
	questionIndex int
	questionStart time.Time
	timer         *time.Timer
	states        map[string]*playerQuestionState
	history       map[string][]playerQuestionState
	hints         *HintTracker
	advancing     bool
}

// GameService drives the per-room game state machine: question dispatch,
// answer collection, deadline timers, scoring and the final leaderboard.
// Every mutation of a room's game state happens under that room's lock.
type GameService struct {
	rooms     *RoomService
	notifier  Notifier
	questions QuestionSource

	mu    sync.Mutex
	games map[string]*activeGame // room id → active game

	// Inter-phase delays, shortened in tests.
	startDelay   time.Duration
	advanceDelay time.Duration
	finishDelay  time.Duration
}

func NewGameService(rooms *RoomService, notifier Notifier, questions QuestionSource) *GameService {
	return &GameService{
		rooms:        rooms,
		notifier:     notifier,
		questions:    questions,
		games:        make(map[string]*activeGame),
		startDelay:   500 * time.Millisecond,
		advanceDelay: 2 * time.Second,
		finishDelay:  2 * time.Second,
	}
}

func (gs *GameService) game(roomID string) *activeGame {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.games[roomID]
}

func (gs *GameService) setGame(roomID string, game *activeGame) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.games[roomID] = game
}

func (gs *GameService) removeGame(roomID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	delete(gs.games, roomID)
}

// StartGame starts a game in the caller's room. Host only; needs at least
// two players and a non-empty question list. Starting from a finished room
// re-draws questions first, with the room unlocked around the (possibly
// slow) draw.
func (gs *GameService) StartGame(connID string) error {
	room := gs.rooms.RoomByConnection(connID)
	if room == nil {
		return ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	if room.HostID != connID {
		return ErrNotHost
	}

	if room.Status == models.StatusFinished {
		settings := room.Settings
		room.Unlock()
		questions := gs.questions.GetQuestions(settings.QuestionCount, settings.Language, settings.UseAI)
		room.Lock()
		if room.Status != models.StatusFinished || room.HostID != connID {
			return ErrCannotStart
		}
		room.Questions = questions
		room.CurrentQuestionIndex = 0
		room.Status = models.StatusLobby
	}

	if !room.CanStart() {
		return ErrCannotStart
	}

	for _, player := range room.Players {
		player.Score = 0
	}

	game := &activeGame{
		roomID:  room.ID,
		states:  make(map[string]*playerQuestionState),
		history: make(map[string][]playerQuestionState),
		hints:   NewHintTracker(),
	}
	for _, player := range room.Players {
		game.history[player.ID] = []playerQuestionState{}
	}
	gs.setGame(room.ID, game)

	room.Status = models.StatusPlaying
	room.CurrentQuestionIndex = 0

	log.Printf("Game started in room %s with %d players, %d questions", room.Code, len(room.Players), len(room.Questions))
	gs.notifier.ToRoom(room.ID, models.NewEvent(models.EventGameStarted, room.ID, nil))

	roomID := room.ID
	time.AfterFunc(gs.startDelay, func() { gs.sendQuestion(roomID, 0) })
	return nil
}

// sendQuestion arms the question phase for index: fresh per-player states,
// a start timestamp and the deadline timer. The index check makes stale
// wake-ups (a timer or delay armed for an earlier cycle) inert.
func (gs *GameService) sendQuestion(roomID string, index int) {
	room := gs.rooms.RoomByID(roomID)
	if room == nil {
		gs.removeGame(roomID)
		return
	}

	room.Lock()
	defer room.Unlock()

	game := gs.game(roomID)
	if game == nil || game.questionIndex != index {
		return
	}
	if room.Status != models.StatusPlaying || index >= len(room.Questions) {
		return
	}

	question := room.Questions[index]

	game.states = make(map[string]*playerQuestionState)
	for _, player := range room.Players {
		game.states[player.ID] = &playerQuestionState{}
	}
	game.advancing = false
	game.questionStart = time.Now()

	gs.notifier.ToRoom(roomID, models.NewEvent(models.EventQuestion, roomID, models.QuestionPayload{
		Question: question.Public(),
		Index:    index,
	}))

	if game.timer != nil {
		game.timer.Stop()
	}
	deadline := time.Duration(room.Settings.TimePerQuestion) * time.Second
	game.timer = time.AfterFunc(deadline, func() { gs.handleTimeUp(roomID, index) })
}

// SubmitAnswer records a player's answer for the current question. At most
// one answer per player per question counts; later submissions, including
// any that lose the race with the deadline handler, are silent no-ops.
func (gs *GameService) SubmitAnswer(connID string, answer bool) {
	room := gs.rooms.RoomByConnection(connID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusPlaying {
		return
	}
	game := gs.game(room.ID)
	if game == nil || game.questionIndex >= len(room.Questions) {
		return
	}
	state, ok := game.states[connID]
	if !ok || state.answered {
		return
	}

	question := room.Questions[game.questionIndex]
	elapsed := time.Since(game.questionStart)
	correct := answer == question.IsTrue

	score := 0
	if correct {
		deadline := time.Duration(room.Settings.TimePerQuestion) * time.Second
		score = computeScore(elapsed, deadline, game.hints.ScoreMultiplier(connID, question.ID))
	}

	submitted := answer
	state.answered = true
	state.answer = &submitted
	state.correct = correct
	state.timeMs = elapsed.Milliseconds()
	state.scoreAwarded = score

	if player := room.GetPlayer(connID); player != nil {
		player.Score += score
	}
	game.history[connID] = append(game.history[connID], *state)

	gs.notifier.ToPlayer(connID, models.NewEvent(models.EventResult, room.ID, models.ResultPayload{
		Correct:       correct,
		CorrectAnswer: question.IsTrue,
		ScoreAwarded:  score,
	}))

	if gs.allAnswered(game, room) {
		gs.advance(room, game)
	}
}

// computeScore: a correct answer is worth 1000, scaled down linearly to 500
// at the deadline, then multiplied by the hint penalty.
func computeScore(elapsed, deadline time.Duration, hintMultiplier float64) int {
	timeRatio := 1.0
	if deadline > 0 {
		timeRatio = float64(elapsed) / float64(deadline)
		if timeRatio > 1 {
			timeRatio = 1
		}
	}
	speedMultiplier := 1 - 0.5*timeRatio
	return int(math.Round(1000 * speedMultiplier * hintMultiplier))
}

// handleTimeUp fires at the question deadline: every unanswered player is
// scored zero and receives the same private result as everyone else, then
// the phase advances.
func (gs *GameService) handleTimeUp(roomID string, index int) {
	room := gs.rooms.RoomByID(roomID)
	if room == nil {
		gs.removeGame(roomID)
		return
	}

	room.Lock()
	defer room.Unlock()

	game := gs.game(roomID)
	if game == nil || game.questionIndex != index || game.advancing {
		return
	}
	if room.Status != models.StatusPlaying {
		return
	}

	gs.notifier.ToRoom(roomID, models.NewEvent(models.EventTimeUp, roomID, nil))

	question := room.Questions[index]
	deadlineMs := int64(room.Settings.TimePerQuestion) * 1000

	for _, player := range room.Players {
		state, ok := game.states[player.ID]
		if !ok || state.answered {
			continue
		}
		state.answered = true
		state.correct = false
		state.timeMs = deadlineMs
		game.history[player.ID] = append(game.history[player.ID], *state)

		gs.notifier.ToPlayer(player.ID, models.NewEvent(models.EventResult, roomID, models.ResultPayload{
			Correct:       false,
			CorrectAnswer: question.IsTrue,
			ScoreAwarded:  0,
		}))
	}

	gs.advance(room, game)
}

// advance moves past the current question exactly once per cycle, whether
// triggered by the last answer or the deadline. Caller holds the room lock.
func (gs *GameService) advance(room *models.Room, game *activeGame) {
	if game.advancing {
		return
	}
	game.advancing = true

	if game.timer != nil {
		game.timer.Stop()
		game.timer = nil
	}

	players := make([]*models.Player, len(room.Players))
	copy(players, room.Players)
	gs.notifier.ToRoom(room.ID, models.NewEvent(models.EventScores, room.ID, models.ScoresPayload{Players: players}))

	game.questionIndex++
	room.CurrentQuestionIndex = game.questionIndex

	roomID := room.ID
	if game.questionIndex >= len(room.Questions) {
		time.AfterFunc(gs.finishDelay, func() { gs.finishGame(roomID) })
	} else {
		next := game.questionIndex
		time.AfterFunc(gs.advanceDelay, func() { gs.sendQuestion(roomID, next) })
	}
}

func (gs *GameService) finishGame(roomID string) {
	room := gs.rooms.RoomByID(roomID)
	if room == nil {
		gs.removeGame(roomID)
		return
	}

	room.Lock()
	defer room.Unlock()
	gs.finishLocked(room)
}

// finishLocked computes and broadcasts the leaderboard and discards the
// active game. Caller holds the room lock.
func (gs *GameService) finishLocked(room *models.Room) {
	game := gs.game(room.ID)
	if game == nil {
		return
	}
	if game.timer != nil {
		game.timer.Stop()
		game.timer = nil
	}

	room.Status = models.StatusFinished

	sorted := make([]*models.Player, len(room.Players))
	copy(sorted, room.Players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	leaderboard := make([]models.LeaderboardEntry, 0, len(sorted))
	for i, player := range sorted {
		var correctAnswers, timedEntries int
		var totalTimeMs int64
		for _, h := range game.history[player.ID] {
			if h.correct {
				correctAnswers++
			}
			if h.answer != nil && h.correct {
				totalTimeMs += h.timeMs
				timedEntries++
			}
		}
		averageTimeMs := 0.0
		if timedEntries > 0 {
			averageTimeMs = float64(totalTimeMs) / float64(timedEntries)
		}
		leaderboard = append(leaderboard, models.LeaderboardEntry{
			Player:         player,
			Rank:           i + 1,
			CorrectAnswers: correctAnswers,
			TotalQuestions: len(room.Questions),
			AverageTimeMs:  averageTimeMs,
		})
	}

	gs.notifier.ToRoom(room.ID, models.NewEvent(models.EventGameFinished, room.ID, models.FinishedPayload{Leaderboard: leaderboard}))
	gs.removeGame(room.ID)

	log.Printf("Game finished in room %s", room.Code)
}

// HandleDisconnect records a mid-game leaver as forced-incorrect for the
// current question and removes them from the active set. With one or zero
// contestants left the game finishes immediately; otherwise the leaver may
// have been the last holdout, so the advance condition is re-checked.
// Call before RoomService.LeaveRoom so the room membership is still intact.
func (gs *GameService) HandleDisconnect(connID string) {
	room := gs.rooms.RoomByConnection(connID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusPlaying {
		return
	}
	game := gs.game(room.ID)
	if game == nil {
		return
	}

	if state, ok := game.states[connID]; ok && !state.answered {
		state.answered = true
		state.correct = false
		state.timeMs = int64(room.Settings.TimePerQuestion) * 1000
		game.history[connID] = append(game.history[connID], *state)
	}
	delete(game.states, connID)

	// Room membership is the contestant count. game.states is empty until
	// the first question is armed, so it cannot be used here.
	remaining := len(room.Players) - 1
	if remaining <= 1 {
		log.Printf("Room %s down to %d contestant(s), finishing early", room.Code, remaining)
		gs.finishLocked(room)
		return
	}

	if gs.allAnswered(game, room) {
		gs.advance(room, game)
	}
}

// RequestHint reveals the next hint level for the caller's current question
// and returns the resulting score multiplier. Returns false when hints are
// disabled, exhausted, or the caller has no open question.
func (gs *GameService) RequestHint(connID string) (models.Hint, float64, bool) {
	room := gs.rooms.RoomByConnection(connID)
	if room == nil {
		return models.Hint{}, 0, false
	}

	room.Lock()
	defer room.Unlock()

	if room.Status != models.StatusPlaying || !room.Settings.HintsEnabled {
		return models.Hint{}, 0, false
	}
	game := gs.game(room.ID)
	if game == nil || game.advancing || game.questionIndex >= len(room.Questions) {
		return models.Hint{}, 0, false
	}
	state, ok := game.states[connID]
	if !ok || state.answered {
		return models.Hint{}, 0, false
	}

	question := room.Questions[game.questionIndex]
	level, ok := game.hints.NextLevel(connID, question.ID)
	if !ok {
		return models.Hint{}, 0, false
	}

	hints := GenerateHints(question)
	if level > len(hints) {
		return models.Hint{}, 0, false
	}

	game.hints.RecordHint(connID, question.ID, level)
	multiplier := game.hints.ScoreMultiplier(connID, question.ID)
	return hints[level-1], multiplier, true
}

// allAnswered reports whether every present player has an answered state.
// Players with no state (joined later, disconnected) don't count, and an
// empty active set never advances.
func (gs *GameService) allAnswered(game *activeGame, room *models.Room) bool {
	answered := 0
	for _, player := range room.Players {
		state, ok := game.states[player.ID]
		if !ok {
			continue
		}
		if !state.answered {
			return false
		}
		answered++
	}
	return answered > 0
}

package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"facit-game/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	questions []models.Question
}

func (s stubSource) GetQuestions(count int, language models.Language, useAI bool) []models.Question {
	if count > len(s.questions) {
		count = len(s.questions)
	}
	out := make([]models.Question, count)
	copy(out, s.questions[:count])
	return out
}

type capturedEvent struct {
	target string // player id, or "" for a room broadcast
	roomID string
	event  models.GameEvent
}

type captureNotifier struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (n *captureNotifier) ToPlayer(playerID string, event models.GameEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, capturedEvent{target: playerID, event: event})
}

func (n *captureNotifier) ToRoom(roomID string, event models.GameEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, capturedEvent{roomID: roomID, event: event})
}

func (n *captureNotifier) count(eventType string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, e := range n.events {
		if e.event.Type == eventType {
			count++
		}
	}
	return count
}

func (n *captureNotifier) roomEvents(eventType string) []models.GameEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.GameEvent
	for _, e := range n.events {
		if e.target == "" && e.event.Type == eventType {
			out = append(out, e.event)
		}
	}
	return out
}

func (n *captureNotifier) playerEvents(playerID, eventType string) []models.GameEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.GameEvent
	for _, e := range n.events {
		if e.target == playerID && e.event.Type == eventType {
			out = append(out, e.event)
		}
	}
	return out
}

func (n *captureNotifier) waitCount(t *testing.T, eventType string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return n.count(eventType) >= want
	}, 3*time.Second, 5*time.Millisecond, "waiting for %d %s event(s)", want, eventType)
}

func testQuestion(id string, isTrue bool) models.Question {
	return models.Question{
		ID:        id,
		Statement: "statement " + id,
		IsTrue:    isTrue,
		Category:  "Testing",
		Source:    "unit test",
	}
}

func newTestGame(t *testing.T, questions []models.Question, timePerQuestion, playerCount int) (*GameService, *RoomService, *captureNotifier, *models.Room) {
	t.Helper()

	settings := models.GameSettings{
		QuestionCount:   len(questions),
		TimePerQuestion: timePerQuestion,
		HintsEnabled:    true,
		Language:        models.LanguageEnglish,
	}
	source := stubSource{questions: questions}
	rooms := NewRoomService(source, settings)

	room, err := rooms.CreateRoom("conn-0", "Player0", "")
	require.NoError(t, err)
	for i := 1; i < playerCount; i++ {
		_, _, err := rooms.JoinRoom(fmt.Sprintf("conn-%d", i), room.Code, fmt.Sprintf("Player%d", i))
		require.NoError(t, err)
	}

	notifier := &captureNotifier{}
	gs := NewGameService(rooms, notifier, source)
	gs.startDelay = 10 * time.Millisecond
	gs.advanceDelay = 10 * time.Millisecond
	gs.finishDelay = 10 * time.Millisecond

	return gs, rooms, notifier, room
}

func TestStartGameRequiresTwoPlayers(t *testing.T) {
	gs, _, notifier, room := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 1)

	err := gs.StartGame("conn-0")
	assert.ErrorIs(t, err, ErrCannotStart)
	assert.Equal(t, models.StatusLobby, room.Status)
	assert.Zero(t, notifier.count(models.EventGameStarted))
}

func TestStartGameHostOnly(t *testing.T) {
	gs, _, _, _ := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 2)

	err := gs.StartGame("conn-1")
	assert.ErrorIs(t, err, ErrNotHost)

	err = gs.StartGame("nobody")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestStartGameRejectsEmptyQuestionList(t *testing.T) {
	gs, _, _, _ := newTestGame(t, nil, 5, 2)

	err := gs.StartGame("conn-0")
	assert.ErrorIs(t, err, ErrCannotStart)
}

func TestFullGameAllAnswered(t *testing.T) {
	questions := []models.Question{testQuestion("q1", true), testQuestion("q2", false)}
	gs, _, notifier, room := newTestGame(t, questions, 5, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	// Question 1: Player0 correct, Player1 wrong.
	gs.SubmitAnswer("conn-0", true)
	gs.SubmitAnswer("conn-1", false)
	notifier.waitCount(t, models.EventQuestion, 2)

	// Question 2: same again.
	gs.SubmitAnswer("conn-0", false)
	gs.SubmitAnswer("conn-1", true)
	notifier.waitCount(t, models.EventGameFinished, 1)

	assert.Equal(t, models.StatusFinished, room.Status)
	assert.Equal(t, 2, notifier.count(models.EventScores))

	results := notifier.playerEvents("conn-0", models.EventResult)
	require.Len(t, results, 2)
	for _, ev := range results {
		payload := ev.Data.(models.ResultPayload)
		assert.True(t, payload.Correct)
		assert.Greater(t, payload.ScoreAwarded, 0)
	}

	results = notifier.playerEvents("conn-1", models.EventResult)
	require.Len(t, results, 2)
	for _, ev := range results {
		payload := ev.Data.(models.ResultPayload)
		assert.False(t, payload.Correct)
		assert.Zero(t, payload.ScoreAwarded)
	}

	finished := notifier.roomEvents(models.EventGameFinished)
	require.Len(t, finished, 1)
	leaderboard := finished[0].Data.(models.FinishedPayload).Leaderboard
	require.Len(t, leaderboard, 2)
	assert.Equal(t, "conn-0", leaderboard[0].Player.ID)
	assert.Equal(t, 1, leaderboard[0].Rank)
	assert.Equal(t, 2, leaderboard[0].CorrectAnswers)
	assert.Equal(t, 2, leaderboard[0].TotalQuestions)
	assert.Equal(t, "conn-1", leaderboard[1].Player.ID)
	assert.Equal(t, 2, leaderboard[1].Rank)
	assert.Zero(t, leaderboard[1].CorrectAnswers)
	assert.Zero(t, leaderboard[1].AverageTimeMs)
}

func TestQuestionEventOmitsGroundTruth(t *testing.T) {
	gs, _, notifier, _ := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	events := notifier.roomEvents(models.EventQuestion)
	require.Len(t, events, 1)

	payload := events[0].Data.(models.QuestionPayload)
	assert.Equal(t, 0, payload.Index)
	assert.Equal(t, "q1", payload.Question.ID)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "is_true")
	assert.NotContains(t, string(raw), "isTrue")
}

func TestDoubleAnswerIgnored(t *testing.T) {
	gs, rooms, notifier, room := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	gs.SubmitAnswer("conn-0", true)
	gs.SubmitAnswer("conn-0", false) // second answer: no effect

	require.Len(t, notifier.playerEvents("conn-0", models.EventResult), 1)

	room = rooms.RoomByID(room.ID)
	room.Lock()
	score := room.GetPlayer("conn-0").Score
	room.Unlock()
	assert.Greater(t, score, 0, "first answer scored")

	payload := notifier.playerEvents("conn-0", models.EventResult)[0].Data.(models.ResultPayload)
	assert.True(t, payload.Correct)
	assert.Equal(t, payload.ScoreAwarded, score)
}

func TestDeadlineScoresUnanswered(t *testing.T) {
	gs, _, notifier, room := newTestGame(t, []models.Question{testQuestion("q1", true)}, 1, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	gs.SubmitAnswer("conn-0", true)
	// Player1 never answers; the deadline fires after 1s.
	notifier.waitCount(t, models.EventTimeUp, 1)
	notifier.waitCount(t, models.EventGameFinished, 1)

	results := notifier.playerEvents("conn-1", models.EventResult)
	require.Len(t, results, 1)
	payload := results[0].Data.(models.ResultPayload)
	assert.False(t, payload.Correct)
	assert.True(t, payload.CorrectAnswer)
	assert.Zero(t, payload.ScoreAwarded)

	assert.Equal(t, models.StatusFinished, room.Status)

	leaderboard := notifier.roomEvents(models.EventGameFinished)[0].Data.(models.FinishedPayload).Leaderboard
	require.Len(t, leaderboard, 2)
	assert.Equal(t, "conn-0", leaderboard[0].Player.ID)
	assert.Equal(t, 1, leaderboard[0].Rank)
	assert.Equal(t, "conn-1", leaderboard[1].Player.ID)
	assert.Equal(t, 2, leaderboard[1].Rank)
}

func TestAdvanceFiresExactlyOnce(t *testing.T) {
	gs, _, notifier, _ := newTestGame(t, []models.Question{testQuestion("q1", true)}, 1, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	// All answer immediately; the 1s deadline timer is still pending and
	// must not advance a second time.
	gs.SubmitAnswer("conn-0", true)
	gs.SubmitAnswer("conn-1", true)
	notifier.waitCount(t, models.EventGameFinished, 1)

	time.Sleep(1200 * time.Millisecond) // let any stale timer fire

	assert.Equal(t, 1, notifier.count(models.EventScores))
	assert.Equal(t, 1, notifier.count(models.EventGameFinished))
	assert.Zero(t, notifier.count(models.EventTimeUp))
}

func TestDisconnectForcesFinish(t *testing.T) {
	gs, rooms, notifier, room := newTestGame(t, []models.Question{testQuestion("q1", true)}, 30, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	// One of two players disconnects mid-question: the game cannot
	// continue and must finish without waiting 30s for the deadline.
	gs.HandleDisconnect("conn-1")
	rooms.LeaveRoom("conn-1")

	notifier.waitCount(t, models.EventGameFinished, 1)
	assert.Equal(t, models.StatusFinished, room.Status)
}

func TestDisconnectDuringStartGraceKeepsPlaying(t *testing.T) {
	gs, rooms, notifier, room := newTestGame(t, []models.Question{testQuestion("q1", true)}, 30, 3)
	gs.startDelay = 150 * time.Millisecond

	require.NoError(t, gs.StartGame("conn-0"))

	// One of three players leaves before the first question is armed. Two
	// contestants remain, so the game must go on.
	gs.HandleDisconnect("conn-2")
	rooms.LeaveRoom("conn-2")

	notifier.waitCount(t, models.EventQuestion, 1)
	assert.Equal(t, models.StatusPlaying, room.Status)
	assert.Zero(t, notifier.count(models.EventGameFinished))

	gs.SubmitAnswer("conn-0", true)
	gs.SubmitAnswer("conn-1", true)
	notifier.waitCount(t, models.EventGameFinished, 1)
}

func TestDisconnectOfLastHoldoutAdvances(t *testing.T) {
	gs, rooms, notifier, _ := newTestGame(t, []models.Question{testQuestion("q1", true)}, 30, 3)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	gs.SubmitAnswer("conn-0", true)
	gs.SubmitAnswer("conn-1", true)

	// The only player still thinking leaves; that itself completes the
	// question.
	gs.HandleDisconnect("conn-2")
	rooms.LeaveRoom("conn-2")

	notifier.waitCount(t, models.EventScores, 1)
	notifier.waitCount(t, models.EventGameFinished, 1)
}

func TestHintsReduceScore(t *testing.T) {
	question := testQuestion("q1", true)
	question.Hints = []string{"first", "second", "third"}
	gs, _, notifier, _ := newTestGame(t, []models.Question{question}, 5, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	hint, multiplier, ok := gs.RequestHint("conn-0")
	require.True(t, ok)
	assert.Equal(t, 1, hint.Level)
	assert.Equal(t, "first", hint.Text)
	assert.Equal(t, 0.75, multiplier)

	_, multiplier, ok = gs.RequestHint("conn-0")
	require.True(t, ok)
	assert.Equal(t, 0.5, multiplier)

	hint, multiplier, ok = gs.RequestHint("conn-0")
	require.True(t, ok)
	assert.Equal(t, 3, hint.Level)
	assert.Equal(t, 0.25, multiplier)

	_, _, ok = gs.RequestHint("conn-0")
	assert.False(t, ok, "hints exhausted")

	gs.SubmitAnswer("conn-0", true)
	payload := notifier.playerEvents("conn-0", models.EventResult)[0].Data.(models.ResultPayload)
	assert.True(t, payload.Correct)
	assert.InDelta(t, 250, payload.ScoreAwarded, 10, "level-3 hint leaves 25%% of the score")

	// The other player used no hints and keeps the full multiplier.
	gs.SubmitAnswer("conn-1", true)
	payload = notifier.playerEvents("conn-1", models.EventResult)[0].Data.(models.ResultPayload)
	assert.InDelta(t, 1000, payload.ScoreAwarded, 25)
}

func TestHintDeniedWhenDisabled(t *testing.T) {
	gs, _, notifier, room := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 2)

	room.Lock()
	room.Settings.HintsEnabled = false
	room.Unlock()

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	_, _, ok := gs.RequestHint("conn-0")
	assert.False(t, ok)
}

func TestHintDeniedWithoutActiveQuestion(t *testing.T) {
	gs, _, _, _ := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 2)

	// Not playing yet.
	_, _, ok := gs.RequestHint("conn-0")
	assert.False(t, ok)
}

func TestHintDeniedAfterAnswering(t *testing.T) {
	gs, _, notifier, _ := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)

	gs.SubmitAnswer("conn-0", true)
	_, _, ok := gs.RequestHint("conn-0")
	assert.False(t, ok)
}

func TestRestartFromFinished(t *testing.T) {
	gs, rooms, notifier, room := newTestGame(t, []models.Question{testQuestion("q1", true)}, 5, 2)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)
	gs.SubmitAnswer("conn-0", true)
	gs.SubmitAnswer("conn-1", false)
	notifier.waitCount(t, models.EventGameFinished, 1)

	require.Equal(t, models.StatusFinished, room.Status)

	// Host starts a fresh game: questions are re-drawn, scores reset.
	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventGameStarted, 2)
	notifier.waitCount(t, models.EventQuestion, 2)

	assert.Equal(t, models.StatusPlaying, room.Status)

	room = rooms.RoomByID(room.ID)
	room.Lock()
	defer room.Unlock()
	assert.Equal(t, 0, room.CurrentQuestionIndex)
}

func TestReducedQuestionCountTakesEffect(t *testing.T) {
	questions := []models.Question{testQuestion("q1", true), testQuestion("q2", false), testQuestion("q3", true)}
	gs, rooms, notifier, room := newTestGame(t, questions, 5, 2)

	settings := room.Settings
	settings.QuestionCount = 1
	_, err := rooms.UpdateSettings("conn-0", settings)
	require.NoError(t, err)

	require.NoError(t, gs.StartGame("conn-0"))
	notifier.waitCount(t, models.EventQuestion, 1)
	gs.SubmitAnswer("conn-0", true)
	gs.SubmitAnswer("conn-1", true)

	notifier.waitCount(t, models.EventGameFinished, 1)
	leaderboard := notifier.roomEvents(models.EventGameFinished)[0].Data.(models.FinishedPayload).Leaderboard
	assert.Equal(t, 1, leaderboard[0].TotalQuestions)
	assert.Equal(t, 1, notifier.count(models.EventQuestion), "the game ends after the configured count")
}

func TestComputeScore(t *testing.T) {
	deadline := 5 * time.Second

	assert.Equal(t, 1000, computeScore(0, deadline, 1.0))
	assert.Equal(t, 750, computeScore(2500*time.Millisecond, deadline, 1.0))
	assert.Equal(t, 500, computeScore(deadline, deadline, 1.0))
	assert.Equal(t, 500, computeScore(10*time.Second, deadline, 1.0), "elapsed past the deadline is capped")
	assert.Equal(t, 250, computeScore(0, deadline, 0.25))
	assert.Equal(t, 500, computeScore(0, 0, 1.0), "a zero deadline never produces garbage")
	assert.Equal(t, 125, computeScore(deadline, deadline, 0.25))
	assert.Equal(t, 375, computeScore(deadline, deadline, 0.75))
}

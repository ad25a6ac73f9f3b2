package services

import (
	"fmt"
	"sync"

	"facit-game/internal/models"
)

// GenerateHints returns the progressive hints for a question, least to most
// revealing. Pre-authored hints win; otherwise three are synthesized from the
// question's category, source and ground truth.
func GenerateHints(q models.Question) []models.Hint {
	if len(q.Hints) > 0 {
		n := len(q.Hints)
		if n > models.MaxHints {
			n = models.MaxHints
		}
		hints := make([]models.Hint, 0, n)
		for i := 0; i < n; i++ {
			hints = append(hints, models.Hint{Level: i + 1, Text: q.Hints[i]})
		}
		return hints
	}

	hints := make([]models.Hint, 0, models.MaxHints)

	if q.Category != "" {
		hints = append(hints, models.Hint{Level: 1, Text: fmt.Sprintf("This statement is about: %s", q.Category)})
	} else {
		hints = append(hints, models.Hint{Level: 1, Text: "Think carefully: does the wording seem absolute or nuanced?"})
	}

	if q.Source != "" {
		hints = append(hints, models.Hint{Level: 2, Text: fmt.Sprintf("Source: %s", q.Source)})
	} else {
		hints = append(hints, models.Hint{Level: 2, Text: "Look for key words that might make the statement extreme or unlikely."})
	}

	if q.IsTrue {
		hints = append(hints, models.Hint{Level: 3, Text: "This one is more likely than you think."})
	} else {
		hints = append(hints, models.Hint{Level: 3, Text: "This one sounds plausible, but is it really?"})
	}

	return hints
}

// HintTracker records the highest hint level each player has used per
// question and derives the resulting score multiplier. One tracker lives for
// the duration of one game.
type HintTracker struct {
	mu    sync.Mutex
	usage map[string]map[string]int // player id → question id → highest level used
}

func NewHintTracker() *HintTracker {
	return &HintTracker{usage: make(map[string]map[string]int)}
}

// RecordHint raises the stored highest level for the pair. Recording a level
// at or below the stored one is a no-op, which guards against out-of-order
// delivery. Returns the stored level.
func (t *HintTracker) RecordHint(playerID, questionID string, level int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	perPlayer, ok := t.usage[playerID]
	if !ok {
		perPlayer = make(map[string]int)
		t.usage[playerID] = perPlayer
	}
	if level > perPlayer[questionID] {
		perPlayer[questionID] = level
	}
	return perPlayer[questionID]
}

// NextLevel returns the next hint level the player may request for the
// question, or false if all hints are used.
func (t *HintTracker) NextLevel(playerID, questionID string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.usage[playerID][questionID] + 1
	if next > models.MaxHints {
		return 0, false
	}
	return next, true
}

// ScoreMultiplier returns 1.0 if the player used no hints on the question,
// otherwise the multiplier for the highest level used.
func (t *HintTracker) ScoreMultiplier(playerID, questionID string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	level, ok := t.usage[playerID][questionID]
	if !ok {
		return 1.0
	}
	return models.HintScoreMultipliers[level]
}

// Reset clears all usage. Called once per game start.
func (t *HintTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage = make(map[string]map[string]int)
}

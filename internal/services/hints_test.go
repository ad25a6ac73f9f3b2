package services

import (
	"testing"

	"facit-game/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintTrackerLevelProgression(t *testing.T) {
	tracker := NewHintTracker()

	level, ok := tracker.NextLevel("p1", "q1")
	require.True(t, ok)
	assert.Equal(t, 1, level)
	tracker.RecordHint("p1", "q1", level)

	level, ok = tracker.NextLevel("p1", "q1")
	require.True(t, ok)
	assert.Equal(t, 2, level)
	tracker.RecordHint("p1", "q1", level)

	level, ok = tracker.NextLevel("p1", "q1")
	require.True(t, ok)
	assert.Equal(t, 3, level)
	tracker.RecordHint("p1", "q1", level)

	_, ok = tracker.NextLevel("p1", "q1")
	assert.False(t, ok, "only three hints per question")

	// Other players and questions are unaffected.
	level, ok = tracker.NextLevel("p2", "q1")
	require.True(t, ok)
	assert.Equal(t, 1, level)
	level, ok = tracker.NextLevel("p1", "q2")
	require.True(t, ok)
	assert.Equal(t, 1, level)
}

func TestHintTrackerRecordKeepsHighestLevel(t *testing.T) {
	tracker := NewHintTracker()

	assert.Equal(t, 2, tracker.RecordHint("p1", "q1", 2))
	assert.Equal(t, 2, tracker.RecordHint("p1", "q1", 1), "lower level does not regress")
	assert.Equal(t, 3, tracker.RecordHint("p1", "q1", 3))
}

func TestHintTrackerScoreMultiplier(t *testing.T) {
	tracker := NewHintTracker()

	assert.Equal(t, 1.0, tracker.ScoreMultiplier("p1", "q1"), "no hints used")

	tracker.RecordHint("p1", "q1", 1)
	assert.Equal(t, 0.75, tracker.ScoreMultiplier("p1", "q1"))

	tracker.RecordHint("p1", "q1", 2)
	assert.Equal(t, 0.5, tracker.ScoreMultiplier("p1", "q1"))

	tracker.RecordHint("p1", "q1", 3)
	assert.Equal(t, 0.25, tracker.ScoreMultiplier("p1", "q1"))
}

func TestHintTrackerReset(t *testing.T) {
	tracker := NewHintTracker()
	tracker.RecordHint("p1", "q1", 3)

	tracker.Reset()

	assert.Equal(t, 1.0, tracker.ScoreMultiplier("p1", "q1"))
	level, ok := tracker.NextLevel("p1", "q1")
	require.True(t, ok)
	assert.Equal(t, 1, level)
}

func TestGenerateHintsPreAuthored(t *testing.T) {
	q := models.Question{
		ID:        "q1",
		Statement: "s",
		Hints:     []string{"a", "b", "c", "d"},
	}

	hints := GenerateHints(q)
	require.Len(t, hints, models.MaxHints, "extra authored hints are dropped")
	assert.Equal(t, models.Hint{Level: 1, Text: "a"}, hints[0])
	assert.Equal(t, models.Hint{Level: 2, Text: "b"}, hints[1])
	assert.Equal(t, models.Hint{Level: 3, Text: "c"}, hints[2])
}

func TestGenerateHintsSynthesized(t *testing.T) {
	q := models.Question{
		ID:        "q1",
		Statement: "s",
		IsTrue:    true,
		Category:  "History",
		Source:    "Encyclopedia",
	}

	hints := GenerateHints(q)
	require.Len(t, hints, models.MaxHints)
	assert.Contains(t, hints[0].Text, "History")
	assert.Contains(t, hints[1].Text, "Encyclopedia")
	assert.NotEmpty(t, hints[2].Text)

	// Level 3 differs by ground truth but never states it outright.
	qFalse := q
	qFalse.IsTrue = false
	assert.NotEqual(t, hints[2].Text, GenerateHints(qFalse)[2].Text)
}

func TestGenerateHintsWithoutMetadata(t *testing.T) {
	hints := GenerateHints(models.Question{ID: "q1", Statement: "s"})
	require.Len(t, hints, models.MaxHints)
	for i, hint := range hints {
		assert.Equal(t, i+1, hint.Level)
		assert.NotEmpty(t, hint.Text)
	}
}

package services

import (
	"strings"
	"testing"

	"facit-game/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAIQuestions(t *testing.T) {
	content := `[
		{"statement": "Bananas are berries.", "isTrue": true, "category": "Botany", "source": "Britannica", "hints": ["h1", "h2", "h3", "h4"]},
		{"statement": "", "isTrue": false},
		{"statement": "Sharks are mammals.", "isTrue": false, "category": "Animals", "source": "NOAA"}
	]`

	questions, err := parseAIQuestions(content)
	require.NoError(t, err)
	require.Len(t, questions, 2, "entries without a statement are dropped")

	first := questions[0]
	assert.True(t, strings.HasPrefix(first.ID, "ai-"))
	assert.Equal(t, "Bananas are berries.", first.Statement)
	assert.True(t, first.IsTrue)
	assert.Equal(t, "Botany", first.Category)
	assert.Len(t, first.Hints, models.MaxHints, "extra hints are trimmed")

	second := questions[1]
	assert.False(t, second.IsTrue)
	assert.Empty(t, second.Hints)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestParseAIQuestionsRejectsNonArray(t *testing.T) {
	_, err := parseAIQuestions(`{"statement": "not an array"}`)
	assert.Error(t, err)

	_, err = parseAIQuestions("I'm sorry, I can't do that.")
	assert.Error(t, err)
}

func TestNewOpenAIGeneratorModel(t *testing.T) {
	g := NewOpenAIGenerator("key")
	assert.Equal(t, "gpt-4o-mini", g.model)
}

func TestSystemPromptLanguage(t *testing.T) {
	assert.Contains(t, systemPrompt(models.LanguageSwedish), "Swedish")
	assert.NotContains(t, systemPrompt(models.LanguageEnglish), "Swedish")
}

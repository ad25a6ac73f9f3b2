package repository

import (
	"facit-game/internal/models"
)

// QuestionRepository stores the question bank. Room state is ephemeral by
// design and never persisted; only quiz content lives here.
type QuestionRepository interface {
	ListQuestions(language models.Language) ([]models.Question, error)
}

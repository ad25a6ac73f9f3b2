package repository

import (
	"facit-game/internal/models"
)

// InMemoryRepository serves the embedded question bank. Used when no
// DATABASE_URL is configured (development mode).
type InMemoryRepository struct {
	banks map[models.Language][]models.Question
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		banks: map[models.Language][]models.Question{
			models.LanguageEnglish: SeedQuestions(models.LanguageEnglish),
			models.LanguageSwedish: SeedQuestions(models.LanguageSwedish),
		},
	}
}

func (r *InMemoryRepository) ListQuestions(language models.Language) ([]models.Question, error) {
	bank := r.banks[language]
	out := make([]models.Question, len(bank))
	copy(out, bank)
	return out, nil
}

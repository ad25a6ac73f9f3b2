package services

import (
	"context"
	"log"
	"math/rand"
	"time"

	"facit-game/internal/models"
	"facit-game/internal/repository"
)

const (
	aiLimiterKey = "ai:global"
	aiWindow     = time.Hour
	aiTimeout    = 30 * time.Second
)

// QuestionGenerator produces questions from an external text-generation API.
type QuestionGenerator interface {
	Generate(ctx context.Context, count int, language models.Language) ([]models.Question, error)
}

// QuestionService is the question source for rooms: a per-language bank
// loaded from the repository, with an optional rate-limited generative path
// that transparently falls back to the bank on any failure.
type QuestionService struct {
	banks       map[models.Language][]models.Question
	generator   QuestionGenerator
	limiter     *RateLimiter
	hourlyLimit int
}

func NewQuestionService(repo repository.QuestionRepository, generator QuestionGenerator, limiter *RateLimiter, hourlyLimit int) *QuestionService {
	banks := make(map[models.Language][]models.Question)
	for _, language := range []models.Language{models.LanguageEnglish, models.LanguageSwedish} {
		questions, err := repo.ListQuestions(language)
		if err != nil {
			log.Printf("Failed to load %s question bank, using embedded bank: %v", language, err)
			questions = repository.SeedQuestions(language)
		}
		if len(questions) == 0 {
			questions = repository.SeedQuestions(language)
		}
		banks[language] = questions
	}

	return &QuestionService{
		banks:       banks,
		generator:   generator,
		limiter:     limiter,
		hourlyLimit: hourlyLimit,
	}
}

// GetQuestions draws count questions for a language. When useAI is set and a
// generator is configured, the generative path is tried first under the
// global hourly cap; the bank covers every failure mode, so the result is
// non-empty as long as the bank is.
func (s *QuestionService) GetQuestions(count int, language models.Language, useAI bool) []models.Question {
	if useAI && s.generator != nil {
		if questions, ok := s.generateQuestions(count, language); ok {
			return questions
		}
	}
	return s.drawFromBank(count, language)
}

func (s *QuestionService) generateQuestions(count int, language models.Language) ([]models.Question, bool) {
	if !s.limiter.Allow(aiLimiterKey, s.hourlyLimit, aiWindow) {
		log.Printf("AI rate limit reached (max %d/hour), falling back to question bank", s.hourlyLimit)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	defer cancel()

	questions, err := s.generator.Generate(ctx, count, language)
	if err != nil {
		log.Printf("AI question generation failed, falling back to question bank: %v", err)
		return nil, false
	}
	if len(questions) == 0 {
		log.Printf("AI question generation returned nothing, falling back to question bank")
		return nil, false
	}
	return questions, true
}

// drawFromBank returns count distinct questions in random order. Asking for
// more than the bank holds returns the whole bank, never padding.
func (s *QuestionService) drawFromBank(count int, language models.Language) []models.Question {
	bank, ok := s.banks[language]
	if !ok || len(bank) == 0 {
		bank = s.banks[models.LanguageEnglish]
	}

	shuffled := make([]models.Question, len(bank))
	copy(shuffled, bank)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

package services

import (
	"context"
	"encoding/json"
	"fmt"

	"facit-game/internal/models"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator generates true/false questions with the OpenAI chat API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  "gpt-4o-mini",
	}
}

type rawAIQuestion struct {
	Statement string   `json:"statement"`
	IsTrue    bool     `json:"isTrue"`
	Category  string   `json:"category"`
	Source    string   `json:"source"`
	Hints     []string `json:"hints"`
}

func systemPrompt(language models.Language) string {
	langInstruction := ""
	if language == models.LanguageSwedish {
		langInstruction = "\nIMPORTANT: All statements, categories, sources, and hints MUST be written in Swedish."
	}

	return `You are a quiz question generator for a "True or False" trivia game.
Generate unique, interesting, and factually accurate true/false questions.

Rules:
- Each question must be a clear factual claim that is definitively true or false.
- Aim for a mix of roughly 50% true and 50% false statements.
- Cover diverse categories: science, history, geography, animals, culture, language, sports, technology, etc.
- False statements should be plausible misconceptions, not obviously wrong.
- Include a short source or explanation for each answer.
- Include 3 progressive hints per question, from vague to specific:
  - Hint 1: A general category clue
  - Hint 2: A narrower contextual clue
  - Hint 3: A strong clue that nearly gives away the answer
` + langInstruction + `

Respond with a JSON array of objects. Each object must have:
- "statement": the true/false claim (string)
- "isTrue": whether it is true (boolean)
- "category": topic category (string)
- "source": brief attribution or explanation (string)
- "hints": array of 3 hint strings, ordered from least to most revealing

Respond ONLY with valid JSON. No markdown, no explanation.`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, count int, language models.Language) ([]models.Question, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.9,
		MaxTokens:   4096,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(language)},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Generate %d true/false quiz questions.", count)},
		},
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty completion response")
	}

	return parseAIQuestions(resp.Choices[0].Message.Content)
}

func parseAIQuestions(content string) ([]models.Question, error) {
	var parsed []rawAIQuestion
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("completion is not a question array: %w", err)
	}

	questions := make([]models.Question, 0, len(parsed))
	for _, raw := range parsed {
		if raw.Statement == "" {
			continue
		}
		hints := raw.Hints
		if len(hints) > models.MaxHints {
			hints = hints[:models.MaxHints]
		}
		questions = append(questions, models.Question{
			ID:        "ai-" + uuid.NewString(),
			Statement: raw.Statement,
			IsTrue:    raw.IsTrue,
			Category:  raw.Category,
			Source:    raw.Source,
			Hints:     hints,
		})
	}

	return questions, nil
}

package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"facit-game/internal/models"

	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	repo := &PostgresRepository{db: db}
	if err := repo.seedIfEmpty(); err != nil {
		return nil, fmt.Errorf("failed to seed question bank: %w", err)
	}

	return repo, nil
}

func createTables(db *sql.DB) error {
	createQuestionsTable := `
	CREATE TABLE IF NOT EXISTS questions (
		id VARCHAR(64) PRIMARY KEY,
		statement TEXT NOT NULL,
		is_true BOOLEAN NOT NULL,
		category VARCHAR(255),
		source VARCHAR(255),
		language VARCHAR(8) NOT NULL DEFAULT 'en',
		hints JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createIndexes := `
	CREATE INDEX IF NOT EXISTS idx_questions_language ON questions(language);
	`

	if _, err := db.Exec(createQuestionsTable); err != nil {
		return err
	}
	if _, err := db.Exec(createIndexes); err != nil {
		return err
	}

	return nil
}

// seedIfEmpty loads the embedded bank into an empty questions table so a
// fresh database is immediately playable.
func (r *PostgresRepository) seedIfEmpty() error {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, language := range []models.Language{models.LanguageEnglish, models.LanguageSwedish} {
		for _, q := range SeedQuestions(language) {
			var hintsJSON []byte
			if len(q.Hints) > 0 {
				hintsJSON, _ = json.Marshal(q.Hints)
			}
			_, err := r.db.Exec(`
				INSERT INTO questions (id, statement, is_true, category, source, language, hints)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO NOTHING
			`, q.ID, q.Statement, q.IsTrue, q.Category, q.Source, string(language), hintsJSON)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *PostgresRepository) ListQuestions(language models.Language) ([]models.Question, error) {
	rows, err := r.db.Query(`
		SELECT id, statement, is_true, category, source, hints
		FROM questions WHERE language = $1
	`, string(language))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var category, source sql.NullString
		var hintsJSON []byte

		if err := rows.Scan(&q.ID, &q.Statement, &q.IsTrue, &category, &source, &hintsJSON); err != nil {
			return nil, err
		}
		q.Category = category.String
		q.Source = source.String
		if len(hintsJSON) > 0 {
			if err := json.Unmarshal(hintsJSON, &q.Hints); err != nil {
				q.Hints = nil
			}
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

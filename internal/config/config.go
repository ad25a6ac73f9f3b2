package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	OpenAIAPIKey  string
	AIHourlyLimit int

	// Defaults applied to newly created rooms
	QuestionCount   int
	TimePerQuestion int // seconds
	HintsEnabled    bool
	UseAI           bool
	Language        string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AIHourlyLimit:   getEnvAsInt("AI_HOURLY_LIMIT", 10),
		QuestionCount:   getEnvAsInt("QUESTION_COUNT", 10),
		TimePerQuestion: getEnvAsInt("TIME_PER_QUESTION", 15),
		HintsEnabled:    getEnvAsBool("HINTS_ENABLED", true),
		UseAI:           getEnvAsBool("USE_AI", false),
		Language:        getEnv("LANGUAGE", "sv"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

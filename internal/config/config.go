package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Session  SessionConfig
	Scoring  ScoringConfig
	Affinity AffinityConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	ParserProvider string // "ollama" or "" to disable the external parser
	ParserModel    string
	OllamaBaseURL  string
	ParserTimeout  int // milliseconds
}

type SessionConfig struct {
	Backend           string // "memory" or "redis"
	TTLMinutes        int
	NonEmptyIncrement int
	EmptyDecrement    int
}

type ScoringConfig struct {
	PreferenceWeight    float64
	BudgetWeight        float64
	CollaborativeWeight float64
	CuratedBonus        float64
	NoveltyPenalty      float64
	ResultLimit         int
}

type AffinityConfig struct {
	RebuildSchedule string // cron spec, e.g. "@every 5m"
	ShownWeight     float64
	Shrinkage       float64
}

type EventsConfig struct {
	Topic            string
	PublishTimeoutMs int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			ParserProvider: getEnv("INTENT_PARSER_PROVIDER", ""),
			ParserModel:    getEnv("INTENT_PARSER_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ParserTimeout:  getEnvAsInt("INTENT_PARSER_TIMEOUT_MS", 2000),
		},
		Session: SessionConfig{
			Backend:           getEnv("SESSION_BACKEND", "memory"),
			TTLMinutes:        getEnvAsInt("SESSION_TTL_MINUTES", 30),
			NonEmptyIncrement: getEnvAsInt("ENGAGEMENT_RESULT_INCREMENT", 5),
			EmptyDecrement:    getEnvAsInt("ENGAGEMENT_EMPTY_DECREMENT", 3),
		},
		Scoring: ScoringConfig{
			PreferenceWeight:    getEnvAsFloat("SCORING_PREFERENCE_WEIGHT", 0.5),
			BudgetWeight:        getEnvAsFloat("SCORING_BUDGET_WEIGHT", 0.2),
			CollaborativeWeight: getEnvAsFloat("SCORING_COLLABORATIVE_WEIGHT", 0.3),
			CuratedBonus:        getEnvAsFloat("SCORING_CURATED_BONUS", 0.1),
			NoveltyPenalty:      getEnvAsFloat("SCORING_NOVELTY_PENALTY", 0.15),
			ResultLimit:         getEnvAsInt("SCORING_RESULT_LIMIT", 6),
		},
		Affinity: AffinityConfig{
			RebuildSchedule: getEnv("AFFINITY_REBUILD_SCHEDULE", "@every 5m"),
			ShownWeight:     getEnvAsFloat("AFFINITY_SHOWN_WEIGHT", 0.1),
			Shrinkage:       getEnvAsFloat("AFFINITY_SHRINKAGE", 5),
		},
		Events: EventsConfig{
			Topic:            getEnv("INTERACTION_EVENTS_TOPIC", "INTERACTION_EVENTS"),
			PublishTimeoutMs: getEnvAsInt("EVENTS_PUBLISH_TIMEOUT_MS", 500),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

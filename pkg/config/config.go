package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxRetries  int
	BackoffBase time.Duration
}

type GenerationConfig struct {
	VaultBudgetChars  int
	VaultDocChars     int
	ContextTTL        time.Duration
	CompanyTTL        time.Duration
	MaxActiveLessons  int
	TargetLessons     int
	ExamplePostsLimit int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine: environment variables are used directly
	// (useful for Docker/K8s deployments).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxRetries, _ := strconv.Atoi(getEnv("OPENAI_MAX_RETRIES", "2"))
	backoffMs, _ := strconv.Atoi(getEnv("OPENAI_BACKOFF_MS", "500"))
	vaultBudget, _ := strconv.Atoi(getEnv("GEN_VAULT_BUDGET_CHARS", "12000"))
	vaultDoc, _ := strconv.Atoi(getEnv("GEN_VAULT_DOC_CHARS", "2000"))
	contextTTL, _ := strconv.Atoi(getEnv("GEN_CONTEXT_TTL_SECONDS", "60"))
	companyTTL, _ := strconv.Atoi(getEnv("GEN_COMPANY_TTL_SECONDS", "300"))
	maxLessons, _ := strconv.Atoi(getEnv("GEN_MAX_ACTIVE_LESSONS", "30"))
	targetLessons, _ := strconv.Atoi(getEnv("GEN_TARGET_LESSONS", "15"))
	exampleLimit, _ := strconv.Atoi(getEnv("GEN_EXAMPLE_POSTS", "5"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "copymill"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o"),
			MaxRetries:  maxRetries,
			BackoffBase: time.Duration(backoffMs) * time.Millisecond,
		},
		Generation: GenerationConfig{
			VaultBudgetChars:  vaultBudget,
			VaultDocChars:     vaultDoc,
			ContextTTL:        time.Duration(contextTTL) * time.Second,
			CompanyTTL:        time.Duration(companyTTL) * time.Second,
			MaxActiveLessons:  maxLessons,
			TargetLessons:     targetLessons,
			ExamplePostsLimit: exampleLimit,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

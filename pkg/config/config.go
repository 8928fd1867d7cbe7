package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	JWTSecret     string
	EncryptionKey string

	DatabaseDSN string

	IMAPHost string
	IMAPPort int
	SMTPHost string
	SMTPPort int

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	AttachmentTTL time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	attachmentTTL := 24 * time.Hour
	if ttl := os.Getenv("ATTACHMENT_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			attachmentTTL = parsed
		}
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),

		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=snowmail port=5432 sslmode=disable"),

		IMAPHost: getEnv("IMAP_HOST", "imap.gmail.com"),
		IMAPPort: getEnvInt("IMAP_PORT", 993),
		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", ""),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseBucket:     getEnv("SUPABASE_BUCKET", "user_documents"),

		AttachmentTTL: attachmentTTL,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	RedisURL string

	// Raw service-account JSON for the Cloud TTS client. When empty the
	// client falls back to Application Default Credentials.
	TTSCredentialsJSON string
	GeminiKey          string

	RateLimitPerMinute int

	AllowedOrigins []string
}

func LoadConfig() Config {
	return Config{
		Port: os.Getenv("PORT"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RedisURL: os.Getenv("REDIS_URL"),

		TTSCredentialsJSON: os.Getenv("GOOGLE_TTS_CREDENTIALS_JSON"),
		GeminiKey:          os.Getenv("GEMINI_API_KEY"),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 120),

		AllowedOrigins: []string{
			"http://localhost",
			"http://localhost:80",
			"http://localhost:3000",
		},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

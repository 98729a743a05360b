package config

import (
	"os"
	"testing"
)

func TestLoadConfig_ReadsEnvVars(t *testing.T) {
	env := map[string]string{
		"PORT":                        "9090",
		"DB_HOST":                     "localhost",
		"DB_PORT":                     "5432",
		"DB_USER":                     "user1",
		"DB_PASSWORD":                 "pass1",
		"DB_NAME":                     "db1",
		"JWT_SECRET":                  "secret",
		"REDIS_URL":                   "redis://localhost:6379",
		"GOOGLE_TTS_CREDENTIALS_JSON": `{"type":"service_account"}`,
		"GEMINI_API_KEY":              "gem-key",
	}

	for k, v := range env {
		os.Setenv(k, v)
		t.Cleanup(func(key string) func() {
			return func() { os.Unsetenv(key) }
		}(k))
	}

	cfg := LoadConfig()

	if cfg.Port != env["PORT"] {
		t.Fatalf("Port=%q want %q", cfg.Port, env["PORT"])
	}
	if cfg.DBHost != env["DB_HOST"] {
		t.Fatalf("DBHost=%q want %q", cfg.DBHost, env["DB_HOST"])
	}
	if cfg.DBPort != env["DB_PORT"] {
		t.Fatalf("DBPort=%q want %q", cfg.DBPort, env["DB_PORT"])
	}
	if cfg.DBUser != env["DB_USER"] {
		t.Fatalf("DBUser=%q want %q", cfg.DBUser, env["DB_USER"])
	}
	if cfg.DBPassword != env["DB_PASSWORD"] {
		t.Fatalf("DBPassword=%q want %q", cfg.DBPassword, env["DB_PASSWORD"])
	}
	if cfg.DBName != env["DB_NAME"] {
		t.Fatalf("DBName=%q want %q", cfg.DBName, env["DB_NAME"])
	}
	if cfg.JWTSecret != env["JWT_SECRET"] {
		t.Fatalf("JWTSecret=%q want %q", cfg.JWTSecret, env["JWT_SECRET"])
	}
	if cfg.RedisURL != env["REDIS_URL"] {
		t.Fatalf("RedisURL=%q want %q", cfg.RedisURL, env["REDIS_URL"])
	}
	if cfg.TTSCredentialsJSON != env["GOOGLE_TTS_CREDENTIALS_JSON"] {
		t.Fatalf("TTSCredentialsJSON=%q want %q", cfg.TTSCredentialsJSON, env["GOOGLE_TTS_CREDENTIALS_JSON"])
	}
	if cfg.GeminiKey != env["GEMINI_API_KEY"] {
		t.Fatalf("GeminiKey=%q want %q", cfg.GeminiKey, env["GEMINI_API_KEY"])
	}
}

func TestLoadConfig_MissingVars_ReturnEmptyStrings(t *testing.T) {
	keys := []string{
		"PORT",
		"DB_HOST",
		"DB_PORT",
		"DB_USER",
		"DB_PASSWORD",
		"DB_NAME",
		"JWT_SECRET",
		"REDIS_URL",
		"GOOGLE_TTS_CREDENTIALS_JSON",
		"GEMINI_API_KEY",
	}

	for _, k := range keys {
		os.Unsetenv(k)
	}

	cfg := LoadConfig()

	if cfg.Port != "" || cfg.DBHost != "" || cfg.DBPort != "" || cfg.DBUser != "" || cfg.DBPassword != "" ||
		cfg.DBName != "" || cfg.JWTSecret != "" || cfg.RedisURL != "" ||
		cfg.TTSCredentialsJSON != "" || cfg.GeminiKey != "" {
		t.Fatalf("expected all empty strings, got: %+v", cfg)
	}
}

func TestLoadConfig_RateLimitDefaults(t *testing.T) {
	os.Unsetenv("RATE_LIMIT_PER_MINUTE")

	cfg := LoadConfig()
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected default 120, got %d", cfg.RateLimitPerMinute)
	}

	os.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Cleanup(func() { os.Unsetenv("RATE_LIMIT_PER_MINUTE") })

	cfg = LoadConfig()
	if cfg.RateLimitPerMinute != 30 {
		t.Fatalf("expected 30, got %d", cfg.RateLimitPerMinute)
	}
}

func TestLoadConfig_RateLimitIgnoresGarbage(t *testing.T) {
	os.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Cleanup(func() { os.Unsetenv("RATE_LIMIT_PER_MINUTE") })

	cfg := LoadConfig()
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected fallback 120, got %d", cfg.RateLimitPerMinute)
	}
}

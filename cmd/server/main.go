package main

import (
	"context"
	"log"

	"eto-audiobook-api/config"
	"eto-audiobook-api/internal/cache"
	"eto-audiobook-api/internal/middlewares"
	"eto-audiobook-api/internal/monitoring"
	"eto-audiobook-api/internal/script"
	"eto-audiobook-api/internal/synthesis"
	"eto-audiobook-api/internal/tts"
	"eto-audiobook-api/internal/voices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig()
	ctx := context.Background()

	// The voice metadata store is optional; the catalog is served from the
	// provider + cache even without it.
	var db *gorm.DB
	if cfg.DBHost != "" {
		dsn := "host=" + cfg.DBHost +
			" user=" + cfg.DBUser +
			" password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName +
			" port=" + cfg.DBPort +
			" sslmode=disable"

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&voices.Voice{}); err != nil {
			logger.Fatal("failed to migrate voice metadata", zap.Error(err))
		}
	} else {
		logger.Warn("DB_HOST not set, voice seeding disabled")
	}

	var store cache.Store = cache.NewMemoryStore()
	if cfg.RedisURL != "" {
		if rs := cache.NewRedisStore(cfg.RedisURL, logger); rs.Enabled() {
			store = rs
		}
	}
	logger.Info("cache backend selected", zap.String("backend", store.Backend()))

	var googleClient tts.Synthesizer
	var voiceLister tts.VoiceLister
	if gc, err := tts.NewGoogleClient(ctx, cfg.TTSCredentialsJSON, logger); err != nil {
		logger.Warn("cloud tts client unavailable, using mock fallback", zap.Error(err))
	} else {
		googleClient = gc
		voiceLister = gc
	}

	var geminiClient tts.Synthesizer
	if cfg.GeminiKey != "" {
		if gc, err := tts.NewGeminiClient(ctx, cfg.GeminiKey, logger); err != nil {
			logger.Warn("gemini tts client unavailable", zap.Error(err))
		} else {
			geminiClient = gc
		}
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.RateLimit(store, cfg.RateLimitPerMinute))

	collector := monitoring.NewCollector()
	r.Use(collector.Middleware())

	scriptService := &script.ScriptService{}
	script.RegisterRoutes(r, scriptService)

	voiceService := &voices.VoiceService{
		DB:     db,
		Lister: voiceLister,
		Cache:  store,
		Logger: logger,
	}
	voices.RegisterRoutes(r, voiceService)

	synthesisService := &synthesis.SynthesisService{
		Google: googleClient,
		Gemini: geminiClient,
		Logger: logger,
	}
	synthesis.RegisterRoutes(r, synthesisService, scriptService, voiceService)

	monitoring.RegisterRoutes(r, collector, store)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	logger.Info("starting server", zap.String("addr", "0.0.0.0:"+port))
	log.Fatal(r.Run("0.0.0.0:" + port))
}

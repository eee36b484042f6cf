package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/lfmotta/livrocaixa/internal/api"
	"github.com/lfmotta/livrocaixa/internal/config"
	"github.com/lfmotta/livrocaixa/internal/parser"
	"github.com/lfmotta/livrocaixa/internal/store"
	"github.com/lfmotta/livrocaixa/internal/suggest"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	ctx := context.Background()

	st := store.NewMemory()
	if n, err := store.SeedDefaultCoa(ctx, st); err != nil {
		log.Fatal("seeding chart of accounts failed", zap.Error(err))
	} else if n > 0 {
		log.Info("seeded default chart of accounts", zap.Int("accounts", n))
	}
	registry := parser.DefaultRegistry()

	var classifier suggest.Classifier
	if cfg.GeminiAPIKey != "" {
		gc, err := suggest.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			// Missing classifier degrades imports to alias-only suggestions.
			log.Warn("gemini classifier unavailable", zap.Error(err))
		} else {
			classifier = gc
			log.Info("gemini classifier enabled", zap.String("model", cfg.GeminiModel))
		}
	} else {
		log.Info("GEMINI_API_KEY not set, ai suggestions disabled")
	}

	h := &api.Handler{
		Store:     st,
		Registry:  registry,
		Suggester: suggest.New(st, classifier, log),
		Log:       log,
	}

	app := fiber.New(fiber.Config{
		AppName:   "livrocaixa",
		BodyLimit: 32 << 20, // statement uploads
	})
	app.Use(recover.New())
	app.Use(cors.New())
	h.RegisterRoutes(app)

	addr := ":" + cfg.Port
	log.Info("server listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

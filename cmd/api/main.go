package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/server"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		logger.Log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	logger.Log.Println("✅ Config loaded successfully")

	// Gemini is optional: without a key every analysis is mock data
	var generator services.TextGenerator
	if cfg.HasGeminiCredential() {
		gemini, err := services.NewGeminiService(context.Background(), services.GeminiOptions{
			APIKey:          cfg.Gemini.APIKey,
			Temperature:     cfg.Gemini.Temperature,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
			QPS:             cfg.Gemini.QPS,
		})
		if err != nil {
			logger.Log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		generator = gemini
		logger.Log.WithField("models", cfg.Gemini.Models).Println("✅ Gemini AI initialized successfully")
	} else {
		logger.Log.Warn("⚠️  GEMINI_API_KEY not set, serving mock analyses")
	}

	resolver := services.NewAnalysisResolver(generator, cfg.Gemini.Models, cfg.Gemini.Timeout)

	app := server.New(server.Options{
		MaxFileSize:    cfg.Storage.MaxFileSize,
		AccessLog:      true,
		AnalyzeHandler: handlers.NewAnalyzeHandler(resolver, services.NewPDFInspector(), cfg.Storage.MaxFileSize),
		HealthHandler:  handlers.NewHealthHandler(generator != nil),
	})
	logger.Log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Log.Println("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Log.Printf("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		logger.Log.Fatalf("❌ Failed to start server: %v", err)
	}
}

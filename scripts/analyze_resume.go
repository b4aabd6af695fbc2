package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// Runs the analysis pipeline against local PDFs and prints one JSON result per
// file. Usage: go run ./scripts/analyze_resume.go resume.pdf [more.pdf ...]
func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		logger.Log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	// keep stdout for the JSON output
	logger.Log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		logger.Log.Fatal("usage: analyze_resume <file.pdf> [file.pdf ...]")
	}

	ctx := context.Background()

	var generator services.TextGenerator
	if cfg.HasGeminiCredential() {
		gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
			APIKey:          cfg.Gemini.APIKey,
			Temperature:     cfg.Gemini.Temperature,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
			QPS:             cfg.Gemini.QPS,
		})
		if err != nil {
			logger.Log.Fatalf("❌ Failed to initialize Gemini: %v", err)
		}
		generator = gemini
	}

	resolver := services.NewAnalysisResolver(generator, cfg.Gemini.Models, cfg.Gemini.Timeout)
	inspector := services.NewPDFInspector()
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	failCount := 0
	for _, path := range os.Args[1:] {
		log := logger.Log.WithField("path", path)

		f, err := os.Open(path)
		if err != nil {
			log.WithError(err).Error("❌ Failed to open file")
			failCount++
			continue
		}

		if info, err := inspector.Inspect(f); err != nil {
			log.WithError(err).Warn("⚠️  Could not inspect PDF")
		} else {
			log.WithField("pages", info.PageCount).Info("📖 PDF inspected")
		}
		f.Close()

		result := resolver.Resolve(ctx, filepath.Base(path))
		if err := encoder.Encode(result); err != nil {
			log.WithError(err).Error("❌ Failed to write result")
			failCount++
		}
	}

	if failCount > 0 {
		os.Exit(1)
	}
}

package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/logger"
)

// TextGenerator issues a single text-generation request against one model.
// An error means the model failed at the transport or API level.
type TextGenerator interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

type GeminiOptions struct {
	APIKey          string
	BaseURL         string
	APIVersion      string
	Temperature     float32
	MaxOutputTokens int32
	QPS             float64
}

type geminiService struct {
	client          *genai.Client
	temperature     float32
	maxOutputTokens int32
	limiter         *rate.Limiter
}

func NewGeminiService(ctx context.Context, opts GeminiOptions) (TextGenerator, error) {
	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = "v1"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    opts.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:          client,
		temperature:     opts.Temperature,
		maxOutputTokens: opts.MaxOutputTokens,
		limiter:         newLimiter(opts.QPS),
	}, nil
}

// newLimiter returns an unlimited limiter for qps <= 0.
func newLimiter(qps float64) *rate.Limiter {
	if qps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(qps), int(math.Max(1, math.Ceil(qps))))
}

// GenerateText implements TextGenerator. An empty text answer is not an error:
// the caller decides how to treat an unusable body.
func (g *geminiService) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxOutputTokens,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text with %s: %w", model, err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated by %s (nil response)", model)
	}

	text := resp.Text()
	logger.Log.WithFields(logrus.Fields{
		"model":   model,
		"latency": time.Since(start).String(),
		"length":  len(text),
	}).Debug("📊 Gemini response received")

	return text, nil
}

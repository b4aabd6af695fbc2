package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	aiAnalysisPrefix      = "AI Analysis: "
	aiAnalysisPlaceholder = "Generated comprehensive resume review."
	aiAnalysisMaxExcerpt  = 500
	enhancedFallbackNote  = " (Enhanced analysis based on industry standards)"
	unknownFilename       = "resume"
)

// Offsets used to derive missing sub-scores from an upstream overallScore.
// Kept separate from the mock offsets; the two sets do not match.
const (
	backfillATSOffset         = -5
	backfillKeywordsOffset    = 3
	backfillReadabilityOffset = 5
)

// AnalysisResolver turns an uploaded resume into an analysis. It always
// returns a complete result.
type AnalysisResolver interface {
	Resolve(ctx context.Context, filename string) *models.AnalysisResult
}

type analysisResolver struct {
	generator     TextGenerator
	models        []string
	timeout       time.Duration
	promptBuilder *PromptBuilder
}

// NewAnalysisResolver builds a resolver. A nil generator means no upstream
// credential is configured and every request is answered with mock data.
func NewAnalysisResolver(generator TextGenerator, modelNames []string, timeout time.Duration) AnalysisResolver {
	return &analysisResolver{
		generator:     generator,
		models:        append([]string(nil), modelNames...),
		timeout:       timeout,
		promptBuilder: NewPromptBuilder(),
	}
}

func (r *analysisResolver) Resolve(ctx context.Context, filename string) (result *models.AnalysisResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.WithField("panic", rec).Error("❌ Error in analysis resolver, returning mock data")
			result = GenerateMockAnalysis(unknownFilename)
		}
	}()

	log := logger.Log.WithField("filename", filename)

	if r.generator == nil {
		log.Info("No Gemini API key, returning enhanced mock data")
		return GenerateMockAnalysis(filename)
	}

	prompt := r.promptBuilder.BuildResumeAnalysisPrompt()

	for _, model := range r.models {
		modelLog := log.WithField("model", model)
		modelLog.Info("🤖 Trying model")

		text, err := r.generate(ctx, model, prompt)
		if err != nil {
			modelLog.WithError(err).
				WithField("timeout", errors.Is(err, context.DeadlineExceeded)).
				Warn("⚠️  Model failed, trying next")
			continue
		}

		modelLog.WithField("length", len(text)).Info("✅ Model answered")

		analysis, err := parseAnalysis(text)
		if err != nil {
			modelLog.WithError(err).Warn("⚠️  Failed to parse Gemini response, using mock data with raw excerpt")
			fallback := GenerateMockAnalysis(filename)
			fallback.AIAnalysis = aiAnalysisPrefix + excerpt(text)
			return fallback
		}

		return analysis
	}

	log.Warn("⚠️  All Gemini models failed, using enhanced mock data")
	fallback := GenerateMockAnalysis(filename)
	fallback.AIAnalysis += enhancedFallbackNote
	return fallback
}

func (r *analysisResolver) generate(ctx context.Context, model, prompt string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.generator.GenerateText(ctx, model, prompt)
}

// parseAnalysis extracts the JSON object from an upstream answer and back-fills
// it against a fresh mock result.
func parseAnalysis(text string) (*models.AnalysisResult, error) {
	jsonStr, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return validateAnalysisFields(raw), nil
}

// extractJSONObject returns the span from the first '{' to the last '}'.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// validateAnalysisFields fills falsy or missing fields from a fresh mock
// result. Falsy follows JSON truthiness: null, false, 0 and "" count as absent.
func validateAnalysisFields(raw map[string]json.RawMessage) *models.AnalysisResult {
	defaults := GenerateMockAnalysis("")

	overall, hasOverall := scoreField(raw, "overallScore")

	derive := func(key string, offset int, fallback int) int {
		if v, ok := scoreField(raw, key); ok {
			return v
		}
		if hasOverall {
			return overall + offset
		}
		return fallback
	}

	result := &models.AnalysisResult{
		OverallScore:     defaults.OverallScore,
		ATSScore:         derive("atsScore", backfillATSOffset, defaults.ATSScore),
		KeywordsScore:    derive("keywordsScore", backfillKeywordsOffset, defaults.KeywordsScore),
		ReadabilityScore: derive("readabilityScore", backfillReadabilityOffset, defaults.ReadabilityScore),
		MissingKeywords:  defaults.MissingKeywords,
		Suggestions:      defaults.Suggestions,
		AIAnalysis:       defaults.AIAnalysis,
	}
	if hasOverall {
		result.OverallScore = overall
	}

	var keywords []string
	if decodeTruthy(raw, "missingKeywords", &keywords) && keywords != nil {
		result.MissingKeywords = keywords
	}

	var suggestions []models.Suggestion
	if decodeTruthy(raw, "suggestions", &suggestions) && suggestions != nil {
		result.Suggestions = suggestions
	}

	var summary string
	if decodeTruthy(raw, "aiAnalysis", &summary) {
		result.AIAnalysis = summary
	}

	return result
}

// scoreField returns a truthy numeric field rounded to the nearest integer.
func scoreField(raw map[string]json.RawMessage, key string) (int, bool) {
	var v float64
	if !decodeTruthy(raw, key, &v) {
		return 0, false
	}
	return int(math.Round(v)), true
}

// decodeTruthy decodes raw[key] into target when the value is present, truthy
// and of a compatible type.
func decodeTruthy(raw map[string]json.RawMessage, key string, target any) bool {
	value, ok := raw[key]
	if !ok || !isTruthy(value) {
		return false
	}
	return json.Unmarshal(value, target) == nil
}

func isTruthy(value json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return false
	}

	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// excerpt returns at most aiAnalysisMaxExcerpt characters of text.
func excerpt(text string) string {
	if text == "" {
		return aiAnalysisPlaceholder
	}
	runes := []rune(text)
	if len(runes) > aiAnalysisMaxExcerpt {
		runes = runes[:aiAnalysisMaxExcerpt]
	}
	return string(runes)
}

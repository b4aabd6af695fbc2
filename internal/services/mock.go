package services

import (
	"fmt"
	"math/rand/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	mockBaseScoreMin   = 75
	mockBaseScoreRange = 20 // base is drawn from [75, 94]

	mockATSOffset         = -5
	mockKeywordsOffset    = 3
	mockReadabilityOffset = 7

	mockKeywordCount    = 5
	mockSuggestionCount = 3
)

var mockKeywordPool = []string{"React", "Node.js", "Python", "AWS"}

var mockSuggestionPool = []models.Suggestion{
	{
		Title:       "Add Quantifiable Achievements",
		Description: "Include specific metrics like 'Improved performance by 40%' or 'Reduced costs by $50K' to demonstrate impact.",
	},
	{
		Title:       "Expand Technical Skills Section",
		Description: "Organize skills by category (Languages, Frameworks, Tools) and include current in-demand technologies.",
	},
	{
		Title:       "Include Project Links",
		Description: "Add GitHub repository links or live project URLs to provide tangible evidence of your work.",
	},
	{
		Title:       "Optimize for ATS Systems",
		Description: "Use standard section headings and include relevant keywords from job descriptions you're targeting.",
	},
	{
		Title:       "Highlight Leadership Experience",
		Description: "Emphasize any team leadership, mentoring, or project management responsibilities.",
	},
}

const mockAnalysisTemplate = "Analysis of %s: This resume demonstrates strong potential with clear professional experience and good structure. " +
	"The content is well-organized and presents a compelling career narrative. " +
	"Key strengths include relevant technical experience and clear project descriptions. " +
	"Areas for enhancement: incorporating more quantifiable achievements to demonstrate impact, " +
	"expanding the technical skills inventory with current market-demanded technologies, " +
	"and potentially adding links to professional portfolios or GitHub repositories. " +
	"Overall, this is a solid resume that effectively communicates your qualifications."

// GenerateMockAnalysis returns a fresh synthetic analysis for filename. Every
// call draws new scores and subsets.
func GenerateMockAnalysis(filename string) *models.AnalysisResult {
	base := mockBaseScoreMin + rand.IntN(mockBaseScoreRange)

	return &models.AnalysisResult{
		OverallScore:     base,
		ATSScore:         base + mockATSOffset,
		KeywordsScore:    base + mockKeywordsOffset,
		ReadabilityScore: base + mockReadabilityOffset,
		MissingKeywords:  shuffledPrefix(mockKeywordPool, mockKeywordCount),
		Suggestions:      shuffledPrefix(mockSuggestionPool, mockSuggestionCount),
		AIAnalysis:       fmt.Sprintf(mockAnalysisTemplate, filename),
	}
}

// shuffledPrefix copies pool, shuffles the copy and keeps at most n items.
func shuffledPrefix[T any](pool []T, n int) []T {
	items := make([]T, len(pool))
	copy(items, pool)
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	if n < len(items) {
		items = items[:n]
	}
	return items
}

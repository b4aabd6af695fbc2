package models

// AnalysisResult is the JSON contract consumed by the resume UI.
type AnalysisResult struct {
	OverallScore     int          `json:"overallScore"`
	ATSScore         int          `json:"atsScore"`
	KeywordsScore    int          `json:"keywordsScore"`
	ReadabilityScore int          `json:"readabilityScore"`
	MissingKeywords  []string     `json:"missingKeywords"`
	Suggestions      []Suggestion `json:"suggestions"`
	AIAnalysis       string       `json:"aiAnalysis"`
}

type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

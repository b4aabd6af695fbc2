package services

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the instruction prompt for resume analysis.
// The field list must stay in sync with models.AnalysisResult.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt() string {
	return `
Analyze a software developer resume and provide a comprehensive analysis.
Respond ONLY with a JSON object with these exact fields:
- overallScore (number 0-100)
- atsScore (number 0-100)
- keywordsScore (number 0-100)
- readabilityScore (number 0-100)
- missingKeywords (array of strings)
- suggestions (array of objects with title and description fields)
- aiAnalysis (string summary)

Provide realistic scores and helpful suggestions for improving a software developer resume.
Be constructive and specific in your feedback.
`
}

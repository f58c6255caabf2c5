package services

const resumeAnalysisInstructions = `You are a resume analyzer. Analyze the resume text below.
IMPORTANT: Return ONLY valid JSON (no explanations, no text before or after).
JSON format must be exactly:
{
  "score": number between 0-100,
  "top3Improvements": ["exactly 3 clear, actionable, high-impact changes"],
  "suggestionsToStandOut": ["concise tips on formatting, phrasing, or keywords"],
  "quote": "a short motivational quote"
}
Analyze the following resume and provide a sleek, professional, and to-the-point evaluation.
Keep the tone professional, direct, and free of unnecessary detail.
Resume Text:
`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt appends the resume text verbatim to the fixed
// instructions.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	return resumeAnalysisInstructions + resumeText
}

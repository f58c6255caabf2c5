package models

import "encoding/json"

const (
	FallbackScore = 60
	FallbackQuote = "Keep improving, your best is yet to come!"
)

// EvaluationResult covers both response shapes. A parsed model answer fills
// Top3Improvements and SuggestionsToStandOut; the fallback fills Suggestions.
// Score and Quote are always present.
//
// Raw holds the model's JSON object as received. When set it is what gets
// serialized, so keys the typed fields do not know about survive.
type EvaluationResult struct {
	Score                 float64  `json:"score"`
	Top3Improvements      []string `json:"top3Improvements,omitempty"`
	SuggestionsToStandOut []string `json:"suggestionsToStandOut,omitempty"`
	Suggestions           []string `json:"suggestions,omitempty"`
	Quote                 string   `json:"quote"`

	Raw      json.RawMessage `json:"-"`
	Fallback bool            `json:"-"`
}

func (e EvaluationResult) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}

	type evaluationFields EvaluationResult
	return json.Marshal(evaluationFields(e))
}

func FallbackEvaluation() *EvaluationResult {
	return &EvaluationResult{
		Score: FallbackScore,
		Suggestions: []string{
			"AI output parsing failed",
			"Add measurable achievements",
			"Tailor resume to specific job roles",
		},
		Quote:    FallbackQuote,
		Fallback: true,
	}
}

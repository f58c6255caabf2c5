package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// Greedy on purpose: first "{" through last "}". Braces in prose around the
// JSON block will be swept in.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

var errNoJSONObject = errors.New("no JSON object in AI output")

// extractJSON returns the brace-delimited part of the model answer.
func extractJSON(text string) (string, bool) {
	loc := jsonObjectPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	return text[loc[0]:loc[1]], true
}

// parseEvaluation checks the answer against the typed result and keeps the
// original object for serialization.
func parseEvaluation(answer string) (*models.EvaluationResult, error) {
	jsonStr, ok := extractJSON(answer)
	if !ok {
		return nil, &ResponseParseError{Stage: "evaluation", Err: errNoJSONObject}
	}

	var result models.EvaluationResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, &ResponseParseError{Stage: "evaluation", Err: fmt.Errorf("failed to unmarshal JSON: %w", err)}
	}

	// the answer goes back out as the model wrote it
	var raw bytes.Buffer
	if err := json.Compact(&raw, []byte(jsonStr)); err != nil {
		return nil, &ResponseParseError{Stage: "evaluation", Err: err}
	}
	result.Raw = raw.Bytes()

	return &result, nil
}

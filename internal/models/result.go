package models

type ErrorResponse struct {
	Error string `json:"error"`
}

// BatchItemResponse is one line of CLI output.
type BatchItemResponse struct {
	File   string            `json:"file"`
	Result *EvaluationResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

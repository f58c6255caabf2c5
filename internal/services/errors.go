package services

import (
	"errors"
	"fmt"
)

var ErrUnsupportedFormat = errors.New("unsupported file format. Please upload PDF or DOCX")

// UpstreamError means the call to the AI provider did not complete or its
// body could not be read.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ResponseParseError is never returned by Analyze; it is replaced by the
// fallback evaluation.
type ResponseParseError struct {
	Stage string
	Err   error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("failed to parse AI response (%s): %v", e.Stage, e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("resume analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

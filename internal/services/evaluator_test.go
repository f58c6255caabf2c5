package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"alfredoptarigan/resume-analyzer/internal/logging"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type stubGemini struct {
	text    string
	err     error
	prompts []string
}

func (s *stubGemini) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func newMockProvider(t *testing.T, body string, calls *int32) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestAnalyzePromptContainsResumeVerbatim(t *testing.T) {
	stub := &stubGemini{text: `{"score":50,"quote":"q"}`}
	analyzer := NewAnalyzerService(stub, logging.Discard())

	resume := "Experienced engineer\n\"quotes\" {braces} and unicode ✓"
	if _, err := analyzer.Analyze(context.Background(), resume, "key"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(stub.prompts) != 1 {
		t.Fatalf("prompts sent = %d, want 1", len(stub.prompts))
	}
	prompt := stub.prompts[0]
	if !strings.HasPrefix(prompt, "You are a resume analyzer. Analyze the resume text below.\n") {
		t.Errorf("prompt does not start with the instructions: %q", prompt[:60])
	}
	if !strings.HasSuffix(prompt, "Resume Text:\n"+resume) {
		t.Errorf("prompt does not end with the resume text: %q", prompt)
	}
	if !strings.Contains(prompt, `"top3Improvements": ["exactly 3 clear, actionable, high-impact changes"],`) {
		t.Error("prompt is missing the schema description")
	}
}

func TestAnalyzeEndToEndWithMockProvider(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"{\"score\":85,\"top3Improvements\":[\"a\",\"b\",\"c\"],\"suggestionsToStandOut\":[\"x\"],\"quote\":\"Go!\"}"}]}}]}`
	server := newMockProvider(t, body, nil)

	analyzer := NewAnalyzerService(
		NewGeminiRESTService(server.Client(), server.URL, "gemini-1.5-flash", logging.Discard()),
		logging.Discard(),
	)

	result, err := analyzer.Analyze(context.Background(), "Experienced engineer...", "key")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	expected := `{"score":85,"top3Improvements":["a","b","c"],"suggestionsToStandOut":["x"],"quote":"Go!"}`
	if string(encoded) != expected {
		t.Errorf("result =\n%s\nwant\n%s", encoded, expected)
	}
}

func TestAnalyzeProseWrappedAnswer(t *testing.T) {
	stub := &stubGemini{text: "Sure! {\"score\":77,\"top3Improvements\":[\"a\",\"b\",\"c\"],\"suggestionsToStandOut\":[],\"quote\":\"Keep going\"} Hope that helps"}
	analyzer := NewAnalyzerService(stub, logging.Discard())

	result, err := analyzer.Analyze(context.Background(), "resume", "key")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.Score != 77 || result.Quote != "Keep going" || len(result.Top3Improvements) != 3 {
		t.Errorf("result = %+v", result)
	}
	if result.Fallback {
		t.Error("parsed result flagged as fallback")
	}
}

func TestAnalyzeReturnsAnswerUnchanged(t *testing.T) {
	testCases := []struct {
		name     string
		answer   string
		expected string
	}{
		{
			name:     "empty list kept",
			answer:   `{"score":85,"top3Improvements":["a","b","c"],"suggestionsToStandOut":[],"quote":"Go!"}`,
			expected: `{"score":85,"top3Improvements":["a","b","c"],"suggestionsToStandOut":[],"quote":"Go!"}`,
		},
		{
			name:     "extra key kept",
			answer:   `{"score":85,"top3Improvements":["a","b","c"],"suggestionsToStandOut":["x"],"quote":"Go!","summary":"extra"}`,
			expected: `{"score":85,"top3Improvements":["a","b","c"],"suggestionsToStandOut":["x"],"quote":"Go!","summary":"extra"}`,
		},
		{
			name:     "empty object",
			answer:   `{}`,
			expected: `{}`,
		},
		{
			name:     "whitespace compacted",
			answer:   "Here you go:\n{\n  \"score\": 90,\n  \"quote\": \"Ship it\"\n}\n",
			expected: `{"score":90,"quote":"Ship it"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newMockProvider(t, candidateBody(tc.answer), nil)
			analyzer := NewAnalyzerService(
				NewGeminiRESTService(server.Client(), server.URL, "gemini-1.5-flash", logging.Discard()),
				logging.Discard(),
			)

			result, err := analyzer.Analyze(context.Background(), "resume", "key")
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}

			encoded, err := json.Marshal(result)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(encoded) != tc.expected {
				t.Errorf("result =\n%s\nwant\n%s", encoded, tc.expected)
			}
		})
	}
}

func TestAnalyzeFallbacks(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"no candidates field", `{"promptFeedback":{"blockReason":"OTHER"}}`},
		{"malformed body", `not json at all`},
		{"empty candidates", `{"candidates":[]}`},
		{"answer without JSON", candidateBody("I am unable to analyze this resume.")},
		{"answer with invalid JSON", candidateBody(`{"score": 80, "quote": }`)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newMockProvider(t, tc.body, nil)
			analyzer := NewAnalyzerService(
				NewGeminiRESTService(server.Client(), server.URL, "gemini-1.5-flash", logging.Discard()),
				logging.Discard(),
			)

			result, err := analyzer.Analyze(context.Background(), "resume", "key")
			if err != nil {
				t.Fatalf("Analyze() error = %v, want fallback", err)
			}
			if !reflect.DeepEqual(result, models.FallbackEvaluation()) {
				t.Errorf("result = %+v, want fallback", result)
			}
		})
	}
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	stub := &stubGemini{err: &UpstreamError{Op: "request", Err: errors.New("connection refused")}}
	analyzer := NewAnalyzerService(stub, logging.Discard())

	result, err := analyzer.Analyze(context.Background(), "resume", "key")
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}

	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Errorf("error %v does not wrap *UpstreamError", err)
	}
}

func TestAnalyzeDoesNotCache(t *testing.T) {
	var calls int32
	server := newMockProvider(t, candidateBody(`{"score":70,"quote":"q"}`), &calls)

	analyzer := NewAnalyzerService(
		NewGeminiRESTService(server.Client(), server.URL, "gemini-1.5-flash", logging.Discard()),
		logging.Discard(),
	)

	for i := 0; i < 2; i++ {
		if _, err := analyzer.Analyze(context.Background(), "same resume", "key"); err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("provider calls = %d, want 2", got)
	}
}

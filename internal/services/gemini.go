package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-analyzer/internal/config"
)

// GeminiService returns the model's generated answer for a prompt.
//
// Implementations return *UpstreamError when the provider could not be
// reached and *ResponseParseError when it answered without a usable
// candidate.
type GeminiService interface {
	GenerateText(ctx context.Context, apiKey, prompt string) (string, error)
}

var errNoCandidates = errors.New("no AI response found")

type generateContentRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiRESTService struct {
	httpClient *http.Client
	endpoint   string
	logger     *logrus.Logger
}

// NewGeminiRESTService talks to the generateContent endpoint directly with
// the API key as a query parameter. httpClient is shared across requests.
func NewGeminiRESTService(httpClient *http.Client, baseURL, model string, logger *logrus.Logger) GeminiService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &geminiRESTService{
		httpClient: httpClient,
		endpoint:   fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(baseURL, "/"), model),
		logger:     logger,
	}
}

// GenerateText implements GeminiService.
func (g *geminiRESTService) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	payload, err := json.Marshal(generateContentRequest{
		Contents: []requestContent{{
			Parts: []requestPart{{Text: prompt}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint, err := url.Parse(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid Gemini endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("key", apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	g.logger.WithField("prompt_length", len(prompt)).Debug("📝 Sending prompt to Gemini")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Op: "request", Err: scrubKey(err, apiKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", &UpstreamError{Op: "read body", Err: fmt.Errorf("status %d: %w", resp.StatusCode, err)}
		}
		return "", &ResponseParseError{Stage: "read body", Err: err}
	}

	g.logger.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"body":   string(body),
	}).Debug("🔍 Full AI response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.WithField("status", resp.StatusCode).Warn("⚠️ Gemini returned a non-success status")
	}

	return parseGenerateContentResponse(body)
}

// parseGenerateContentResponse returns candidates[0].content.parts[0].text.
func parseGenerateContentResponse(body []byte) (string, error) {
	var envelope generateContentResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &ResponseParseError{Stage: "envelope", Err: err}
	}

	if len(envelope.Candidates) == 0 {
		return "", &ResponseParseError{Stage: "candidates", Err: errNoCandidates}
	}

	content := envelope.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0].Text == nil {
		return "", &ResponseParseError{Stage: "candidates", Err: errors.New("candidate has no text part")}
	}

	return *content.Parts[0].Text, nil
}

// scrubKey keeps the API key out of *url.Error messages, which embed the
// request URL.
func scrubKey(err error, apiKey string) error {
	if apiKey == "" {
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s %s: %w", urlErr.Op, strings.ReplaceAll(urlErr.URL, url.QueryEscape(apiKey), "REDACTED"), urlErr.Err)
	}

	return err
}

// NewGeminiService picks the transport named in cfg.
func NewGeminiService(cfg config.GeminiConfig, httpClient *http.Client, logger *logrus.Logger) (GeminiService, error) {
	switch strings.ToLower(cfg.Transport) {
	case "", config.TransportREST:
		return NewGeminiRESTService(httpClient, cfg.BaseURL, cfg.Model, logger), nil
	case config.TransportSDK:
		return NewGeminiSDKService(httpClient, cfg.BaseURL, cfg.Model, logger), nil
	default:
		return nil, fmt.Errorf("unknown Gemini transport %q", cfg.Transport)
	}
}

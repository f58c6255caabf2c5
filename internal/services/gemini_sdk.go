package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type geminiSDKService struct {
	httpClient *http.Client
	baseURL    string
	modelName  string
	logger     *logrus.Logger
}

// NewGeminiSDKService generates through google.golang.org/genai. A client is
// built per call because the API key arrives per call; the HTTP client
// underneath is shared.
func NewGeminiSDKService(httpClient *http.Client, baseURL, model string, logger *logrus.Logger) GeminiService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &geminiSDKService{
		httpClient: httpClient,
		baseURL:    baseURL,
		modelName:  model,
		logger:     logger,
	}
}

// GenerateText implements GeminiService.
func (g *geminiSDKService) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: g.baseURL,
		},
	})
	if err != nil {
		return "", &UpstreamError{Op: "client", Err: fmt.Errorf("failed to create gemini client: %w", err)}
	}

	g.logger.WithField("prompt_length", len(prompt)).Debug("📝 Sending prompt to Gemini (sdk)")

	resp, err := client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		// the provider answered, just not with candidates
		if isAPIError(err) {
			return "", &ResponseParseError{Stage: "candidates", Err: err}
		}
		return "", &UpstreamError{Op: "request", Err: err}
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", &ResponseParseError{Stage: "candidates", Err: errNoCandidates}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", &ResponseParseError{Stage: "candidates", Err: errors.New("candidate has no text part")}
	}

	return candidate.Content.Parts[0].Text, nil
}

func isAPIError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var apiErrPtr *genai.APIError
	return errors.As(err, &apiErrPtr)
}

package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, text, apiKey string) (*models.EvaluationResult, error)
}

type analyzerService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	logger        *logrus.Logger
}

func NewAnalyzerService(geminiService GeminiService, logger *logrus.Logger) AnalyzerService {
	return &analyzerService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

// Analyze sends one prompt per call and never caches. Any failure to
// interpret the provider's answer yields the fallback evaluation; only a
// failed call comes back as *AnalysisError.
func (a *analyzerService) Analyze(ctx context.Context, text, apiKey string) (*models.EvaluationResult, error) {
	prompt := a.promptBuilder.BuildResumeAnalysisPrompt(text)

	a.logger.WithField("prompt_length", len(prompt)).Info("🤖 Analyzing resume with Gemini")

	answer, err := a.geminiService.GenerateText(ctx, apiKey, prompt)
	if err != nil {
		var parseErr *ResponseParseError
		if errors.As(err, &parseErr) {
			return a.fallback(parseErr), nil
		}
		a.logger.WithError(err).Error("❌ Gemini call failed")
		return nil, &AnalysisError{Err: err}
	}

	a.logger.WithField("answer", answer).Debug("🔍 Extracted AI text")

	result, err := parseEvaluation(answer)
	if err != nil {
		return a.fallback(err), nil
	}

	a.logger.WithField("score", result.Score).Info("✅ Resume analyzed")
	return result, nil
}

func (a *analyzerService) fallback(cause error) *models.EvaluationResult {
	a.logger.WithError(cause).Warn("⚠️ JSON parsing failed, returning fallback evaluation")
	return models.FallbackEvaluation()
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-analyzer/internal/services"
)

const AnalysisIDHeader = "X-Analysis-ID"

type AnalyzeHandler struct {
	uploadReader services.UploadReader
	extractor    services.TextExtractorService
	analyzer     services.AnalyzerService
	apiKey       string
	logger       *logrus.Logger
}

func NewAnalyzeHandler(
	uploadReader services.UploadReader,
	extractor services.TextExtractorService,
	analyzer services.AnalyzerService,
	apiKey string,
	logger *logrus.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		uploadReader: uploadReader,
		extractor:    extractor,
		analyzer:     analyzer,
		apiKey:       apiKey,
		logger:       logger,
	}
}

// HandleAnalyze handles POST /api/resume/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	analysisID := uuid.New().String()
	c.Set(AnalysisIDHeader, analysisID)
	logger := h.logger.WithField("analysis_id", analysisID)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	file, err := h.uploadReader.Read(fileHeader)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return err
	}

	logger.WithField("filename", file.Filename).Info("📄 Resume received")

	extracted, err := h.extractor.Extract(file)
	if err != nil {
		logger.WithError(err).Error("❌ Failed to extract resume text")
		return err
	}

	result, err := h.analyzer.Analyze(c.UserContext(), extracted.Text, h.apiKey)
	if err != nil {
		return err
	}

	if result.Fallback {
		logger.Warn("⚠️ Responding with fallback evaluation")
	}

	return c.JSON(result)
}

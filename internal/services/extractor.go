package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type TextExtractorService interface {
	Extract(file models.UploadedFile) (*models.ExtractedText, error)
}

type textExtractorService struct {
	pdfParser  PDFParserService
	docxParser DOCXParserService
	logger     *logrus.Logger
}

func NewTextExtractorService(
	pdfParser PDFParserService,
	docxParser DOCXParserService,
	logger *logrus.Logger,
) TextExtractorService {
	return &textExtractorService{
		pdfParser:  pdfParser,
		docxParser: docxParser,
		logger:     logger,
	}
}

// Extract implements TextExtractorService.
func (s *textExtractorService) Extract(file models.UploadedFile) (*models.ExtractedText, error) {
	var (
		text   string
		format models.DocumentFormat
		pages  int
		err    error
	)

	switch file.Extension() {
	case ".pdf":
		format = models.FormatPDF
		var content *PDFContent
		content, err = s.pdfParser.ExtractTextWithMetaData(file.Content)
		if content != nil {
			text, pages = content.Text, content.PageCount
		}
	case ".docx":
		format = models.FormatDOCX
		text, err = s.docxParser.ExtractText(file.Content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.Filename)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", file.Filename, err)
	}

	fields := logrus.Fields{
		"filename":   file.Filename,
		"format":     format,
		"bytes":      file.Size(),
		"characters": len(text),
	}
	if format == models.FormatPDF {
		fields["page_count"] = pages
	}
	s.logger.WithFields(fields).Info("📖 Text extracted")

	return &models.ExtractedText{
		Text:   text,
		Format: format,
	}, nil
}

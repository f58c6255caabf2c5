package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(content []byte) (string, error)
	ExtractTextWithMetaData(content []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(content []byte) (string, error) {
	result, err := p.ExtractTextWithMetaData(content)
	if err != nil {
		return "", err
	}

	return result.Text, nil
}

// ExtractTextWithMetaData reads pages in document order, each page's text
// followed by a newline. GetPlainText opens every page with a newline of its
// own; that one is dropped.
func (p *pdfParserService) ExtractTextWithMetaData(content []byte) (result *PDFContent, err error) {
	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}

		textBuilder.WriteString(strings.TrimPrefix(text, "\n"))
		textBuilder.WriteString("\n")
	}

	return &PDFContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
	}, nil
}

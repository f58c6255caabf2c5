package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type DOCXParserService interface {
	ExtractText(content []byte) (string, error)
}

type docxParserService struct{}

func NewDOCXParserService() DOCXParserService {
	return &docxParserService{}
}

// ExtractText returns the text of every paragraph in document order, each
// terminated by a newline.
func (d *docxParserService) ExtractText(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	text, err := paragraphText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX body: %w", err)
	}

	return text, nil
}

// paragraphText flattens WordprocessingML. Inside a run, w:t text is kept,
// w:tab becomes a tab and w:br/w:cr a newline; every closed w:p adds a
// newline. Tab stops in paragraph properties are not runs and are ignored.
// Runs nest through text boxes, so depth is counted. Of an
// mc:AlternateContent pair only the Choice is read.
func paragraphText(documentXML string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var textBuilder strings.Builder
	runDepth := 0
	inText := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Fallback":
				if err := decoder.Skip(); err != nil {
					return "", err
				}
			case "r":
				runDepth++
			case "t":
				inText = runDepth > 0
			case "tab":
				if runDepth > 0 {
					textBuilder.WriteString("\t")
				}
			case "br", "cr":
				if runDepth > 0 {
					textBuilder.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			case "p":
				textBuilder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				textBuilder.Write(el)
			}
		}
	}

	return textBuilder.String(), nil
}

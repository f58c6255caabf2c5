package models

import (
	"path/filepath"
	"strings"
)

// UploadedFile is a resume as received from the caller: raw bytes plus the
// declared filename. Nothing about it is persisted.
type UploadedFile struct {
	Filename string
	Content  []byte
}

func (f UploadedFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Filename))
}

func (f UploadedFile) Size() int64 {
	return int64(len(f.Content))
}

type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// ExtractedText is the flat text of an uploaded document.
type ExtractedText struct {
	Text   string
	Format DocumentFormat
}

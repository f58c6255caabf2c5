package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrFileTooLarge = errors.New("file too large")

// UploadReader loads uploads fully into memory; nothing touches disk.
type UploadReader interface {
	Read(file *multipart.FileHeader) (models.UploadedFile, error)
	ReadFrom(filename string, r io.Reader) (models.UploadedFile, error)
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{
		maxFileSize: maxFileSize,
	}
}

func (u *uploadReader) Read(file *multipart.FileHeader) (models.UploadedFile, error) {
	if u.maxFileSize > 0 && file.Size > u.maxFileSize {
		return models.UploadedFile{}, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, u.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return u.ReadFrom(file.Filename, src)
}

func (u *uploadReader) ReadFrom(filename string, r io.Reader) (models.UploadedFile, error) {
	if u.maxFileSize > 0 {
		// one extra byte tells us the limit was exceeded
		r = io.LimitReader(r, u.maxFileSize+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to read file: %w", err)
	}

	if u.maxFileSize > 0 && int64(len(content)) > u.maxFileSize {
		return models.UploadedFile{}, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, u.maxFileSize)
	}

	return models.UploadedFile{
		Filename: filename,
		Content:  content,
	}, nil
}

// LoadUploadedFile reads a local file the same way an upload is read.
func LoadUploadedFile(reader UploadReader, path string) (models.UploadedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return reader.ReadFrom(filepath.Base(path), f)
}

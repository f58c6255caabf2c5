package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// BatchResult is the outcome for one file; Err is set when extraction or the
// provider call failed.
type BatchResult struct {
	Filename string
	Result   *models.EvaluationResult
	Err      error
}

type BatchWorker interface {
	Run(ctx context.Context, files []models.UploadedFile, apiKey string) []BatchResult
}

type batchWorker struct {
	extractor   TextExtractorService
	analyzer    AnalyzerService
	concurrency int
	logger      *logrus.Logger
}

func NewBatchWorker(
	extractor TextExtractorService,
	analyzer AnalyzerService,
	concurrency int,
	logger *logrus.Logger,
) BatchWorker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &batchWorker{
		extractor:   extractor,
		analyzer:    analyzer,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run analyzes files with at most concurrency in flight. Results keep input
// order and one failure does not stop the others.
func (w *batchWorker) Run(ctx context.Context, files []models.UploadedFile, apiKey string) []BatchResult {
	w.logger.Infof("🚀 Starting batch of %d files with %d workers", len(files), w.concurrency)

	results := make([]BatchResult, len(files))

	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for i, file := range files {
		g.Go(func() error {
			results[i] = w.process(ctx, file, apiKey)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (w *batchWorker) process(ctx context.Context, file models.UploadedFile, apiKey string) BatchResult {
	logger := w.logger.WithField("filename", file.Filename)

	if err := ctx.Err(); err != nil {
		return BatchResult{Filename: file.Filename, Err: err}
	}

	extracted, err := w.extractor.Extract(file)
	if err != nil {
		logger.WithError(err).Error("❌ Extraction failed")
		return BatchResult{Filename: file.Filename, Err: err}
	}

	result, err := w.analyzer.Analyze(ctx, extracted.Text, apiKey)
	if err != nil {
		logger.WithError(err).Error("❌ Analysis failed")
		return BatchResult{Filename: file.Filename, Err: err}
	}

	logger.Info("✅ File analyzed")
	return BatchResult{Filename: file.Filename, Result: result}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logging"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

//nolint:gochecknoglobals // Cobra boilerplate
var concurrency int

//nolint:gochecknoglobals // Cobra boilerplate
var pretty bool

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>...",
	Short: "Analyze one or more resume files",
	Long: `Analyze PDF or DOCX resumes and print one JSON document per file, in the
order given.

Example:
  resume-analyzer analyze resume.pdf
  resume-analyzer analyze a.pdf b.docx c.pdf --concurrency 2 --pretty`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Files analyzed in parallel (default WORKER_CONCURRENCY)")
	analyzeCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
}

var errSomeFilesFailed = errors.New("one or more files failed")

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if concurrency > 0 {
		cfg.Worker.Concurrency = concurrency
	}

	// logs go to stderr so stdout stays valid JSON
	log := logging.NewWithOutput(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	geminiService, err := services.NewGeminiService(cfg.Gemini, &http.Client{}, log)
	if err != nil {
		return err
	}

	worker := services.NewBatchWorker(
		services.NewTextExtractorService(services.NewPDFParserService(), services.NewDOCXParserService(), log),
		services.NewAnalyzerService(geminiService, log),
		cfg.Worker.Concurrency,
		log,
	)

	return analyzeFiles(ctx, worker, services.NewUploadReader(cfg.Storage.MaxFileSize), args, cfg.Gemini.APIKey, cmd.OutOrStdout(), log)
}

func analyzeFiles(
	ctx context.Context,
	worker services.BatchWorker,
	reader services.UploadReader,
	paths []string,
	apiKey string,
	out io.Writer,
	log *logrus.Logger,
) error {
	responses := make([]models.BatchItemResponse, len(paths))

	var files []models.UploadedFile
	var index []int
	for i, path := range paths {
		responses[i].File = path

		file, err := services.LoadUploadedFile(reader, path)
		if err != nil {
			log.WithError(err).WithField("path", path).Error("❌ Failed to read file")
			responses[i].Error = err.Error()
			continue
		}
		files = append(files, file)
		index = append(index, i)
	}

	for j, result := range worker.Run(ctx, files, apiKey) {
		i := index[j]
		if result.Err != nil {
			responses[i].Error = result.Err.Error()
			continue
		}
		responses[i].Result = result.Result
	}

	encoder := json.NewEncoder(out)
	if pretty {
		encoder.SetIndent("", "  ")
	}

	failed := 0
	for _, response := range responses {
		if response.Error != "" {
			failed++
		}
		if err := encoder.Encode(response); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errSomeFilesFailed, failed, len(responses))
	}

	return nil
}

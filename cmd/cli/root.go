package main

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-analyzer",
	Short: "Score resumes with Gemini",
	Long: `Extract text from PDF or DOCX resumes and ask Gemini for a score,
three high-impact improvements and a motivational quote.

Configuration is read from the environment or a .env file
(GEMINI_API_KEY, GEMINI_MODEL, GEMINI_TRANSPORT, MAX_FILE_SIZE, WORKER_CONCURRENCY).`,
	SilenceUsage: true,
}

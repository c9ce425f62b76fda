package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/complianceworks/fda483/internal/common"
	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/llm/openai"
	"github.com/complianceworks/fda483/internal/metadata"
	"github.com/complianceworks/fda483/internal/pdftext"
	"github.com/complianceworks/fda483/internal/results"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Ignore error if .env doesn't exist
	_ = godotenv.Load()

	// Parse CLI flags
	var (
		resultsDir = flag.String("results", "", "directory of JSON records to repair (default RESULTS_DIR or results)")
		csvPath    = flag.String("csv", "", "metadata feed file or directory (default FDA_OUTPUT_DIR)")
		pdfDir     = flag.String("pdf-dir", "", "folder of source PDFs for re-extraction (default DOWNLOADED_PDFS_DIR)")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration, letting flags override the environment
	cfg := common.LoadConfig()
	if *resultsDir != "" {
		cfg.Paths.ResultsDir = *resultsDir
	}
	if *csvPath != "" {
		cfg.Paths.MetadataDir = *csvPath
	}
	if *pdfDir != "" {
		cfg.Paths.PDFDir = *pdfDir
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\nSet OPENAI_API_KEY environment variable.\n", err)
		os.Exit(1)
	}

	// The repair pass is feed-driven, so an unusable feed is fatal here
	mapping, err := metadata.Load(cfg.Paths.MetadataDir, logger)
	if err != nil {
		logger.Error("failed to load metadata feed", "path", cfg.Paths.MetadataDir, "error", err)
		os.Exit(1)
	}
	if len(mapping) == 0 {
		printError("Error: no firm mapping data available in %s\n", cfg.Paths.MetadataDir)
		os.Exit(1)
	}
	logger.Info("metadata feed loaded", "entries", len(mapping))

	// Setup OpenAI client
	client := openai.NewClient(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)

	// Wire the repairer
	store := results.NewStore(cfg.Paths.ResultsDir, logger)
	resolver := firm.NewResolver(client, logger)
	repairer := results.NewRepairer(store, pdftext.NewReader(), resolver, cfg.Paths.PDFDir, logger)

	sum, err := repairer.Run(ctx, mapping)
	if err != nil {
		logger.Error("repair run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Repair complete!\n")
	fmt.Printf("- Records scanned: %d\n", sum.Scanned)
	fmt.Printf("- Records updated: %d\n", sum.Updated)
	fmt.Printf("- From metadata feed: %d\n", sum.FromFeed)
	fmt.Printf("- Extracted from PDFs: %d\n", sum.Extracted)
	if sum.Failed > 0 {
		fmt.Printf("- Failed: %d\n", sum.Failed)
	}
}

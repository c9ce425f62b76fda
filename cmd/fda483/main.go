package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/complianceworks/fda483/internal/batch"
	"github.com/complianceworks/fda483/internal/classify"
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
		pdfPath       = flag.String("pdf", "", "path to a single Form 483 PDF to process")
		folder        = flag.String("folder", "", "folder of Form 483 PDFs to process in name order")
		firmName      = flag.String("firm", "", "firm name override for single-file mode")
		fei           = flag.String("fei", "", "FEI number override for single-file mode")
		output        = flag.String("output", "", "directory for JSON records (default RESULTS_DIR or results)")
		apiKey        = flag.String("api-key", "", "OpenAI API key (default OPENAI_API_KEY)")
		csvPath       = flag.String("csv", "", "metadata feed file or directory (default FDA_OUTPUT_DIR)")
		keepPDFs      = flag.Bool("keep-pdfs", false, "keep source PDFs after their record is written")
		limit         = flag.Int("limit", 0, "cap on cases per batch run, 0 = unlimited")
		skipProcessed = flag.Bool("skip-processed", false, "skip PDFs whose record already exists")
	)
	flag.Parse()

	// Validate required flags
	if *pdfPath == "" && *folder == "" {
		printError("Error: either --pdf or --folder is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration, letting flags override the environment
	cfg := common.LoadConfig()
	if *apiKey != "" {
		cfg.LLM.APIKey = *apiKey
	}
	if *output != "" {
		cfg.Paths.ResultsDir = *output
	}
	if *csvPath != "" {
		cfg.Paths.MetadataDir = *csvPath
	}
	if *limit > 0 {
		cfg.Batch.Limit = *limit
	}
	if *keepPDFs {
		cfg.Batch.DeletePDFs = false
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\nSet OPENAI_API_KEY or pass --api-key.\n", err)
		os.Exit(1)
	}

	// Load the metadata feed. A feed named explicitly must exist and load; the
	// default location is allowed to be absent.
	if *csvPath != "" {
		if _, err := os.Stat(*csvPath); err != nil {
			logger.Error("failed to load metadata feed", "path", *csvPath, "error", err)
			os.Exit(1)
		}
	}
	mapping, err := metadata.Load(cfg.Paths.MetadataDir, logger)
	if err != nil {
		if *csvPath != "" {
			logger.Error("failed to load metadata feed", "path", cfg.Paths.MetadataDir, "error", err)
			os.Exit(1)
		}
		logger.Warn("metadata feed unavailable, continuing without it", "path", cfg.Paths.MetadataDir, "error", err)
		mapping = metadata.Mapping{}
	}

	// Setup OpenAI client
	client := openai.NewClient(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	logger.Info("OpenAI client initialized", "model", cfg.LLM.Model)

	// Wire the pipeline
	extractor := pdftext.NewReader()
	resolver := firm.NewResolver(client, logger)
	engine := classify.NewEngine(client, logger)
	store := results.NewStore(cfg.Paths.ResultsDir, logger)
	orch := batch.NewOrchestrator(extractor, resolver, engine, store, logger)

	// Single-file mode
	if *pdfPath != "" {
		hint := firm.Identity{Name: *firmName, FEI: *fei}
		res, path, err := orch.ProcessOne(ctx, *pdfPath, hint, mapping)
		if err != nil {
			logger.Error("failed to process form", "file", *pdfPath, "error", err)
			os.Exit(1)
		}
		if cfg.Batch.DeletePDFs {
			if err := os.Remove(*pdfPath); err != nil {
				logger.Warn("failed to delete source PDF", "file", *pdfPath, "error", err)
			}
		}

		fmt.Printf("Processing complete!\n")
		fmt.Printf("- Classification: %s\n", res.OverallClassification)
		fmt.Printf("- Violations: %d\n", len(res.Violations))
		fmt.Printf("- Result: %s\n", path)
		return
	}

	// Batch mode
	outcomes, err := orch.Run(ctx, batch.RunSpec{
		PDFDir:        *folder,
		Mapping:       mapping,
		DeleteSource:  cfg.Batch.DeletePDFs,
		Limit:         cfg.Batch.Limit,
		SkipProcessed: *skipProcessed,
	})
	if err != nil {
		logger.Error("batch run failed", "folder", *folder, "error", err)
		os.Exit(1)
	}

	successful := 0
	for _, out := range outcomes {
		if out.Error == "" {
			successful++
		}
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Successful: %d\n", successful)
	fmt.Printf("- Failed: %d\n", len(outcomes)-successful)
	fmt.Printf("- Output: %s\n", store.Dir())
}

// Package batch drives the per-case pipeline over a folder of Form 483 PDFs
// and records a run summary alongside the individual records.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/classify"
	"github.com/complianceworks/fda483/internal/common"
	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/metadata"
	"github.com/complianceworks/fda483/internal/observation"
	"github.com/complianceworks/fda483/internal/pdftext"
	"github.com/complianceworks/fda483/internal/results"
)

// Summary entry statuses, matching the record file format.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Outcome is one case's entry in the run summary.
type Outcome struct {
	File       string           `json:"file"`
	Result     *classify.Result `json:"result,omitempty"`
	Error      string           `json:"error,omitempty"`
	Status     string           `json:"status"`
	PDFDeleted bool             `json:"pdf_deleted"`
}

// RunSpec configures one batch run.
type RunSpec struct {
	// PDFDir is the folder scanned for *.pdf files, in name order.
	PDFDir string
	// Mapping is the metadata feed lookup shared by every case.
	Mapping metadata.Mapping
	// Hints carries caller-supplied identity per PDF basename.
	Hints map[string]firm.Identity
	// DeleteSource removes each PDF after its record is written.
	DeleteSource bool
	// Limit caps how many cases are processed; zero means no cap.
	Limit int
	// SkipProcessed leaves PDFs alone when their record already exists.
	SkipProcessed bool
}

// Orchestrator wires the pipeline stages for sequential case processing.
type Orchestrator struct {
	extractor pdftext.Extractor
	resolver  *firm.Resolver
	engine    *classify.Engine
	store     *results.Store
	logger    *slog.Logger
}

func NewOrchestrator(extractor pdftext.Extractor, resolver *firm.Resolver, engine *classify.Engine, store *results.Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{extractor: extractor, resolver: resolver, engine: engine, store: store, logger: logger}
}

// ProcessOne runs the full pipeline for a single PDF and writes its record.
// It returns the record and its path.
func (o *Orchestrator) ProcessOne(ctx context.Context, pdfPath string, hint firm.Identity, mapping metadata.Mapping) (classify.Result, string, error) {
	name := filepath.Base(pdfPath)
	o.logger.Info("batch.case.start", "file", name, "status", constants.CasePending)

	text, err := o.extractor.Extract(pdfPath)
	if err != nil {
		o.logger.Error("batch.case.state", "file", name, "status", constants.CaseError, "error", err)
		return classify.Result{}, "", err
	}
	o.logger.Info("batch.case.state", "file", name, "status", constants.CaseTextExtracted, "chars", len(text))

	id := o.resolver.Resolve(ctx, firm.Input{Filename: name, Text: text, Hint: hint, Mapping: mapping})
	obs := observation.Segment(text)

	res, err := o.engine.Classify(ctx, obs, id.Export())
	if err != nil {
		o.logger.Error("batch.case.state", "file", name, "status", constants.CaseError, "error", err)
		return classify.Result{}, "", err
	}
	o.logger.Info("batch.case.state", "file", name,
		"status", constants.CaseClassified,
		"classification", res.OverallClassification,
		"observations", len(obs))

	path, err := o.store.Write(name, res)
	if err != nil {
		o.logger.Error("batch.case.state", "file", name, "status", constants.CaseError, "error", err)
		return classify.Result{}, "", err
	}
	o.logger.Info("batch.case.state", "file", name, "status", constants.CaseSuccess, "path", path)
	return res, path, nil
}

// Run processes every eligible PDF under spec.PDFDir and writes the run
// summary next to the records. Case failures land in the summary, not the
// returned error.
func (o *Orchestrator) Run(ctx context.Context, spec RunSpec) ([]Outcome, error) {
	if _, err := os.Stat(spec.PDFDir); err != nil {
		return nil, common.NewAppError("BATCH_INPUT_ERROR", fmt.Sprintf("pdf folder %s: %v", spec.PDFDir, err), common.ErrInvalidInput)
	}

	files, err := listPDFs(spec.PDFDir)
	if err != nil {
		return nil, err
	}

	var work []string
	for _, path := range files {
		name := filepath.Base(path)
		if spec.SkipProcessed && o.store.Exists(name) {
			o.logger.Info("batch.case.skipped", "file", name)
			continue
		}
		work = append(work, path)
		if spec.Limit > 0 && len(work) == spec.Limit {
			break
		}
	}
	o.logger.Info("batch.start", "folder", spec.PDFDir, "cases", len(work), "found", len(files))

	outcomes := make([]Outcome, 0, len(work))
	var deleted int
	for _, path := range work {
		if ctx.Err() != nil {
			o.logger.Warn("batch.cancelled", "remaining", len(work)-len(outcomes))
			break
		}
		name := filepath.Base(path)

		res, _, err := o.ProcessOne(ctx, path, spec.Hints[name], spec.Mapping)
		if err != nil {
			outcomes = append(outcomes, Outcome{File: name, Error: err.Error(), Status: statusError})
			continue
		}

		out := Outcome{File: name, Result: &res, Status: statusSuccess}
		if spec.DeleteSource {
			if err := os.Remove(path); err != nil {
				o.logger.Warn("batch.case.delete_failed", "file", name, "error", err)
			} else {
				out.PDFDeleted = true
				deleted++
			}
		}
		outcomes = append(outcomes, out)
	}

	if _, err := o.store.WriteJSON(constants.SummaryFilename, outcomes); err != nil {
		return outcomes, err
	}

	success := 0
	for _, out := range outcomes {
		if out.Status == statusSuccess {
			success++
		}
	}
	o.logger.Info("batch.done",
		"total", len(outcomes),
		"success", success,
		"failed", len(outcomes)-success,
		"pdfs_deleted", deleted)
	return outcomes, nil
}

func listPDFs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*."+constants.PDFExtension))
	if err != nil {
		return nil, fmt.Errorf("scan pdf folder %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

package results

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/mediaid"
	"github.com/complianceworks/fda483/internal/metadata"
	"github.com/complianceworks/fda483/internal/pdftext"
)

// Repairer backfills the identity block of existing records. The metadata feed
// is authoritative: a feed entry is stamped verbatim, sentinels included. A
// record absent from the feed falls back to re-extracting identity from its
// source PDF, and only when the record is missing a field.
type Repairer struct {
	store     *Store
	extractor pdftext.Extractor
	resolver  *firm.Resolver
	pdfDir    string
	logger    *slog.Logger
}

func NewRepairer(store *Store, extractor pdftext.Extractor, resolver *firm.Resolver, pdfDir string, logger *slog.Logger) *Repairer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repairer{store: store, extractor: extractor, resolver: resolver, pdfDir: pdfDir, logger: logger}
}

// RepairSummary counts what one repair pass did.
type RepairSummary struct {
	Scanned   int
	Updated   int
	FromFeed  int
	Extracted int
	Failed    int
}

// Run repairs every record in the store. Per-record failures are logged and
// counted, not fatal.
func (r *Repairer) Run(ctx context.Context, mapping metadata.Mapping) (RepairSummary, error) {
	var sum RepairSummary

	files, err := r.store.List()
	if err != nil {
		return sum, err
	}

	for _, path := range files {
		sum.Scanned++
		if err := r.repairOne(ctx, path, mapping, &sum); err != nil {
			sum.Failed++
			r.logger.Error("results.repair.failed", "file", filepath.Base(path), "error", err)
		}
	}

	r.logger.Info("results.repair.done",
		"scanned", sum.Scanned,
		"updated", sum.Updated,
		"from_feed", sum.FromFeed,
		"extracted", sum.Extracted,
		"failed", sum.Failed)
	return sum, nil
}

func (r *Repairer) repairOne(ctx context.Context, path string, mapping metadata.Mapping, sum *RepairSummary) error {
	name := filepath.Base(path)

	doc, err := r.store.ReadRecord(path)
	if err != nil {
		return err
	}

	meta, _ := doc["metadata"].(map[string]any)
	currentInfo := firm.Info{
		Firm: cast.ToString(meta["firm"]),
		FEI:  cast.ToString(meta["fei"]),
	}
	current := firm.FromInfo(currentInfo)

	var next firm.Info
	var source string

	id, _ := mediaid.FromName(name)
	if rec, ok := mapping.Lookup(id); ok {
		next = firm.Info{Firm: rec.Firm, FEI: rec.FEI}
		source = "feed"
	} else if pdfPath := r.pdfPath(name); pdfPath != "" && !current.Resolved() {
		text, err := r.extractor.Extract(pdfPath)
		if err != nil {
			return err
		}
		resolved := r.resolver.Resolve(ctx, firm.Input{
			Filename: filepath.Base(pdfPath),
			Text:     text,
			Hint:     current,
		})
		next = resolved.Export()
		source = "pdf"
	} else {
		r.logger.Debug("results.repair.no_source", "file", name, "media_id", id)
		return nil
	}

	if next.Firm == currentInfo.Firm && next.FEI == currentInfo.FEI {
		r.logger.Debug("results.repair.unchanged", "file", name, "source", source)
		return nil
	}

	if meta == nil {
		meta = map[string]any{}
		doc["metadata"] = meta
	}
	meta["firm"] = next.Firm
	meta["fei"] = next.FEI

	if _, err := r.store.WriteJSON(name, doc); err != nil {
		return err
	}

	sum.Updated++
	switch source {
	case "feed":
		sum.FromFeed++
	case "pdf":
		sum.Extracted++
	}
	r.logger.Info("results.repair.updated", "file", name, "source", source, "firm", next.Firm, "fei", next.FEI)
	return nil
}

// pdfPath returns the source PDF for a record name, or "" when it does not
// exist on disk.
func (r *Repairer) pdfPath(recordName string) string {
	pdfName := strings.TrimSuffix(recordName, constants.ResultSuffix) + "." + constants.PDFExtension
	path := filepath.Join(r.pdfDir, pdfName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

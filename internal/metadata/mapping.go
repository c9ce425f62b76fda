// Package metadata loads the firm identity feed produced by the dataset
// downloader and keys it by media ID. The feed is authoritative as-is: rows
// carrying the sentinel values are kept, not filtered.
package metadata

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/mediaid"
)

// FirmRecord is one feed row's identity payload.
type FirmRecord struct {
	Firm string
	FEI  string
}

// Mapping keys firm identity by media ID. Built once per run, read-only after.
type Mapping map[string]FirmRecord

func (m Mapping) Lookup(mediaID string) (FirmRecord, bool) {
	rec, ok := m[mediaID]
	return rec, ok
}

// Load reads a CSV or XLSX feed into a Mapping. When path is a directory, the
// most recently modified feed file inside it is used. A path that does not
// exist, or a directory with no feed files, yields an empty mapping and a
// warning; a feed that exists but cannot be parsed is an error, and the caller
// decides whether that aborts the run.
func Load(path string, logger *slog.Logger) (Mapping, error) {
	if logger == nil {
		logger = slog.Default()
	}

	feedPath, ok, err := resolveFeedPath(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("metadata.feed.missing", "path", path)
		return Mapping{}, nil
	}
	if feedPath != path {
		logger.Info("metadata.feed.selected", "path", feedPath)
	}

	var rows [][]string
	switch constants.NormalizeExt(filepath.Ext(feedPath)) {
	case "xlsx":
		rows, err = readXLSX(feedPath)
	default:
		rows, err = readCSV(feedPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feedPath, err)
	}

	mapping, err := buildMapping(rows, logger)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", feedPath, err)
	}

	logger.Info("metadata.feed.loaded", "path", feedPath, "entries", len(mapping), "rows", max(0, len(rows)-1))
	return mapping, nil
}

// resolveFeedPath picks the concrete feed file: the path itself, or for a
// directory, the latest *.csv / *.xlsx by modification time.
func resolveFeedPath(path string) (string, bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("stat feed path: %w", err)
	}
	if !st.IsDir() {
		return path, true, nil
	}

	var latest string
	var latestMod int64
	for _, pattern := range []string{"*.csv", "*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return "", false, fmt.Errorf("glob feed dir: %w", err)
		}
		for _, m := range matches {
			fi, err := os.Stat(m)
			if err != nil {
				continue
			}
			if mod := fi.ModTime().UnixNano(); latest == "" || mod > latestMod {
				latest, latestMod = m, mod
			}
		}
	}
	if latest == "" {
		return "", false, nil
	}
	return latest, true, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func buildMapping(rows [][]string, logger *slog.Logger) (Mapping, error) {
	mapping := Mapping{}
	if len(rows) == 0 {
		return mapping, nil
	}

	header := rows[0]
	dlCol := columnIndex(header, "Download")
	if dlCol < 0 {
		return nil, fmt.Errorf("missing 'Download' column (columns: %s)", strings.Join(header, ", "))
	}
	feiCol := columnIndex(header, "FEI Number")
	nameCol := columnIndex(header, "Legal Name")
	if feiCol < 0 || nameCol < 0 {
		logger.Warn("metadata.feed.partial_columns", "has_fei", feiCol >= 0, "has_legal_name", nameCol >= 0)
	}

	for i, row := range rows[1:] {
		id, ok := mediaid.FromURL(cell(row, dlCol))
		if !ok {
			logger.Debug("metadata.feed.row_skipped", "row", i+1, "url", cell(row, dlCol))
			continue
		}
		mapping[id] = FirmRecord{
			Firm: normalizeFirmCell(cell(row, nameCol)),
			FEI:  normalizeFEICell(cell(row, feiCol)),
		}
	}
	return mapping, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func normalizeFirmCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return constants.UnknownFirm
	}
	return v
}

// normalizeFEICell trims the cell and collapses numeric artifacts such as
// "3001234567.0" or "3.001234567E+09" (spreadsheet float rendering) back to
// the plain digit string. Non-numeric strings pass through verbatim.
func normalizeFEICell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return constants.NoFEI
	}
	if strings.ContainsAny(v, ".eE") {
		if f, err := cast.ToFloat64E(v); err == nil {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return v
}

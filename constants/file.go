package constants

import "strings"

// PDFExtension is the only source-document extension the pipeline accepts.
const PDFExtension = "pdf"

// ResultSuffix is appended to a source filename's stem to name its JSON record.
const ResultSuffix = "_result.json"

// SummaryFilename is the batch-level summary written after every run.
const SummaryFilename = "batch_summary.json"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ResultFilename maps a source PDF filename to its JSON record filename.
func ResultFilename(pdfName string) string {
	return strings.TrimSuffix(pdfName, ".pdf") + ResultSuffix
}

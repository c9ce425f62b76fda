package firm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/complianceworks/fda483/internal/common"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingPunctRe = regexp.MustCompile(`[,\-.]+$`)
	nonDigitRe      = regexp.MustCompile(`\D`)
)

// addressMarkers disqualify a firm-name candidate. Form headers run the firm
// name and its address together, and a candidate containing one of these is an
// address fragment rather than a business name.
var addressMarkers = []string{"STREET", "ADDRESS", "CITY", "STATE", "ZIP", "POSTAL"}

// NormalizeFirmName collapses internal whitespace and strips trailing
// punctuation from a raw candidate.
func NormalizeFirmName(raw string) string {
	name := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	return strings.TrimSpace(trailingPunctRe.ReplaceAllString(name, ""))
}

// ValidateFirmName normalizes a candidate and applies the acceptance rules
// shared by every resolution tier that produces candidates. It returns the
// normalized name, or a FieldError naming the rule that rejected it.
func ValidateFirmName(raw string) (string, error) {
	name := NormalizeFirmName(raw)
	if len(name) <= 5 || len(name) >= 150 {
		return "", &common.FieldError{Field: "firm", Value: name, Reason: fmt.Sprintf("length %d out of range", len(name))}
	}
	upper := strings.ToUpper(name)
	if strings.HasPrefix(upper, "HTTP") {
		return "", &common.FieldError{Field: "firm", Value: name, Reason: "candidate is a URL"}
	}
	for _, marker := range addressMarkers {
		if strings.Contains(upper, marker) {
			return "", &common.FieldError{Field: "firm", Value: name, Reason: "contains address term " + marker}
		}
	}
	return name, nil
}

// ValidateFEI strips every non-digit character and enforces the 9 to 11 digit
// length FEI numbers carry.
func ValidateFEI(raw string) (string, error) {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) < 9 || len(digits) > 11 {
		return "", &common.FieldError{Field: "fei", Value: raw, Reason: fmt.Sprintf("%d digits after stripping", len(digits))}
	}
	return digits, nil
}

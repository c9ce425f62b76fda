package firm

import (
	"regexp"
	"strings"
)

// Window sizes for the pattern tier. Identity fields live in the form header,
// so scans run over bounded prefixes of the extracted text rather than the
// whole document.
const (
	headerChars      = 6000
	firstPageChars   = 3000
	feiExtendedChars = 10000
	llmExcerptChars  = 4000
)

// firmPatterns is the ordered candidate list for the firm name. The first six
// are anchored on header labels; the last two are looser fallbacks that run
// only over the header window.
var firmPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)Firm\s*Name[:\s]*([^\n\r]+?)(?:\n|$|FEI|Record|Date|Establishment)`),
	regexp.MustCompile(`(?im)Legal\s*Name[:\s]*([^\n\r]+?)(?:\n|$|FEI|Record|Date|Establishment)`),
	regexp.MustCompile(`(?im)Establishment\s*Name[:\s]*([^\n\r]+?)(?:\n|$|FEI|Record|Date)`),
	regexp.MustCompile(`(?im)Name\s*of\s*Firm[:\s]*([^\n\r]+?)(?:\n|$|FEI|Record|Date)`),
	regexp.MustCompile(`(?im)Firm\s*Name\s*[:\-]\s*([^\n\r]+?)(?:\n|$|FEI)`),
	regexp.MustCompile(`(?im)Legal\s*Name\s*[:\-]\s*([^\n\r]+?)(?:\n|$|FEI)`),
	regexp.MustCompile(`(?im)^([A-Z][A-Za-z0-9\s&.,\-()]+(?:Inc|LLC|Ltd|Limited|Corporation|Corp|Company|Co|GmbH|Pharmaceuticals?|Laboratories?))`),
	regexp.MustCompile(`(?im)(?:Firm|Legal|Establishment)\s*[:\s]+([A-Z][A-Za-z0-9\s&.,\-()]{10,80}?)(?:\n|FEI|Record)`),
}

// feiPatterns is the ordered candidate list for the FEI number. Later entries
// loosen the label-to-digits separator; the last four run only over the header
// window.
var feiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)FEI\s*(?:Number)?\s*[:\s]*(\d{9,11})`),
	regexp.MustCompile(`(?im)FEI\s*[:\s]*(\d{10})`),
	regexp.MustCompile(`(?im)FEI\s*No[:\s]*(\d{9,11})`),
	regexp.MustCompile(`(?im)FEI\s*#\s*(\d{9,11})`),
	regexp.MustCompile(`(?im)FEI\s*Number[:\s]*(\d{9,11})`),
	regexp.MustCompile(`(?im)FEI[^\d]*(\d{10})`),
	regexp.MustCompile(`(?im)FEI[^\d]{0,20}(\d{9,11})`),
	regexp.MustCompile(`(?im)FEI\s*[:\-]\s*(\d{9,11})`),
	regexp.MustCompile(`(?im)FEI\s*Number\s*[:\-]\s*(\d{9,11})`),
	regexp.MustCompile(`(?im)(?:FEI|Establishment)\s*[:\s]+(\d{10})`),
}

// Reduced lists for the last-resort scan after a failed LLM call.
var (
	reducedFirmPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)Firm\s*Name[:\s]*([^\n]+?)(?:\n|$)`),
		regexp.MustCompile(`(?im)Legal\s*Name[:\s]*([^\n]+?)(?:\n|$)`),
	}
	reducedFEIPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)FEI\s*(?:Number)?\s*[:\s]*(\d{9,11})`),
		regexp.MustCompile(`(?im)FEI\s*[:\s]*(\d{10})`),
	}
)

// searchFirmName runs the pattern tier for the firm name: the full list over
// the header window, then the label-anchored subset over the first page.
func searchFirmName(text string) (string, bool) {
	if name, ok := scanPatterns(firmPatterns, truncate(text, headerChars), ValidateFirmName); ok {
		return name, true
	}
	return scanPatterns(firmPatterns[:6], firstPageWindow(text), ValidateFirmName)
}

// searchFEI runs the pattern tier for the FEI number: the full list over the
// header window, then the first six patterns over an extended prefix.
func searchFEI(text string) (string, bool) {
	if fei, ok := scanPatterns(feiPatterns, truncate(text, headerChars), ValidateFEI); ok {
		return fei, true
	}
	return scanPatterns(feiPatterns[:6], truncate(text, feiExtendedChars), ValidateFEI)
}

// scanPatterns returns the first capture that passes validate. A candidate
// that fails validation counts as a non-match and the scan moves to the next
// pattern.
func scanPatterns(patterns []*regexp.Regexp, text string, validate func(string) (string, error)) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, err := validate(m[1]); err == nil {
			return v, true
		}
	}
	return "", false
}

// firstPageWindow approximates the first page: everything before the first
// blank line, or a fixed prefix when the text has none.
func firstPageWindow(text string) string {
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return text[:i]
	}
	return truncate(text, firstPageChars)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

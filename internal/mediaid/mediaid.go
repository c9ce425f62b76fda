// Package mediaid resolves the numeric media identifier that keys a case
// across source PDFs, download URLs, and result records.
package mediaid

import "regexp"

var (
	filenameRe = regexp.MustCompile(`FDA_(\d+)\.pdf`)
	urlRe      = regexp.MustCompile(`/media/(\d+)/download`)
	resultRe   = regexp.MustCompile(`FDA_(\d+)_result\.json`)
	genericRe  = regexp.MustCompile(`FDA_(\d+)`)
)

// FromFilename extracts the media ID from a source PDF name like FDA_189344.pdf.
// The ID is returned verbatim (leading zeros preserved); absence is a normal
// outcome, not an error.
func FromFilename(name string) (string, bool) {
	return match(filenameRe, name)
}

// FromURL extracts the media ID from an FDA download URL.
func FromURL(url string) (string, bool) {
	return match(urlRe, url)
}

// FromName resolves a media ID from any artifact name: it tries the source PDF
// pattern, then the result-record pattern, then a bare FDA_<digits> token.
func FromName(name string) (string, bool) {
	if id, ok := match(filenameRe, name); ok {
		return id, true
	}
	if id, ok := match(resultRe, name); ok {
		return id, true
	}
	return match(genericRe, name)
}

func match(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

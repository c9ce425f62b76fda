// Package observation splits raw Form 483 text into numbered observations.
package observation

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// maxContentLength caps each observation body.
	maxContentLength = 2000
	// syntheticWindow is how much of the document the fallback observation keeps.
	syntheticWindow = 5000
)

var markerRe = regexp.MustCompile(`(?i)Observation\s+(\d+)[:.]?\s*`)

// Observation is one numbered finding from the form. Numbering is whatever the
// document says; gaps are preserved.
type Observation struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Segment returns the document's observations in order of appearance. Each
// body runs from its marker to the next marker or end of text. When the text
// has no markers at all, a single synthetic observation numbered 1 carries the
// start of the document so classification still has material to work with.
func Segment(text string) []Observation {
	locs := markerRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []Observation{{Number: 1, Content: truncate(text, syntheticWindow)}}
	}

	out := make([]Observation, 0, len(locs))
	for i, loc := range locs {
		number, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(text[loc[1]:end])
		out = append(out, Observation{Number: number, Content: truncate(content, maxContentLength)})
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

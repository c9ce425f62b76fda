package mediaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "plain", input: "FDA_189344.pdf", want: "189344", wantOK: true},
		{name: "leading zeros preserved", input: "FDA_0012345.pdf", want: "0012345", wantOK: true},
		{name: "with path", input: "downloaded_pdfs/FDA_55.pdf", want: "55", wantOK: true},
		{name: "wrong prefix", input: "CASE_189344.pdf", wantOK: false},
		{name: "no digits", input: "FDA_.pdf", wantOK: false},
		{name: "not a pdf", input: "FDA_189344.txt", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromFilename(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromURL(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "download url", input: "https://www.fda.gov/media/189344/download", want: "189344", wantOK: true},
		{name: "query suffix", input: "https://www.fda.gov/media/77001/download?attachment", want: "77001", wantOK: true},
		{name: "no media segment", input: "https://www.fda.gov/about-fda", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromURL(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "source pdf", input: "FDA_188559.pdf", want: "188559", wantOK: true},
		{name: "result record", input: "FDA_188559_result.json", want: "188559", wantOK: true},
		{name: "bare token", input: "notes_FDA_188559.bak", want: "188559", wantOK: true},
		{name: "unrelated", input: "summary.json", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

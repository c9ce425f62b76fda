package firm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/fda483/internal/common"
)

func TestValidateFirmName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "Acme Pharmaceuticals Inc", "Acme Pharmaceuticals Inc", true},
		{"collapses whitespace", "  Acme \t Pharma\n Inc  ", "Acme Pharma Inc", true},
		{"strips trailing punctuation", "Acme Pharma Inc.,-", "Acme Pharma Inc", true},
		{"too short", "Acme", "", false},
		{"too long", strings.Repeat("A", 160), "", false},
		{"street fragment", "123 Main Street", "", false},
		{"state term embedded", "Tri-State Compounding", "", false},
		{"url", "http://example.com/acme", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFirmName(tt.input)
			if !tt.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateFEI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"ten digits", "3001234567", "3001234567", true},
		{"nine digits with separators", "123-45-6789", "123456789", true},
		{"eleven digits", "30012345678", "30012345678", true},
		{"padded", " 3001234567 ", "3001234567", true},
		{"too few", "12345678", "", false},
		{"too many", "123456789012", "", false},
		{"no digits", "pending", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFEI(tt.input)
			if !tt.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

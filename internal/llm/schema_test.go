package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirmInfoSchema(t *testing.T) {
	schema := FirmInfoSchema()

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "both strings", payload: `{"firm": "Acme Pharma Inc", "fei": "3001234567"}`, wantErr: false},
		{name: "numeric fei", payload: `{"firm": "Acme Pharma Inc", "fei": 3001234567}`, wantErr: false},
		{name: "sentinels", payload: `{"firm": "Unknown", "fei": "N/A"}`, wantErr: false},
		{name: "missing fei", payload: `{"firm": "Acme Pharma Inc"}`, wantErr: true},
		{name: "extra field", payload: `{"firm": "Acme", "fei": "123456789", "address": "1 Main St"}`, wantErr: true},
		{name: "not json", payload: `firm: Acme`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONAgainstSchema(schema, []byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

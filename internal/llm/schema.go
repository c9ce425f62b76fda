package llm

// FirmInfoSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map
// constraining the identity-extraction reply. "fei" tolerates a bare number
// because models sometimes emit the identifier unquoted.
func FirmInfoSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"firm": map[string]any{"type": "string"},
			"fei":  map[string]any{"type": []string{"string", "number"}},
		},
		"required": []string{"firm", "fei"},
	}
}

package llm

import (
	"encoding/json"
	"maps"
	"strconv"
	"strings"

	"github.com/complianceworks/fda483/constants"
)

// identityKeySynonyms maps key spellings models drift into onto the schema keys.
var identityKeySynonyms = map[string]string{
	"firm_name":  "firm",
	"legal_name": "firm",
	"company":    "firm",
	"fei_number": "fei",
	"fei_no":     "fei",
}

// NormalizeIdentityJSON rewrites a near-miss identity reply so the overall
// document can still validate against FirmInfoSchema:
// - Renames known key synonyms (firm_name -> firm, fei_number -> fei)
// - Fills missing, null, or empty fields with the serialized absence sentinels
// - Coerces a bare numeric fei to its digit string
// - Removes unknown keys (strict additionalProperties = false friendliness)
// It returns the rewritten document and the list of applied changes.
func NormalizeIdentityJSON(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	var changed []string
	for from, to := range identityKeySynonyms {
		if v, ok := m[from]; ok {
			// don't overwrite a value already present under the schema key
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			changed = append(changed, from+"->"+to)
		}
	}

	switch t := m["firm"].(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			m["firm"] = s
		} else {
			m["firm"] = constants.UnknownFirm
			changed = append(changed, "firm(empty)")
		}
	case nil:
		m["firm"] = constants.UnknownFirm
		changed = append(changed, "firm(absent)")
	}

	switch t := m["fei"].(type) {
	case float64:
		m["fei"] = strconv.FormatFloat(t, 'f', -1, 64)
		changed = append(changed, "fei(number)")
	case string:
		if s := strings.TrimSpace(t); s != "" {
			m["fei"] = s
		} else {
			m["fei"] = constants.NoFEI
			changed = append(changed, "fei(empty)")
		}
	case nil:
		m["fei"] = constants.NoFEI
		changed = append(changed, "fei(absent)")
	}

	// remove unknown keys (everything not in the schema set)
	for k := range maps.Clone(m) {
		if k != "firm" && k != "fei" {
			delete(m, k)
			changed = append(changed, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, changed, err
	}
	return out, changed, nil
}

package constants

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Classification is the overall inspection outcome tier.
type Classification string

const (
	OAI Classification = "OAI" // Official Action Indicated
	VAI Classification = "VAI" // Voluntary Action Indicated
	NAI Classification = "NAI" // No Action Indicated
)

var allClassifications = []Classification{OAI, VAI, NAI}

// ClassificationNames maps each tier to its long-form name.
var ClassificationNames = map[Classification]string{
	OAI: "Official Action Indicated",
	VAI: "Voluntary Action Indicated",
	NAI: "No Action Indicated",
}

func ClassificationsAsStringSlice() []string {
	result := make([]string, len(allClassifications))
	for i, c := range allClassifications {
		result[i] = string(c)
	}
	return result
}

func (c Classification) Valid() bool {
	switch c {
	case OAI, VAI, NAI:
		return true
	}
	return false
}

// UnmarshalJSON accepts the tier code or its long-form name and rejects
// anything else.
func (c *Classification) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := CanonicalizeClassification(s)
	if !ok {
		return fmt.Errorf("invalid classification %q, expected one of %s", s, strings.Join(ClassificationsAsStringSlice(), ", "))
	}
	*c = v
	return nil
}

// CanonicalizeClassification maps free-form input onto a tier.
func CanonicalizeClassification(input string) (Classification, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	for _, c := range allClassifications {
		if normalized == string(c) {
			return c, true
		}
	}

	for c, name := range ClassificationNames {
		if normalized == strings.ToUpper(name) {
			return c, true
		}
	}

	return "", false
}

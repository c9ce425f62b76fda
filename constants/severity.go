package constants

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is the per-violation severity tier.
type Severity string

const (
	SeverityCritical    Severity = "Critical"
	SeveritySignificant Severity = "Significant"
	SeverityStandard    Severity = "Standard"
)

var allSeverities = []Severity{SeverityCritical, SeveritySignificant, SeverityStandard}

// SeverityActions maps each severity to the action it demands.
var SeverityActions = map[Severity]string{
	SeverityCritical:    "Immediate Action Required",
	SeveritySignificant: "Action Required",
	SeverityStandard:    "Documentation Required",
}

func SeveritiesAsStringSlice() []string {
	result := make([]string, len(allSeverities))
	for i, s := range allSeverities {
		result[i] = string(s)
	}
	return result
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeveritySignificant, SeverityStandard:
		return true
	}
	return false
}

func CanonicalizeSeverity(input string) (Severity, bool) {
	normalized := strings.TrimSpace(input)
	for _, s := range allSeverities {
		if strings.EqualFold(normalized, string(s)) {
			return s, true
		}
	}
	return "", false
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, ok := CanonicalizeSeverity(raw)
	if !ok {
		return fmt.Errorf("invalid severity %q, expected one of %s", raw, strings.Join(SeveritiesAsStringSlice(), ", "))
	}
	*s = v
	return nil
}

// RiskLevel grades a violation's risk in the output record.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

var allRiskLevels = []RiskLevel{RiskHigh, RiskMedium, RiskLow}

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

func (r *RiskLevel) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, level := range allRiskLevels {
		if strings.EqualFold(strings.TrimSpace(raw), string(level)) {
			*r = level
			return nil
		}
	}
	return fmt.Errorf("invalid risk level %q, expected High, Medium or Low", raw)
}

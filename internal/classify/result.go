// Package classify turns a case's segmented observations into the structured
// compliance analysis record.
package classify

import (
	"encoding/json"
	"fmt"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/common"
)

// Violation is one observation's analysis entry.
type Violation struct {
	ObservationNumber int                 `json:"observation_number"`
	Classification    constants.Severity  `json:"classification"`
	ViolationCode     string              `json:"violation_code"`
	Rationale         string              `json:"rationale"`
	RiskLevel         constants.RiskLevel `json:"risk_level"`
	ComplianceProgram string              `json:"compliance_program"`
	IsRepeat          bool                `json:"is_repeat"`
	ActionRequired    string              `json:"action_required"`
}

// FollowUpActions buckets recommended actions by horizon.
type FollowUpActions struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

type RiskPrioritization struct {
	HighPriorityElements    []string `json:"high_priority_elements"`
	RegulatoryMeetingTopics []string `json:"regulatory_meeting_topics"`
}

type DocumentationRequirements struct {
	FACTSSystemEntries      []string `json:"facts_system_entries"`
	EnforcementCoordination []string `json:"enforcement_coordination"`
}

// Metadata is the provenance block stamped onto every successful record.
type Metadata struct {
	ProcessedDate    string `json:"processed_date"`
	ModelUsed        string `json:"model_used"`
	Firm             string `json:"firm"`
	FEI              string `json:"fei"`
	ObservationCount int    `json:"observation_count"`
}

// Result is the full analysis record for one Form 483 case.
type Result struct {
	OverallClassification       constants.Classification  `json:"overall_classification"`
	ClassificationJustification string                    `json:"classification_justification"`
	RelevantCompliancePrograms  []string                  `json:"relevant_compliance_programs"`
	Violations                  []Violation               `json:"violations"`
	FollowUpActions             FollowUpActions           `json:"follow_up_actions"`
	RiskPrioritization          RiskPrioritization        `json:"risk_prioritization"`
	DocumentationRequirements   DocumentationRequirements `json:"documentation_requirements"`
	Metadata                    *Metadata                 `json:"metadata,omitempty"`
}

// Decode parses a model response into a Result. The enum fields reject values
// outside their sets, and the overall classification plus each violation's
// severity and risk level must be present.
func Decode(raw []byte) (Result, error) {
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, common.NewAppError("CLASSIFY_DECODE_ERROR", fmt.Sprintf("parse analysis: %v", err), common.ErrExtraction)
	}
	if !res.OverallClassification.Valid() {
		return Result{}, common.NewAppError("CLASSIFY_DECODE_ERROR", "analysis is missing overall_classification", common.ErrExtraction)
	}
	for i, v := range res.Violations {
		if !v.Classification.Valid() || !v.RiskLevel.Valid() {
			return Result{}, common.NewAppError("CLASSIFY_DECODE_ERROR",
				fmt.Sprintf("violation %d is missing classification or risk_level", i), common.ErrExtraction)
		}
	}
	return res, nil
}

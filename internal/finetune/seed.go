package finetune

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/classify"
	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/observation"
)

// SeedExample returns a fully-worked labeled case demonstrating the shape a
// labeled-data file must have.
func SeedExample() Example {
	return Example{
		FirmInfo: firm.Info{Firm: "RC Outsourcing, LLC", FEI: "3012345678"},
		Observations: []observation.Observation{
			{Number: 1, Content: "Failure Investigation Deficiencies: Sterility failure of Avastin® with inadequate investigation scope"},
			{Number: 2, Content: "Environmental Monitoring Deficiencies: Inadequate environmental monitoring in sterile processing areas"},
			{Number: 3, Content: "Trend Investigation Failure: 43 instances of microbial recovery without investigation"},
			{Number: 4, Content: "Sterile Processing Contamination: Direct contamination risk during sterile processing (Repeat Violation)"},
		},
		ExpectedOutput: classify.Result{
			OverallClassification:       constants.OAI,
			ClassificationJustification: "This inspection would clearly result in OAI classification due to the severity and nature of violations, particularly involving sterile drug products.",
			RelevantCompliancePrograms:  []string{"7356.002", "7356.008", "7346.832"},
			Violations: []classify.Violation{
				{
					ObservationNumber: 1,
					Classification:    constants.SeverityCritical,
					ViolationCode:     "21 CFR 211.192",
					Rationale:         "Sterility failure of Avastin® with inadequate investigation scope",
					RiskLevel:         constants.RiskHigh,
					ComplianceProgram: "7346.832",
					ActionRequired:    "Immediate corrective action required, potential product recall consideration",
				},
				{
					ObservationNumber: 2,
					Classification:    constants.SeveritySignificant,
					ViolationCode:     "21 CFR 211.42",
					Rationale:         "Inadequate environmental monitoring in sterile processing areas",
					RiskLevel:         constants.RiskHigh,
					ComplianceProgram: "7346.832",
					IsRepeat:          true,
					ActionRequired:    "Enhanced environmental monitoring program implementation",
				},
				{
					ObservationNumber: 3,
					Classification:    constants.SeveritySignificant,
					ViolationCode:     "21 CFR 211.192",
					Rationale:         "43 instances of microbial recovery without investigation",
					RiskLevel:         constants.RiskHigh,
					ComplianceProgram: "7356.002",
					ActionRequired:    "Comprehensive trend analysis and investigation procedures",
				},
				{
					ObservationNumber: 4,
					Classification:    constants.SeverityCritical,
					ViolationCode:     "21 CFR 211.113",
					Rationale:         "Direct contamination risk during sterile processing",
					RiskLevel:         constants.RiskHigh,
					ComplianceProgram: "7346.832",
					IsRepeat:          true,
					ActionRequired:    "Enhanced regulatory response due to repeat nature",
				},
			},
			FollowUpActions: classify.FollowUpActions{
				Immediate: []string{
					"Regulatory Meeting: Required due to sterility failures and repeat violations",
					"Response Letter: Facility must provide comprehensive corrective action plan",
					"Product Assessment: Review distribution of affected lots, potential recall evaluation",
				},
				ShortTerm: []string{
					"Warning Letter: Likely issuance due to OAI classification and repeat violations",
					"Enhanced Surveillance: Increased inspection frequency",
					"Import Alert Consideration: If products distributed interstate",
				},
				LongTerm: []string{
					"Follow-Up Inspection: Required to verify corrective action implementation",
					"Compliance Verification: Focus on sterile processing and environmental monitoring",
					"Escalation Assessment: Potential enforcement escalation if violations persist",
				},
			},
			RiskPrioritization: classify.RiskPrioritization{
				HighPriorityElements: []string{
					"Sterile Product Contamination: Direct patient safety impact",
					"Repeat Violations: Indicates systemic compliance failures",
					"Investigation Inadequacies: Compromises quality system integrity",
				},
				RegulatoryMeetingTopics: []string{
					"Comprehensive investigation of all lots processed by affected technician",
					"Environmental monitoring program redesign",
					"Personnel training and qualification verification",
					"Quality system effectiveness assessment",
				},
			},
			DocumentationRequirements: classify.DocumentationRequirements{
				FACTSSystemEntries: []string{
					"OAI classification with specific violation codes",
					"Repeat violation flags for Observations 2 and 4",
					"Risk assessment scores reflecting sterile product concerns",
					"Follow-up inspection scheduling within 6 months",
				},
				EnforcementCoordination: []string{
					"Office of Compliance notification for Warning Letter preparation",
					"Center for Drug Evaluation and Research (CDER) consultation",
					"State board of pharmacy notification (compounding facility)",
				},
			},
		},
	}
}

// WriteSeed writes the example labeled-data file.
func WriteSeed(path string) error {
	data, err := json.MarshalIndent([]Example{SeedExample()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seed example: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write seed example %s: %w", path, err)
	}
	return nil
}

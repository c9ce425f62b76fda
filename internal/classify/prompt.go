package classify

import (
	"fmt"
	"strings"

	"github.com/complianceworks/fda483/internal/firm"
	"github.com/complianceworks/fda483/internal/observation"
)

// SystemPrompt pins the analysis persona for classification calls.
const SystemPrompt = "You are an FDA compliance expert. Always respond with valid JSON only."

const classifyPromptTemplate = `You are an FDA compliance expert analyzing Form 483 inspection observations.

Firm Information:
- Firm Name: %s
- FEI: %s
- Form Type: 483

Observations:
%s

Based on these observations, provide a comprehensive analysis in JSON format with the following structure:

{
    "overall_classification": "OAI" | "VAI" | "NAI",
    "classification_justification": "Detailed explanation of why this classification was assigned",
    "relevant_compliance_programs": ["7356.002", "7356.008", ...],
    "violations": [
        {
            "observation_number": 1,
            "classification": "Critical" | "Significant" | "Standard",
            "violation_code": "21 CFR 211.xxx or applicable regulation",
            "rationale": "Explanation of violation classification",
            "risk_level": "High" | "Medium" | "Low",
            "compliance_program": "7356.002",
            "is_repeat": false,
            "action_required": "Description of required action"
        }
    ],
    "follow_up_actions": {
        "immediate": ["Action 1", "Action 2"],
        "short_term": ["Action 1", "Action 2"],
        "long_term": ["Action 1", "Action 2"]
    },
    "risk_prioritization": {
        "high_priority_elements": ["Element 1", "Element 2"],
        "regulatory_meeting_topics": ["Topic 1", "Topic 2"]
    },
    "documentation_requirements": {
        "facts_system_entries": ["Entry 1", "Entry 2"],
        "enforcement_coordination": ["Coordination 1", "Coordination 2"]
    }
}

Classification Guidelines:
- OAI (Official Action Indicated): Critical violations, repeat violations, systemic failures, patient safety risks
- VAI (Voluntary Action Indicated): Significant violations that require corrective action but don't pose immediate risk
- NAI (No Action Indicated): Minor violations or no significant issues found

Violation Classification:
- Critical: Sterile product contamination, immediate patient safety risks, failure investigations
- Significant: Environmental monitoring issues, trend analysis failures, quality system deficiencies
- Standard: Documentation issues, laboratory procedures, minor cGMP violations

Return ONLY valid JSON, no additional text.`

// BuildPrompt renders the analysis prompt for one case. The finetune dataset
// builder reuses this rendering so training examples match live traffic.
func BuildPrompt(observations []observation.Observation, info firm.Info) string {
	var b strings.Builder
	for i, obs := range observations {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Observation %d: %s", obs.Number, obs.Content)
	}
	return fmt.Sprintf(classifyPromptTemplate, info.Firm, info.FEI, b.String())
}

package constants

// CompliancePrograms maps FDA compliance program codes to their names.
var CompliancePrograms = map[string]string{
	"7356.002": "Drug Manufacturing Inspections",
	"7356.008": "Compounding Pharmacy Inspections",
	"7346.832": "Sterile Drug Products",
	"7356.014": "Drug Quality Assurance",
	"7356.001": "Drug GMP Inspections",
	"7356.003": "Active Pharmaceutical Ingredient (API) Inspections",
	"7346.844": "Non-Sterile Drug Products",
	"7356.009": "Human Drug Outlets",
}

// ProgramName returns the long-form name for a program code.
func ProgramName(code string) (string, bool) {
	name, ok := CompliancePrograms[code]
	return name, ok
}

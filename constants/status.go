package constants

// CaseStatus is the canonical state of a case inside a batch run.
type CaseStatus string

// Stable values (these exact strings appear in batch summaries and logs).
const (
	CasePending       CaseStatus = "PENDING"        // queued for processing
	CaseTextExtracted CaseStatus = "TEXT_EXTRACTED" // stage 1 completed (text extracted)
	CaseClassified    CaseStatus = "CLASSIFIED"     // stage 2 completed (record built)
	CaseSuccess       CaseStatus = "SUCCESS"        // record persisted
	CaseError         CaseStatus = "ERROR"          // terminal failure
)

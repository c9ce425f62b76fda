package constants

// Sentinel values used at the JSON boundary for absent firm identity. Internal
// code represents absence with an empty string and converts only when
// serializing or reading serialized records.
const (
	UnknownFirm = "Unknown"
	NoFEI       = "N/A"
)

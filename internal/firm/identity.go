// Package firm resolves the firm name and FEI number for a Form 483 case.
// Resolution walks a tiered fallback chain per field: caller hint, metadata
// feed, label-anchored text patterns, then a single LLM extraction shared by
// both fields. A field that resolves at one tier is never revisited by a
// later one.
package firm

import "github.com/complianceworks/fda483/constants"

// Identity is the internal representation of a case's firm identity. An empty
// field means unresolved; the sentinel strings appear only in serialized form.
type Identity struct {
	Name string
	FEI  string
}

// Info is the serialized shape of an Identity, with absent fields replaced by
// the sentinel values downstream consumers expect.
type Info struct {
	Firm string `json:"firm"`
	FEI  string `json:"fei"`
}

// Resolved reports whether both fields carry a value.
func (id Identity) Resolved() bool {
	return id.Name != "" && id.FEI != ""
}

// Export converts to the serialized shape, substituting sentinels for absent
// fields.
func (id Identity) Export() Info {
	info := Info{Firm: id.Name, FEI: id.FEI}
	if info.Firm == "" {
		info.Firm = constants.UnknownFirm
	}
	if info.FEI == "" {
		info.FEI = constants.NoFEI
	}
	return info
}

// FromInfo converts a serialized Info back to the internal representation,
// mapping sentinels to absence.
func FromInfo(info Info) Identity {
	var id Identity
	if info.Firm != "" && info.Firm != constants.UnknownFirm {
		id.Name = info.Firm
	}
	if info.FEI != "" && info.FEI != constants.NoFEI {
		id.FEI = info.FEI
	}
	return id
}

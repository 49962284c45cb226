package tablerecon

// Table represents one table parsed from an annotated-text document,
// reduced to the content fingerprint used for matching.
type Table struct {
	ID        string              // document-order label, lower-cased (e.g. "t001")
	PlainText string              // tag-stripped, whitespace-collapsed cell content
	NGrams    map[string]struct{} // fixed-length substrings of the compacted text
	RowCount  int                 // maximum row ordinal seen inside the span
}

// gapIndex marks the absent side of an aligned pair.
const gapIndex = -1

// AlignedPair is one element of the global alignment: a matched pair of
// list indices, or a gap on exactly one side.
type AlignedPair struct {
	SourceIndex int // index into the source table list, or gapIndex
	TargetIndex int // index into the target table list, or gapIndex
}

// HasSource reports whether the source side is present.
func (p AlignedPair) HasSource() bool {
	return p.SourceIndex != gapIndex
}

// HasTarget reports whether the target side is present.
func (p AlignedPair) HasTarget() bool {
	return p.TargetIndex != gapIndex
}

// MatchStatus classifies one aligned pair.
type MatchStatus string

const (
	StatusMatch           MatchStatus = "MATCH"
	StatusWeakMatch       MatchStatus = "WEAK_MATCH"
	StatusMissingInTarget MatchStatus = "MISSING_IN_TARGET"
	StatusExtraInTarget   MatchStatus = "EXTRA_IN_TARGET"
)

// MappingRow is one classified row of the alignment report.
// Similarity and PositionDelta are meaningful only when the status is
// MATCH or WEAK_MATCH; gap rows leave them at zero.
type MappingRow struct {
	SourceOrder   int     // 1-based position in the source list, 0 when gapped
	SourceID      string  // empty when gapped
	TargetOrder   int     // 1-based position in the target list, 0 when gapped
	TargetID      string  // empty when gapped
	Similarity    float64 // raw Jaccard, rounded to 3 decimals
	PositionDelta int     // |sourceIndex - targetIndex|
	Status        MatchStatus
}

// IsGap reports whether the row represents an unmatched table.
func (r MappingRow) IsGap() bool {
	return r.Status == StatusMissingInTarget || r.Status == StatusExtraInTarget
}

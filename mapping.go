package tablerecon

// ClassifyPairs turns aligned pairs into classified mapping rows.
// A matched pair is MATCH when its raw similarity meets the threshold
// (inclusive) and WEAK_MATCH otherwise; the threshold is a policy knob,
// not a physical constant. Gap pairs become MISSING_IN_TARGET or
// EXTRA_IN_TARGET. A paired row with zero raw similarity shares no
// content at all — the aligner only paired it because two gaps cost
// more than a free diagonal — so it degrades into a missing row and an
// extra row instead of a meaningless weak match.
func ClassifyPairs(source, target []Table, pairs []AlignedPair, similarity [][]float64, threshold float64) []MappingRow {
	rows := make([]MappingRow, 0, len(pairs))

	for _, pair := range pairs {
		switch {
		case pair.HasSource() && pair.HasTarget():
			sim := similarity[pair.SourceIndex][pair.TargetIndex]
			if sim == 0 {
				rows = append(rows,
					missingRow(source, pair.SourceIndex),
					extraRow(target, pair.TargetIndex))
				continue
			}

			row := MappingRow{
				SourceOrder:   pair.SourceIndex + 1,
				SourceID:      source[pair.SourceIndex].ID,
				TargetOrder:   pair.TargetIndex + 1,
				TargetID:      target[pair.TargetIndex].ID,
				Similarity:    roundTo3(sim),
				PositionDelta: absInt(pair.SourceIndex - pair.TargetIndex),
				Status:        StatusWeakMatch,
			}
			if sim >= threshold {
				row.Status = StatusMatch
			}
			rows = append(rows, row)

		case pair.HasSource():
			rows = append(rows, missingRow(source, pair.SourceIndex))

		default:
			rows = append(rows, extraRow(target, pair.TargetIndex))
		}
	}

	return rows
}

// missingRow builds the row for a source table absent from the target.
func missingRow(source []Table, index int) MappingRow {
	return MappingRow{
		SourceOrder: index + 1,
		SourceID:    source[index].ID,
		Status:      StatusMissingInTarget,
	}
}

// extraRow builds the row for a target table absent from the source.
func extraRow(target []Table, index int) MappingRow {
	return MappingRow{
		TargetOrder: index + 1,
		TargetID:    target[index].ID,
		Status:      StatusExtraInTarget,
	}
}

// MatchMap builds the minimal source→target ID map from classified
// rows. Only MATCH rows contribute: weak matches are reported for
// visibility but kept out of the authoritative map so low-confidence
// correspondences never propagate downstream.
func MatchMap(rows []MappingRow) map[string]string {
	mapping := make(map[string]string)
	for _, row := range rows {
		if row.Status == StatusMatch {
			mapping[row.SourceID] = row.TargetID
		}
	}
	return mapping
}

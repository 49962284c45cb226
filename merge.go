package tablerecon

import "sort"

// MergeScorer decides whether two vertically stacked fragments are one
// wrapped cell or two distinct rows, as a weighted linear combination
// of the registered features.
type MergeScorer struct {
	features  []Feature
	weights   map[string]float64
	threshold float64
}

// NewMergeScorer builds a scorer with the default feature set and the
// weights and thresholds of the given configuration.
func NewMergeScorer(config PdfTableConfig) *MergeScorer {
	return &MergeScorer{
		features:  defaultFeatures(config),
		weights:   config.Weights,
		threshold: config.MergeScoreThreshold,
	}
}

// Score computes the weighted feature sum for a candidate pair.
// Features without a configured weight contribute nothing.
func (s *MergeScorer) Score(upper, lower Cell, ctx *PageContext) float64 {
	total := 0.0
	for _, feature := range s.features {
		weight, ok := s.weights[feature.Name()]
		if !ok || weight == 0 {
			continue
		}
		total += weight * feature.Score(upper, lower, ctx)
	}
	return total
}

// ShouldMerge reports whether the candidate pair meets the merge
// threshold (inclusive).
func (s *MergeScorer) ShouldMerge(upper, lower Cell, ctx *PageContext) bool {
	return s.Score(upper, lower, ctx) >= s.threshold
}

// Candidates scores every column-aligned, row-adjacent pair of cells
// and returns the pairs that meet the merge threshold, ordered by
// descending score for greedy consumption. Equal scores order by the
// upper cell's row, then column, so output is deterministic.
func (s *MergeScorer) Candidates(cells []Cell, ctx *PageContext) []MergeCandidate {
	var candidates []MergeCandidate

	for _, upper := range cells {
		for _, lower := range cells {
			if lower.RowIndex != upper.RowIndex+1 || lower.ColIndex != upper.ColIndex {
				continue
			}
			score := s.Score(upper, lower, ctx)
			if score < s.threshold {
				continue
			}
			candidates = append(candidates, MergeCandidate{
				Upper: upper,
				Lower: lower,
				Score: score,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].Upper.RowIndex != candidates[j].Upper.RowIndex {
			return candidates[i].Upper.RowIndex < candidates[j].Upper.RowIndex
		}
		return candidates[i].Upper.ColIndex < candidates[j].Upper.ColIndex
	})

	return candidates
}

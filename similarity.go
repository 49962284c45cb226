package tablerecon

// Jaccard computes |A∩B| / |A∪B| for two n-gram sets. An empty set on
// either side yields 0 rather than a division error.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// Iterate the smaller set.
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	intersection := 0
	for gram := range small {
		if _, ok := large[gram]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// SimilarityMatrix computes the n×m raw Jaccard similarity between two
// table lists.
func SimilarityMatrix(source, target []Table) [][]float64 {
	matrix := make([][]float64, len(source))
	for i := range source {
		matrix[i] = make([]float64, len(target))
		for j := range target {
			matrix[i][j] = Jaccard(source[i].NGrams, target[j].NGrams)
		}
	}
	return matrix
}

// applyPositionalPrior subtracts a small penalty proportional to the
// normalized index distance. Tables are expected to appear in roughly
// the same relative order in both extractions, so the prior breaks ties
// between textually similar tables far apart in the sequence. The
// subtraction is bounded by weight, small against a confident content
// match.
func applyPositionalPrior(similarity [][]float64, weight float64) [][]float64 {
	n := len(similarity)
	if n == 0 {
		return nil
	}
	m := len(similarity[0])
	span := float64(maxInt(n, m))

	scored := make([][]float64, n)
	for i := range similarity {
		scored[i] = make([]float64, m)
		for j := range similarity[i] {
			distance := float64(absInt(i-j)) / span
			scored[i][j] = similarity[i][j] - weight*distance
		}
	}
	return scored
}

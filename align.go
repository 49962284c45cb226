package tablerecon

// Traceback directions for the alignment matrix.
const (
	ptrDiag = byte(iota)
	ptrUp
	ptrLeft
)

// AlignSequences runs Needleman–Wunsch global alignment over the n×m
// score matrix, charging a uniform gap penalty for skipping a table on
// either side. Dimensions are explicit so an empty list on one side
// still yields gap pairs for the other. Ties break diagonal > up >
// left, so an exact tie prefers a match over a gap. O(n·m) time and
// space; table counts stay in the tens to low hundreds in practice.
func AlignSequences(n, m int, score [][]float64, gapPenalty float64) []AlignedPair {
	dp := make([][]float64, n+1)
	ptr := make([][]byte, n+1)
	for i := 0; i <= n; i++ {
		dp[i] = make([]float64, m+1)
		ptr[i] = make([]byte, m+1)
	}

	for i := 1; i <= n; i++ {
		dp[i][0] = -float64(i) * gapPenalty
		ptr[i][0] = ptrUp
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = -float64(j) * gapPenalty
		ptr[0][j] = ptrLeft
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			best := dp[i-1][j-1] + score[i-1][j-1]
			direction := ptrDiag

			if up := dp[i-1][j] - gapPenalty; up > best {
				best = up
				direction = ptrUp
			}
			if left := dp[i][j-1] - gapPenalty; left > best {
				best = left
				direction = ptrLeft
			}

			dp[i][j] = best
			ptr[i][j] = direction
		}
	}

	// Traceback from (n, m) to (0, 0).
	var reversed []AlignedPair
	i, j := n, m
	for i > 0 || j > 0 {
		switch ptr[i][j] {
		case ptrDiag:
			reversed = append(reversed, AlignedPair{SourceIndex: i - 1, TargetIndex: j - 1})
			i--
			j--
		case ptrUp:
			reversed = append(reversed, AlignedPair{SourceIndex: i - 1, TargetIndex: gapIndex})
			i--
		default:
			reversed = append(reversed, AlignedPair{SourceIndex: gapIndex, TargetIndex: j - 1})
			j--
		}
	}

	pairs := make([]AlignedPair, 0, len(reversed))
	for k := len(reversed) - 1; k >= 0; k-- {
		pairs = append(pairs, reversed[k])
	}
	return pairs
}

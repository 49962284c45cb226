package tablerecon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignSequences_Identity(t *testing.T) {
	score := [][]float64{
		{1.0, 0.0, 0.0},
		{0.0, 1.0, 0.0},
		{0.0, 0.0, 1.0},
	}

	pairs := AlignSequences(3, 3, score, 0.08)

	require.Len(t, pairs, 3)
	for i, pair := range pairs {
		assert.Equal(t, i, pair.SourceIndex)
		assert.Equal(t, i, pair.TargetIndex)
	}
}

func TestAlignSequences_MissingInTarget(t *testing.T) {
	// Source has an extra middle element nothing in the target matches.
	score := [][]float64{
		{1.0, 0.1},
		{0.1, 0.1},
		{0.1, 1.0},
	}

	pairs := AlignSequences(3, 2, score, 0.08)

	require.Len(t, pairs, 3)
	assert.Equal(t, AlignedPair{SourceIndex: 0, TargetIndex: 0}, pairs[0])
	assert.Equal(t, AlignedPair{SourceIndex: 1, TargetIndex: gapIndex}, pairs[1])
	assert.Equal(t, AlignedPair{SourceIndex: 2, TargetIndex: 1}, pairs[2])
}

func TestAlignSequences_ExtraInTarget(t *testing.T) {
	score := [][]float64{
		{1.0, 0.1, 0.1},
		{0.1, 0.1, 1.0},
	}

	pairs := AlignSequences(2, 3, score, 0.08)

	require.Len(t, pairs, 3)
	assert.Equal(t, AlignedPair{SourceIndex: 0, TargetIndex: 0}, pairs[0])
	assert.Equal(t, AlignedPair{SourceIndex: gapIndex, TargetIndex: 1}, pairs[1])
	assert.Equal(t, AlignedPair{SourceIndex: 1, TargetIndex: 2}, pairs[2])
}

func TestAlignSequences_NeverCrosses(t *testing.T) {
	// A deliberately adversarial matrix: strong off-order similarities.
	score := [][]float64{
		{0.2, 0.9, 0.1, 0.3},
		{0.9, 0.2, 0.4, 0.1},
		{0.1, 0.3, 0.2, 0.9},
		{0.3, 0.1, 0.9, 0.2},
	}

	pairs := AlignSequences(4, 4, score, 0.08)

	lastTarget := -1
	for _, pair := range pairs {
		if !pair.HasSource() || !pair.HasTarget() {
			continue
		}
		assert.GreaterOrEqual(t, pair.TargetIndex, lastTarget,
			"matched pairs must not cross")
		lastTarget = pair.TargetIndex
	}
}

func TestAlignSequences_TiePrefersMatch(t *testing.T) {
	// With a single zero-score pair, the diagonal (score 0) strictly
	// beats two gaps (-0.16), and on an exact tie the diagonal still
	// wins by the diag > up > left ordering.
	pairs := AlignSequences(1, 1, [][]float64{{0.0}}, 0.0)

	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].HasSource())
	assert.True(t, pairs[0].HasTarget())
}

func TestAlignSequences_EmptySource(t *testing.T) {
	pairs := AlignSequences(0, 2, nil, 0.08)

	require.Len(t, pairs, 2)
	assert.Equal(t, AlignedPair{SourceIndex: gapIndex, TargetIndex: 0}, pairs[0])
	assert.Equal(t, AlignedPair{SourceIndex: gapIndex, TargetIndex: 1}, pairs[1])
}

func TestAlignSequences_EmptyTarget(t *testing.T) {
	pairs := AlignSequences(2, 0, [][]float64{{}, {}}, 0.08)

	require.Len(t, pairs, 2)
	assert.Equal(t, AlignedPair{SourceIndex: 0, TargetIndex: gapIndex}, pairs[0])
	assert.Equal(t, AlignedPair{SourceIndex: 1, TargetIndex: gapIndex}, pairs[1])
}

func TestAlignSequences_BothEmpty(t *testing.T) {
	assert.Empty(t, AlignSequences(0, 0, nil, 0.08))
}

package tablerecon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTables() ([]Table, []Table) {
	source := []Table{{ID: "t001"}, {ID: "t002"}}
	target := []Table{{ID: "t001"}, {ID: "t002"}}
	return source, target
}

func TestClassifyPairs_ThresholdInclusive(t *testing.T) {
	source, target := twoTables()
	pairs := []AlignedPair{{SourceIndex: 0, TargetIndex: 0}, {SourceIndex: 1, TargetIndex: 1}}
	similarity := [][]float64{
		{0.2, 0},
		{0, 0.199},
	}

	rows := ClassifyPairs(source, target, pairs, similarity, 0.2)

	require.Len(t, rows, 2)
	assert.Equal(t, StatusMatch, rows[0].Status, "similarity exactly at the threshold is a MATCH")
	assert.Equal(t, StatusWeakMatch, rows[1].Status)
	assert.InDelta(t, 0.199, rows[1].Similarity, 1e-12)
}

func TestClassifyPairs_Rounding(t *testing.T) {
	source, target := twoTables()
	pairs := []AlignedPair{{SourceIndex: 0, TargetIndex: 0}}
	similarity := [][]float64{{0.6666666}, {0, 0}}

	rows := ClassifyPairs(source, target, pairs, similarity, 0.2)

	require.Len(t, rows, 1)
	assert.Equal(t, 0.667, rows[0].Similarity)
}

func TestClassifyPairs_Gaps(t *testing.T) {
	source := []Table{{ID: "t001"}}
	target := []Table{{ID: "t009"}}
	pairs := []AlignedPair{
		{SourceIndex: 0, TargetIndex: gapIndex},
		{SourceIndex: gapIndex, TargetIndex: 0},
	}

	rows := ClassifyPairs(source, target, pairs, nil, 0.2)

	require.Len(t, rows, 2)
	assert.Equal(t, MappingRow{SourceOrder: 1, SourceID: "t001", Status: StatusMissingInTarget}, rows[0])
	assert.Equal(t, MappingRow{TargetOrder: 1, TargetID: "t009", Status: StatusExtraInTarget}, rows[1])
}

func TestClassifyPairs_ZeroSimilarityDegrades(t *testing.T) {
	// A paired row sharing no content at all carries no evidence of
	// correspondence; it reports as one missing and one extra table.
	source := []Table{{ID: "t003"}}
	target := []Table{{ID: "tx"}}
	pairs := []AlignedPair{{SourceIndex: 0, TargetIndex: 0}}
	similarity := [][]float64{{0}}

	rows := ClassifyPairs(source, target, pairs, similarity, 0.2)

	require.Len(t, rows, 2)
	assert.Equal(t, StatusMissingInTarget, rows[0].Status)
	assert.Equal(t, "t003", rows[0].SourceID)
	assert.Equal(t, StatusExtraInTarget, rows[1].Status)
	assert.Equal(t, "tx", rows[1].TargetID)
}

func TestClassifyPairs_PositionDelta(t *testing.T) {
	source := []Table{{ID: "t001"}, {ID: "t002"}}
	target := []Table{{ID: "t002"}}
	pairs := []AlignedPair{{SourceIndex: 1, TargetIndex: 0}}
	similarity := [][]float64{{0}, {0.9}}

	rows := ClassifyPairs(source, target, pairs, similarity, 0.2)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].PositionDelta)
	assert.Equal(t, 2, rows[0].SourceOrder)
	assert.Equal(t, 1, rows[0].TargetOrder)
}

func TestMatchMap_ExcludesWeakAndGaps(t *testing.T) {
	rows := []MappingRow{
		{SourceID: "t001", TargetID: "t001", Status: StatusMatch},
		{SourceID: "t002", TargetID: "t004", Status: StatusWeakMatch},
		{SourceID: "t003", Status: StatusMissingInTarget},
		{TargetID: "t005", Status: StatusExtraInTarget},
	}

	mapping := MatchMap(rows)

	assert.Equal(t, map[string]string{"t001": "t001"}, mapping)
}

func TestMatchMap_Empty(t *testing.T) {
	assert.Empty(t, MatchMap(nil))
	assert.NotNil(t, MatchMap(nil))
}

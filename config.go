package tablerecon

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Feature names, used as weight keys in configuration documents.
const (
	FeatureNoHLineBetween    = "NoHLineBetween"
	FeatureEdgeAlignSim      = "EdgeAlignSim"
	FeatureBaselineGapKernel = "BaselineGapKernel"
	FeatureRowRplus1Empty    = "RowRplus1Empty"
	FeatureStyleMatch        = "StyleMatch"
)

// PdfTableConfig holds the thresholds and feature weights of the
// cell-merge scorer. Immutable once loaded; concurrent readers need no
// synchronization.
type PdfTableConfig struct {
	// MergeScoreThreshold is the minimum weighted score (inclusive)
	// for a candidate pair to be a merge.
	MergeScoreThreshold float64 `json:"MERGE_SCORE_THRESHOLD"`

	// EdgeAlignTolPt is the tolerance band, in points, for left/right
	// edge alignment between stacked cells.
	EdgeAlignTolPt float64 `json:"EDGE_ALIGN_TOL_PT"`

	// HLineTolPt is the vertical tolerance, in points, when probing
	// for a horizontal ruling between two cells.
	HLineTolPt float64 `json:"H_LINE_TOL_PT"`

	// BaselineGapEmMin/Max bound the baseline gap band, in em units,
	// inside which a wrapped continuation is most plausible.
	BaselineGapEmMin float64 `json:"BASELINE_GAP_EM_MIN"`
	BaselineGapEmMax float64 `json:"BASELINE_GAP_EM_MAX"`

	// RowEmptyRatio is the sibling-empty fraction at which the
	// RowRplus1Empty feature saturates.
	RowEmptyRatio float64 `json:"ROW_EMPTY_RATIO"`

	// Weights maps feature name to its weight in the linear score.
	Weights map[string]float64 `json:"weights"`
}

// DefaultPdfTableConfig returns the built-in scorer configuration.
func DefaultPdfTableConfig() PdfTableConfig {
	return PdfTableConfig{
		MergeScoreThreshold: 0.80,
		EdgeAlignTolPt:      5.0,
		HLineTolPt:          3.0,
		BaselineGapEmMin:    1.0,
		BaselineGapEmMax:    2.0,
		RowEmptyRatio:       0.75,
		Weights: map[string]float64{
			FeatureNoHLineBetween:    1.00,
			FeatureEdgeAlignSim:      0.80,
			FeatureBaselineGapKernel: 0.60,
			FeatureRowRplus1Empty:    0.50,
			FeatureStyleMatch:        0.30,
		},
	}
}

// ParsePdfTableConfig merges a JSON override document into the
// defaults. Any field absent from the document keeps its built-in
// value; weights merge per feature name. A malformed document leaves
// the defaults fully intact and returns a diagnostic.
func ParsePdfTableConfig(data []byte) (PdfTableConfig, error) {
	config := DefaultPdfTableConfig()
	if err := sonic.Unmarshal(data, &config); err != nil {
		return DefaultPdfTableConfig(), errors.Wrap(err, "malformed scorer config, using defaults")
	}
	return config, nil
}

// LoadPdfTableConfig loads a JSON override document from disk and
// merges it into the defaults. The returned config is always usable:
// an unreadable or malformed document falls back to the defaults, with
// the failure reported through the error return rather than aborting.
func LoadPdfTableConfig(path string) (PdfTableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPdfTableConfig(), errors.Wrapf(err, "failed to read scorer config %s, using defaults", path)
	}
	return ParsePdfTableConfig(data)
}

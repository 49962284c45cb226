package tablerecon

import "math"

// Feature is one named, independently testable signal over a candidate
// pair of vertically stacked cells. Scores are in [0, 1], where 1 means
// the pair looks like a single wrapped cell.
type Feature interface {
	Name() string
	Score(upper, lower Cell, ctx *PageContext) float64
}

// defaultFeatures builds the registered feature set with tolerances
// from the given configuration. Adding a feature means registering an
// implementation here and a default weight in DefaultPdfTableConfig.
func defaultFeatures(config PdfTableConfig) []Feature {
	return []Feature{
		noHLineBetween{tolerance: config.HLineTolPt},
		edgeAlignSim{tolerance: config.EdgeAlignTolPt},
		baselineGapKernel{emMin: config.BaselineGapEmMin, emMax: config.BaselineGapEmMax},
		rowRplus1Empty{saturation: config.RowEmptyRatio},
		styleMatch{},
	}
}

// noHLineBetween scores the absence of a horizontal ruling between the
// two cells' facing edges. A ruling separating them is strong evidence
// of a genuine row boundary.
type noHLineBetween struct {
	tolerance float64 // vertical probe tolerance in points
}

func (f noHLineBetween) Name() string { return FeatureNoHLineBetween }

func (f noHLineBetween) Score(upper, lower Cell, ctx *PageContext) float64 {
	span := overlap1D(upper.Left(), upper.Right(), lower.Left(), lower.Right())
	if span.length() <= 0 {
		// No geometric overlap: rule presence is defined as 0.
		return 1
	}

	midY := (upper.Bottom() + lower.Top()) / 2

	var covered []interval
	for _, edge := range ctx.Edges {
		if !edge.IsHorizontal() {
			continue
		}
		if math.Abs(edge.Top-midY) > f.tolerance {
			continue
		}
		overlap := overlap1D(edge.X0, edge.X1, span.lo, span.hi)
		if overlap.length() > 0 {
			covered = append(covered, overlap)
		}
	}

	coverage := clamp(mergeIntervals(covered)/span.length(), 0, 1)
	return 1 - coverage
}

// edgeAlignSim scores how closely the left and right edges of the two
// cells line up. Wrapped continuations inherit their cell's column
// boundaries; unrelated fragments rarely do.
type edgeAlignSim struct {
	tolerance float64 // alignment band in points
}

func (f edgeAlignSim) Name() string { return FeatureEdgeAlignSim }

func (f edgeAlignSim) Score(upper, lower Cell, _ *PageContext) float64 {
	if f.tolerance <= 0 {
		if upper.Left() == lower.Left() && upper.Right() == lower.Right() {
			return 1
		}
		return 0
	}

	leftSim := clamp(1-math.Abs(upper.Left()-lower.Left())/f.tolerance, 0, 1)
	rightSim := clamp(1-math.Abs(upper.Right()-lower.Right())/f.tolerance, 0, 1)
	return (leftSim + rightSim) / 2
}

// baselineGapFalloffEm is the width, in em units, over which the
// baseline gap score decays to zero outside the configured band.
const baselineGapFalloffEm = 0.5

// baselineGapKernel scores the vertical gap between the two baselines,
// normalized to em units so the band is scale-independent. Line
// wrapping within a cell produces a characteristic gap of one to two
// line heights; much tighter or looser gaps suggest other structure.
type baselineGapKernel struct {
	emMin float64
	emMax float64
}

func (f baselineGapKernel) Name() string { return FeatureBaselineGapKernel }

func (f baselineGapKernel) Score(upper, lower Cell, _ *PageContext) float64 {
	fontSize := (upper.FontSize + lower.FontSize) / 2
	if fontSize <= 0 {
		return 0
	}

	gapEm := (lower.Baseline() - upper.Baseline()) / fontSize
	if gapEm <= 0 {
		return 0
	}

	switch {
	case gapEm < f.emMin:
		return clamp(1-(f.emMin-gapEm)/baselineGapFalloffEm, 0, 1)
	case gapEm > f.emMax:
		return clamp(1-(gapEm-f.emMax)/baselineGapFalloffEm, 0, 1)
	default:
		return 1
	}
}

// rowRplus1Empty scores the fraction of other cells in the lower
// cell's row that are empty. A genuine new row usually has content in
// sibling columns; a wrapped continuation leaves them blank.
type rowRplus1Empty struct {
	saturation float64 // empty fraction at which the score reaches 1
}

func (f rowRplus1Empty) Name() string { return FeatureRowRplus1Empty }

func (f rowRplus1Empty) Score(_, lower Cell, ctx *PageContext) float64 {
	siblings := ctx.RowCells(lower.RowIndex, lower.ColIndex)
	if len(siblings) == 0 {
		// Single-column row: no counter-evidence against a wrap.
		return 1
	}

	empty := 0
	for _, cell := range siblings {
		if cell.IsEmpty() {
			empty++
		}
	}
	ratio := float64(empty) / float64(len(siblings))

	if f.saturation <= 0 {
		return ratio
	}
	return clamp(ratio/f.saturation, 0, 1)
}

// styleMatchFontSpanPt is the font-size difference, in points, over
// which the style similarity decays to zero.
const styleMatchFontSpanPt = 2.0

// styleMatch scores typographic consistency: half font-size similarity,
// half rotation equality.
type styleMatch struct{}

func (f styleMatch) Name() string { return FeatureStyleMatch }

func (f styleMatch) Score(upper, lower Cell, _ *PageContext) float64 {
	fontSim := clamp(1-math.Abs(upper.FontSize-lower.FontSize)/styleMatchFontSpanPt, 0, 1)

	rotationEq := 0.0
	if upper.Rotation == lower.Rotation {
		rotationEq = 1
	}

	return 0.5*fontSim + 0.5*rotationEq
}

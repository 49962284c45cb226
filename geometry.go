package tablerecon

// Cell is a geometric text fragment detected on a page by the external
// layout detector. Coordinates are page points with the origin at the
// top-left corner, Y increasing downwards.
type Cell struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
	Rotation float64 `json:"rotation"` // degrees
	RowIndex int     `json:"row"`
	ColIndex int     `json:"col"`
}

// Left returns the left edge X coordinate.
func (c Cell) Left() float64 {
	return c.X
}

// Right returns the right edge X coordinate.
func (c Cell) Right() float64 {
	return c.X + c.Width
}

// Top returns the top edge Y coordinate.
func (c Cell) Top() float64 {
	return c.Y
}

// Bottom returns the bottom edge Y coordinate.
func (c Cell) Bottom() float64 {
	return c.Y + c.Height
}

// Baseline estimates the Y coordinate of the text baseline.
// For most fonts the baseline sits just above the bounding box bottom;
// descenders account for roughly 15% of the font size.
func (c Cell) Baseline() float64 {
	return c.Bottom() - c.FontSize*0.15
}

// IsEmpty reports whether the cell carries no visible text.
func (c Cell) IsEmpty() bool {
	for _, r := range c.Text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// Edge represents a horizontal or vertical ruling line on a page.
type Edge struct {
	X0          float64 `json:"x0"`
	X1          float64 `json:"x1"`
	Top         float64 `json:"top"`
	Bottom      float64 `json:"bottom"`
	Orientation string  `json:"orientation"` // "h" or "v"
}

// IsHorizontal reports whether the edge is a horizontal ruling.
func (e Edge) IsHorizontal() bool {
	return e.Orientation == "h"
}

// PageContext carries the shared page state the merge features read:
// page dimensions, every detected cell, and every ruling line.
type PageContext struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Cells  []Cell  `json:"cells"`
	Edges  []Edge  `json:"edges"`
}

// RowCells returns the cells in the given row, excluding the given column.
func (p *PageContext) RowCells(rowIndex, excludeCol int) []Cell {
	var cells []Cell
	for _, c := range p.Cells {
		if c.RowIndex == rowIndex && c.ColIndex != excludeCol {
			cells = append(cells, c)
		}
	}
	return cells
}

// MergeCandidate proposes fusing two vertically adjacent fragments into
// one logical cell. Candidates are consumed greedily in descending
// score order by the table builder.
type MergeCandidate struct {
	Upper Cell    `json:"upper"`
	Lower Cell    `json:"lower"`
	Score float64 `json:"score"`
}

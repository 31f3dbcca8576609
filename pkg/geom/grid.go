package geom

import "math"

// GridPadding controls the gaps used by [Bounds.Grid].
type GridPadding struct {
	RowPadding    float64 `json:"row_padding"`
	ColumnPadding float64 `json:"column_padding"`
	OuterPadding  float64 `json:"outer_padding"`
}

// Cell is one rectangle of a grid split, tagged with the outer sides it touches.
type Cell struct {
	Bounds Bounds `json:"bounds"`
	Edges  Edges  `json:"edges"`
}

// GridShape returns the column and row count used to place n cells.
func GridShape(n int) (columns, rows int) {
	if n <= 0 {
		return 0, 0
	}
	columns = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + columns - 1) / columns
	return columns, rows
}

// Grid splits b into n equally sized cells in row-major order.
//
// Cells in the first row touch [Top], in the last row [Bottom], in the first
// column [Left] and in the last column [Right]. A single cell touches all
// four sides. n <= 0 yields no cells.
func (b Bounds) Grid(n int, p GridPadding) []Cell {
	columns, rows := GridShape(n)
	if columns == 0 {
		return nil
	}

	inner := b.Pad(Padding{Top: p.OuterPadding, Right: p.OuterPadding, Bottom: p.OuterPadding, Left: p.OuterPadding})
	cellWidth := math.Max(0, (inner.Width-p.ColumnPadding*float64(columns-1))/float64(columns))
	cellHeight := math.Max(0, (inner.Height-p.RowPadding*float64(rows-1))/float64(rows))

	cells := make([]Cell, n)
	for i := range cells {
		column := i % columns
		row := i / columns

		var edges Edges
		if row == 0 {
			edges = edges.With(Top)
		}
		if row == rows-1 {
			edges = edges.With(Bottom)
		}
		if column == 0 {
			edges = edges.With(Left)
		}
		if column == columns-1 {
			edges = edges.With(Right)
		}

		cells[i] = Cell{
			Bounds: Bounds{
				X:      inner.X + float64(column)*(cellWidth+p.ColumnPadding),
				Y:      inner.Y + float64(row)*(cellHeight+p.RowPadding),
				Width:  cellWidth,
				Height: cellHeight,
			},
			Edges: edges,
		}
	}
	return cells
}

package stage

import "math"

// Cell is one grid cell of a TileMap.
type Cell struct {
	X, Y          float64 // world position of the top-left corner
	Width, Height float64
	Index         int
	Solid         bool
	// Graphics are drawn in order at the cell position.
	Graphics []Graphic
}

// Bounds returns the cell rectangle in world coordinates.
func (c *Cell) Bounds() BoundingBox {
	return BoxFromSize(c.X, c.Y, c.Width, c.Height)
}

// Center returns the center point of the cell.
func (c *Cell) Center() Vec2 {
	return Vec2{c.X + c.Width/2, c.Y + c.Height/2}
}

// TileMap is a grid of cells anchored at X, Y. Solid cells act as a static
// partition that the TileMapCollisionDetection trait resolves actors
// against. Cells are stored row-major.
type TileMap struct {
	X, Y       float64
	CellWidth  float64
	CellHeight float64
	Rows, Cols int

	cells []Cell
}

// NewTileMap creates a rows×cols grid with every cell empty and non-solid.
func NewTileMap(x, y, cellWidth, cellHeight float64, rows, cols int) *TileMap {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	tm := &TileMap{
		X: x, Y: y,
		CellWidth: cellWidth, CellHeight: cellHeight,
		Rows: rows, Cols: cols,
		cells: make([]Cell, rows*cols),
	}
	for i := range tm.cells {
		col, row := i%cols, i/cols
		tm.cells[i] = Cell{
			X:      x + float64(col)*cellWidth,
			Y:      y + float64(row)*cellHeight,
			Width:  cellWidth,
			Height: cellHeight,
			Index:  i,
		}
	}
	return tm
}

// Cell returns the cell at (col, row), or nil when out of range.
func (tm *TileMap) Cell(col, row int) *Cell {
	if col < 0 || row < 0 || col >= tm.Cols || row >= tm.Rows {
		return nil
	}
	return &tm.cells[col+row*tm.Cols]
}

// CellByIndex returns the cell at the row-major index, or nil.
func (tm *TileMap) CellByIndex(i int) *Cell {
	if i < 0 || i >= len(tm.cells) {
		return nil
	}
	return &tm.cells[i]
}

// CellByPoint returns the cell containing the world point, or nil.
func (tm *TileMap) CellByPoint(x, y float64) *Cell {
	col := int(math.Floor((x - tm.X) / tm.CellWidth))
	row := int(math.Floor((y - tm.Y) / tm.CellHeight))
	return tm.Cell(col, row)
}

// SetSolid marks the cell at (col, row) solid or clear. Out of range cells
// are ignored.
func (tm *TileMap) SetSolid(col, row int, solid bool) {
	if c := tm.Cell(col, row); c != nil {
		c.Solid = solid
	}
}

// Bounds returns the world rectangle covered by the grid.
func (tm *TileMap) Bounds() BoundingBox {
	return BoxFromSize(tm.X, tm.Y, float64(tm.Cols)*tm.CellWidth, float64(tm.Rows)*tm.CellHeight)
}

// Collides traces points across the actor's collider bounds and returns the
// combined intersection with the solid cells it overlaps, keeping the
// largest x and the largest y component. Only overlaps that oppose the
// actor's movement this frame (positive dot product with OldPos − Pos)
// count. ok is false when nothing qualifies.
func (tm *TileMap) Collides(a *Actor) (Vec2, bool) {
	c := a.Collider()
	if c == nil || a.Body == nil || a.Width <= 0 || a.Height <= 0 {
		return Vec2{}, false
	}
	bounds := c.Bounds()
	dir := a.Body.OldPos.Sub(a.Transform.Pos)

	stepX := math.Min(a.Width/2, tm.CellWidth/2)
	stepY := math.Min(a.Height/2, tm.CellHeight/2)
	if stepX <= 0 || stepY <= 0 {
		return Vec2{}, false
	}

	var result Vec2
	found := false
	for x := bounds.Left; x <= bounds.Right; x += stepX {
		for y := bounds.Top; y <= bounds.Bottom; y += stepY {
			cell := tm.CellByPoint(x, y)
			if cell == nil || !cell.Solid {
				continue
			}
			overlap, ok := bounds.Intersect(cell.Bounds())
			if !ok || overlap.Dot(dir) <= 0 {
				continue
			}
			if !found {
				result, found = overlap, true
				continue
			}
			if math.Abs(result.X) < math.Abs(overlap.X) {
				result.X = overlap.X
			}
			if math.Abs(result.Y) < math.Abs(overlap.Y) {
				result.Y = overlap.Y
			}
		}
	}
	return result, found
}

// Draw draws the graphics of every cell that overlaps view. The context is
// expected to already carry the camera transform.
func (tm *TileMap) Draw(ctx Context, view BoundingBox) {
	for i := range tm.cells {
		cell := &tm.cells[i]
		if len(cell.Graphics) == 0 || !cell.Bounds().Overlaps(view) {
			continue
		}
		for _, g := range cell.Graphics {
			g.Draw(ctx, cell.X, cell.Y)
		}
	}
}

package automaton

import "fmt"

// Address is a (row, column) coordinate that is always inside its grid.
type Address struct {
	Row    int
	Column int
}

func (a Address) String() string {
	return fmt.Sprintf("(%d,%d)", a.Row, a.Column)
}

// Direction selects one of the four cardinal neighbors of a cell.
type Direction int

const (
	Down Direction = iota
	Up
	Right
	Left
)

// Directions lists every Direction in neighbor-table order.
var Directions = [4]Direction{Down, Up, Right, Left}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Cell holds a color and the addresses of its four neighbors. Neighbors are
// fixed at grid construction; only Color changes afterwards.
type Cell struct {
	Color     uint32
	address   Address
	neighbors [4]Address
}

func newCell(row, column, height, width int) Cell {
	return Cell{
		address: Address{Row: row, Column: column},
		neighbors: [4]Address{
			Down:  {Row: (row + 1) % height, Column: column},
			Up:    {Row: (row + height - 1) % height, Column: column},
			Right: {Row: row, Column: (column + 1) % width},
			Left:  {Row: row, Column: (column + width - 1) % width},
		},
	}
}

// Address returns the cell's own coordinate.
func (c *Cell) Address() Address { return c.address }

// Neighbor returns the precomputed address of the neighbor in direction d.
func (c *Cell) Neighbor(d Direction) Address { return c.neighbors[d] }

// Grid is a dense height×width torus of cells stored in row-major order.
type Grid struct {
	height, width int
	cells         []Cell
}

// NewGrid allocates a grid with every color set to zero.
func NewGrid(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}
	cells := make([]Cell, 0, height*width)
	for row := 0; row < height; row++ {
		for column := 0; column < width; column++ {
			cells = append(cells, newCell(row, column, height, width))
		}
	}
	return &Grid{height: height, width: width, cells: cells}, nil
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Len() int    { return len(g.cells) }

// At returns the cell at (row, column). Coordinates outside the grid panic.
func (g *Grid) At(row, column int) *Cell {
	if row < 0 || row >= g.height || column < 0 || column >= g.width {
		panic(fmt.Sprintf("automaton: cell (%d,%d) outside %dx%d grid", row, column, g.height, g.width))
	}
	return &g.cells[row*g.width+column]
}

// Find returns the cell at addr.
func (g *Grid) Find(addr Address) *Cell {
	return g.At(addr.Row, addr.Column)
}

// Neighbor returns the cell adjacent to c in direction d.
func (g *Grid) Neighbor(c *Cell, d Direction) *Cell {
	return g.Find(c.neighbors[d])
}

// SameShape reports whether g and other have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return g.height == other.height && g.width == other.width
}

// CopyColorsFrom overwrites every color in g with the color at the same
// position in src. Topology is untouched and src is only read.
func (g *Grid) CopyColorsFrom(src *Grid) error {
	if !g.SameShape(src) {
		return fmt.Errorf("%w: %dx%d <- %dx%d", ErrDimensionMismatch, g.height, g.width, src.height, src.width)
	}
	for i := range g.cells {
		g.cells[i].Color = src.cells[i].Color
	}
	return nil
}

// Reflect mirrors addr across the grid center: the row when vertical is set,
// the column when horizontal is set.
func (g *Grid) Reflect(addr Address, vertical, horizontal bool) Address {
	if vertical {
		addr.Row = g.height - 1 - addr.Row
	}
	if horizontal {
		addr.Column = g.width - 1 - addr.Column
	}
	return addr
}

// Colors returns a row-major copy of every cell color.
func (g *Grid) Colors() []uint32 {
	out := make([]uint32, len(g.cells))
	for i := range g.cells {
		out[i] = g.cells[i].Color
	}
	return out
}

// SetColors overwrites the grid colors from a row-major slice.
func (g *Grid) SetColors(colors []uint32) error {
	if len(colors) != len(g.cells) {
		return fmt.Errorf("%w: %d colors for %d cells", ErrDimensionMismatch, len(colors), len(g.cells))
	}
	for i := range g.cells {
		g.cells[i].Color = colors[i]
	}
	return nil
}

// Clear sets every color to zero.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].Color = 0
	}
}

// CountNonZero returns the number of cells whose color is not zero.
func (g *Grid) CountNonZero() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Color != 0 {
			n++
		}
	}
	return n
}

// Histogram counts cells per color. Colors at or above modulus are ignored.
func (g *Grid) Histogram(modulus uint32) []int {
	counts := make([]int, modulus)
	for i := range g.cells {
		if c := g.cells[i].Color; c < modulus {
			counts[c]++
		}
	}
	return counts
}

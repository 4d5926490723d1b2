package board

// Life is a double-buffered grid of 0/1 cells advanced by a Rule.
// Not safe for concurrent use; the game loop owns it and publishes Snapshots
type Life struct {
	rows, cols int
	cells      [][]uint8
	next       [][]uint8
	rule       Rule
	wrap       bool

	generation int64
	version    uint64 // bumped on every mutation
}

// NewLife creates an empty board. Non-positive dimensions are raised to 1
func NewLife(rows, cols int, rule Rule, wrap bool) *Life {
	rows = max(rows, 1)
	cols = max(cols, 1)
	return &Life{
		rows:  rows,
		cols:  cols,
		cells: newGrid(rows, cols),
		next:  newGrid(rows, cols),
		rule:  rule,
		wrap:  wrap,
	}
}

func newGrid(rows, cols int) [][]uint8 {
	backing := make([]uint8, rows*cols)
	grid := make([][]uint8, rows)
	for i := range grid {
		grid[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return grid
}

func (l *Life) Rows() int { return l.rows }
func (l *Life) Cols() int { return l.cols }

// Rule returns the active rule
func (l *Life) Rule() Rule { return l.rule }

// Generation returns the number of generations computed since creation
func (l *Life) Generation() int64 { return l.generation }

// Version changes whenever any cell or the generation changes
func (l *Life) Version() uint64 { return l.version }

// Cell returns the cell value and whether (row, col) is on the board
func (l *Life) Cell(row, col int) (uint8, bool) {
	if !l.inBounds(row, col) {
		return 0, false
	}
	return l.cells[row][col], true
}

// SetCell stores v (0 or 1) and reports whether (row, col) is on the board
func (l *Life) SetCell(row, col int, v uint8) bool {
	if !l.inBounds(row, col) {
		return false
	}
	if v != 0 {
		v = 1
	}
	if l.cells[row][col] != v {
		l.cells[row][col] = v
		l.version++
	}
	return true
}

// Alive reports whether (row, col) holds a live cell
func (l *Life) Alive(row, col int) bool {
	v, _ := l.Cell(row, col)
	return v == 1
}

// NextStep advances one generation
func (l *Life) NextStep() {
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			alive := l.cells[r][c] == 1
			if l.rule.Next(alive, l.neighbours(r, c)) {
				l.next[r][c] = 1
			} else {
				l.next[r][c] = 0
			}
		}
	}
	l.cells, l.next = l.next, l.cells
	l.generation++
	l.version++
}

// ClearBoard kills every cell. The generation counter is kept
func (l *Life) ClearBoard() {
	for _, row := range l.cells {
		clear(row)
	}
	l.version++
}

// Population counts live cells
func (l *Life) Population() int {
	n := 0
	for _, row := range l.cells {
		for _, v := range row {
			n += int(v)
		}
	}
	return n
}

// Snapshot copies the board into an immutable value
func (l *Life) Snapshot() Snapshot {
	cells := make([]uint8, 0, l.rows*l.cols)
	for _, row := range l.cells {
		cells = append(cells, row...)
	}
	return Snapshot{
		Rows:       l.rows,
		Cols:       l.cols,
		Generation: l.generation,
		Population: l.Population(),
		Rule:       l.rule.String(),
		Cells:      cells,
	}
}

func (l *Life) inBounds(row, col int) bool {
	return row >= 0 && row < l.rows && col >= 0 && col < l.cols
}

// neighbours counts distinct live cells around (row, col). On a torus
// narrower than 3 in either dimension several offsets wrap onto the same
// cell, or onto the cell itself, and those are counted once or skipped
func (l *Life) neighbours(row, col int) int {
	narrow := l.wrap && (l.rows < 3 || l.cols < 3)
	var seen [8][2]int
	k, n := 0, 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if l.wrap {
				r = (r + l.rows) % l.rows
				c = (c + l.cols) % l.cols
			} else if !l.inBounds(r, c) {
				continue
			}
			if narrow {
				if (r == row && c == col) || counted(seen[:k], r, c) {
					continue
				}
				seen[k] = [2]int{r, c}
				k++
			}
			n += int(l.cells[r][c])
		}
	}
	return n
}

func counted(seen [][2]int, r, c int) bool {
	for _, p := range seen {
		if p[0] == r && p[1] == c {
			return true
		}
	}
	return false
}

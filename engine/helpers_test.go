package engine

import "time"

// fakeBoard is a plain grid board recording step and clear calls
type fakeBoard struct {
	grid   [][]uint8
	steps  int
	clears int
}

func newFakeBoard(rows, cols int) *fakeBoard {
	grid := make([][]uint8, rows)
	for i := range grid {
		grid[i] = make([]uint8, cols)
	}
	return &fakeBoard{grid: grid}
}

func (b *fakeBoard) NextStep() { b.steps++ }
func (b *fakeBoard) ClearBoard() {
	b.clears++
	for _, row := range b.grid {
		clear(row)
	}
}
func (b *fakeBoard) Rows() int { return len(b.grid) }
func (b *fakeBoard) Cols() int {
	if len(b.grid) == 0 {
		return 0
	}
	return len(b.grid[0])
}
func (b *fakeBoard) Cell(row, col int) (uint8, bool) {
	if row < 0 || row >= b.Rows() || col < 0 || col >= b.Cols() {
		return 0, false
	}
	return b.grid[row][col], true
}
func (b *fakeBoard) SetCell(row, col int, v uint8) bool {
	if row < 0 || row >= b.Rows() || col < 0 || col >= b.Cols() {
		return false
	}
	b.grid[row][col] = v
	return true
}

// orderEntity appends its name to a shared log on update and draw
type orderEntity struct {
	BaseEntity
	name string
	log  *[]string
}

func (e *orderEntity) Update() { *e.log = append(*e.log, "update:"+e.name) }
func (e *orderEntity) Draw(s Surface) { *e.log = append(*e.log, "draw:"+e.name) }

// styleLeaker changes the stroke style without restoring it
type styleLeaker struct {
	BaseEntity
}

func (e *styleLeaker) Draw(s Surface) { s.SetStrokeStyle(ColorWarning) }

// frameSignal forwards frame stats to a channel
type frameSignal chan FrameStats

func (f frameSignal) ObserveFrame(stats FrameStats) { f <- stats }

type recordingIndicator struct {
	icons []Icon
}

func (r *recordingIndicator) SetIcon(icon Icon) { r.icons = append(r.icons, icon) }

type recordingSound struct {
	toggles []bool
	steps   int
}

func (r *recordingSound) PlayToggle(alive bool) { r.toggles = append(r.toggles, alive) }
func (r *recordingSound) PlayStep() { r.steps++ }

func newTestEngine(board Board) (*GameEngine, *RecordingSurface, *MockTimeProvider) {
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	g := NewGameEngine(Options{
		Board:      board,
		Clock:      clock,
		TileWidth:  2,
		TileHeight: 1,
	})
	surface := NewRecordingSurface(40, 12)
	if err := g.Init(surface); err != nil {
		panic(err)
	}
	return g, surface, clock
}

package board

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Snapshot is an immutable copy of a board, safe to share across goroutines
type Snapshot struct {
	Rows       int
	Cols       int
	Generation int64
	Population int
	Rule       string
	Cells      []uint8 // row-major
}

// snapshotJSON is the wire form; cells travel as pattern rows of 'O' and '.'
type snapshotJSON struct {
	Rows       int      `json:"rows"`
	Cols       int      `json:"cols"`
	Generation int64    `json:"generation"`
	Population int      `json:"population"`
	Rule       string   `json:"rule"`
	Grid       []string `json:"grid"`
}

// Alive reports whether (row, col) is live; out of range cells are dead
func (s Snapshot) Alive(row, col int) bool {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return false
	}
	return s.Cells[row*s.Cols+col] == 1
}

// GridRows renders the cells one string per row
func (s Snapshot) GridRows() []string {
	rows := make([]string, s.Rows)
	var sb strings.Builder
	for r := 0; r < s.Rows; r++ {
		sb.Reset()
		for c := 0; c < s.Cols; c++ {
			if s.Alive(r, c) {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		Rows:       s.Rows,
		Cols:       s.Cols,
		Generation: s.Generation,
		Population: s.Population,
		Rule:       s.Rule,
		Grid:       s.GridRows(),
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.Grid) != w.Rows {
		return fmt.Errorf("snapshot: %d grid rows, want %d", len(w.Grid), w.Rows)
	}
	cells := make([]uint8, w.Rows*w.Cols)
	for r, line := range w.Grid {
		if len(line) != w.Cols {
			return fmt.Errorf("snapshot: row %d has %d cells, want %d", r, len(line), w.Cols)
		}
		for c := 0; c < len(line); c++ {
			if line[c] == 'O' {
				cells[r*w.Cols+c] = 1
			}
		}
	}
	*s = Snapshot{
		Rows:       w.Rows,
		Cols:       w.Cols,
		Generation: w.Generation,
		Population: w.Population,
		Rule:       w.Rule,
		Cells:      cells,
	}
	return nil
}

// SnapshotSink receives snapshots whenever the board changed
type SnapshotSink interface {
	Publish(s Snapshot)
}

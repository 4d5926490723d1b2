package network

import (
	"github.com/lixenwraith/vi-life/board"
)

func testSnapshot(gen int64) board.Snapshot {
	l := board.NewLife(3, 4, board.Conway, false)
	l.SetCell(1, 0, 1)
	l.SetCell(1, 1, 1)
	l.SetCell(1, 2, 1)
	s := l.Snapshot()
	s.Generation = gen
	return s
}

type staticSource struct {
	snap board.Snapshot
	ok   bool
}

func (s staticSource) Latest() (board.Snapshot, bool) { return s.snap, s.ok }

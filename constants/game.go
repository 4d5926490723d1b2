package constants

// Board defaults
const (
	// TileWidth is the number of terminal columns covered by one board cell.
	// Terminal cells are roughly twice as tall as wide, two columns keep tiles square
	TileWidth = 2

	// TileHeight is the number of terminal rows covered by one board cell
	TileHeight = 1

	// DefaultRule is Conway's rule in B/S notation
	DefaultRule = "B3/S23"

	// DefaultStepInterval is the game time between automatic generations (seconds)
	DefaultStepInterval = 0.1

	// DefaultBoardRows and DefaultBoardCols size the board when no screen is available
	DefaultBoardRows = 40
	DefaultBoardCols = 80

	// ImageTileSize is the pixel edge of one cell on image surfaces
	ImageTileSize = 8
)

package constants

// UI Layout Constants
const (
	// StatusBarHeight is the number of rows reserved below the board
	StatusBarHeight = 1

	// MarkerRadius is the debug outline radius around the last toggled tile
	MarkerRadius = 1.5
)

// Status bar text
const (
	IconTextPlay  = "▶ RUN  "
	IconTextPause = "⏸ PAUSE"
	DebugText     = " DEBUG "

	MenuTitle    = "V I - L I F E"
	MenuSubtitle = "click anywhere to start"
)

// MenuHelp lists the default bindings shown on the menu
var MenuHelp = []string{
	"space  run / pause",
	"w      single step",
	"r      clear board",
	"q      debug outlines",
	"esc    quit",
}

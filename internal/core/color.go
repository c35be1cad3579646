package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Colors used when drawing the arena.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorCyan
	ColorMagenta
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
)

package core

import "math/bits"

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the board renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tileColors cycles from light to hot as tiles grow; index is log2(value)-1.
var tileColors = []Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorOrange,        // 8
	ColorBrightRed,     // 16
	ColorRed,           // 32
	ColorBrightYellow,  // 64
	ColorYellow,        // 128
	ColorBrightGreen,   // 256
	ColorGreen,         // 512
	ColorBrightCyan,    // 1024
	ColorBrightMagenta, // 2048
}

// TileColor returns the colour for a tile value. Values above 2048 share
// ColorMagenta; anything below 2 gets ColorGray.
func TileColor(value int) Color {
	if value < 2 {
		return ColorGray
	}
	exp := bits.Len(uint(value)) - 1
	if exp <= len(tileColors) {
		return tileColors[exp-1]
	}
	return ColorMagenta
}

package core

// Color represents a foreground color for a screen cell.
// Either an ANSI 256-color code ("208") or a hex value ("#00ccff").
// The zero value leaves the terminal default in place.
type Color string

// Predefined colors for HUD and effects.
const (
	ColorDefault       Color = ""
	ColorRed           Color = "1"
	ColorGreen         Color = "2"
	ColorYellow        Color = "3"
	ColorBlue          Color = "4"
	ColorMagenta       Color = "5"
	ColorCyan          Color = "6"
	ColorWhite         Color = "7"
	ColorBrightRed     Color = "9"
	ColorBrightGreen   Color = "10"
	ColorBrightYellow  Color = "11"
	ColorBrightBlue    Color = "12"
	ColorBrightMagenta Color = "13"
	ColorBrightCyan    Color = "14"
	ColorBrightWhite   Color = "15"
	ColorOrange        Color = "208"
	ColorGray          Color = "245"
)

// IsHex reports whether the color is a #rrggbb value.
func (c Color) IsHex() bool {
	return len(c) == 7 && c[0] == '#'
}

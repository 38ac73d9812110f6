package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the terminal renderer.
type Color uint8

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
	ColorSea  // deep water
	ColorPink // pig snouts and the 8-ball's glow
)

// SeatColor is the accent used for a seat's sprite and HUD.
func SeatColor(id PlayerID) Color {
	if id == Player2 {
		return ColorBrightMagenta
	}
	return ColorBrightCyan
}

// HealthColor picks a gauge color for a health fraction:
// green above 60%, orange above 30%, red otherwise.
func HealthColor(frac float64) Color {
	switch {
	case frac < 0.3:
		return ColorBrightRed
	case frac < 0.6:
		return ColorOrange
	default:
		return ColorBrightGreen
	}
}

package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions for board layers
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWall       = tcell.NewRGBColor(12, 53, 71)    // Deep blue
	RgbVisited    = tcell.NewRGBColor(0, 190, 218)   // Cyan
	RgbPath       = tcell.NewRGBColor(255, 254, 106) // Soft yellow
	RgbStart      = tcell.NewRGBColor(50, 255, 50)   // Bright green
	RgbTarget     = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbCursor     = tcell.NewRGBColor(255, 165, 0)   // Orange

	RgbStatusText   = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusIdleBg = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusBusyBg = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbStatusErrBg  = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbLegendText   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
)

// Glyphs per layer
const (
	GlyphEmpty   = ' '
	GlyphWall    = '█'
	GlyphVisited = '·'
	GlyphPath    = '•'
	GlyphStart   = 'S'
	GlyphTarget  = 'T'
)

var (
	styleEmpty   = tcell.StyleDefault.Background(RgbBackground)
	styleWall    = tcell.StyleDefault.Foreground(RgbWall).Background(RgbBackground)
	styleVisited = tcell.StyleDefault.Foreground(RgbVisited).Background(RgbBackground)
	stylePath    = tcell.StyleDefault.Foreground(RgbPath).Background(RgbBackground).Bold(true)
	styleStart   = tcell.StyleDefault.Foreground(RgbStart).Background(RgbBackground).Bold(true)
	styleTarget  = tcell.StyleDefault.Foreground(RgbTarget).Background(RgbBackground).Bold(true)
	styleLegend  = tcell.StyleDefault.Foreground(RgbLegendText)
)

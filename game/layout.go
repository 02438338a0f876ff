package game

import (
	"math"

	"github.com/faiface/pixel"
)

// Layout maps board coordinates to screen rectangles and back. Screen
// positions use pixel's convention: origin at the bottom-left, Y going up.
type Layout struct {
	ScreenWidth, ScreenHeight float64
	Rows, Cols                int

	// top-left corner of the board, measured from the top-left of the screen
	offsetX, offsetY float64
}

func NewLayout(config GameConfig, rows, cols int) Layout {
	boardWidth := float64(cols*(cardWidth+cardMargin) - cardMargin)
	boardHeight := float64(rows*(cardHeight+cardMargin) - cardMargin)

	// Grow the window for boards that don't fit the configured screen
	screenWidth := math.Max(float64(config.ScreenWidth), boardWidth+2*cardMargin)
	screenHeight := math.Max(float64(config.ScreenHeight), boardHeight+2*cardMargin)

	return Layout{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Rows:         rows,
		Cols:         cols,
		offsetX:      math.Floor((screenWidth - boardWidth) / 2),
		offsetY:      math.Floor((screenHeight - boardHeight) / 2),
	}
}

func (layout Layout) Bounds() pixel.Rect {
	return pixel.R(0, 0, layout.ScreenWidth, layout.ScreenHeight)
}

func (layout Layout) CardRect(row, col int) pixel.Rect {
	left := layout.offsetX + float64(col*(cardWidth+cardMargin))
	top := layout.offsetY + float64(row*(cardHeight+cardMargin))
	return pixel.R(
		left, layout.ScreenHeight-top-cardHeight,
		left+cardWidth, layout.ScreenHeight-top,
	)
}

// CardAt returns the grid cell under pos. A card's trailing margin belongs to
// the card; positions left of or above the board give negative indices.
func (layout Layout) CardAt(pos pixel.Vec) (row, col int) {
	x := pos.X - layout.offsetX
	y := layout.ScreenHeight - pos.Y - layout.offsetY
	col = int(math.Floor(x / (cardWidth + cardMargin)))
	row = int(math.Floor(y / (cardHeight + cardMargin)))
	return row, col
}

func (layout Layout) ButtonRect() pixel.Rect {
	left := math.Floor((layout.ScreenWidth - buttonWidth) / 2)
	top := layout.ScreenHeight - buttonOffset
	return pixel.R(
		left, layout.ScreenHeight-top-buttonHeight,
		left+buttonWidth, layout.ScreenHeight-top,
	)
}

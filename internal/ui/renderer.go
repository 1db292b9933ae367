package ui

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessai/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	TargetColor    color.RGBA
	CaptureColor   color.RGBA
	CoordColor     color.RGBA
	BannerColor    color.RGBA
	BannerShade    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{255, 255, 255, 255}, // White
		DarkSquare:     color.RGBA{230, 230, 250, 255}, // Lavender
		SelectedSquare: color.RGBA{128, 128, 128, 100}, // Gray
		TargetColor:    color.RGBA{255, 255, 0, 255},   // Yellow dots
		CaptureColor:   color.RGBA{255, 255, 0, 100},   // Yellow fill
		CoordColor:     color.RGBA{110, 110, 140, 255},
		BannerColor:    color.RGBA{0, 100, 0, 255}, // Dark green
		BannerShade:    color.RGBA{255, 255, 255, 200},
	}
}

// Renderer draws the board. Row 0 is at the top of the screen.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	squareSize int
}

// NewRenderer creates a renderer for squares of the given size.
func NewRenderer(squareSize int, logger *log.Logger) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize, logger),
		theme:      DefaultTheme(),
		squareSize: squareSize,
	}
}

// DrawBoard draws the squares and the file and rank labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := float32(r.squareSize)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c := r.theme.LightSquare
			if (row+col)%2 == 1 {
				c = r.theme.DarkSquare
			}
			vector.DrawFilledRect(screen, float32(col)*size, float32(row)*size, size, size, c, false)
		}
	}
	r.drawCoordinates(screen)
}

func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	if regularFace == nil {
		return
	}
	for i := 0; i < 8; i++ {
		file := board.NewSquare(7, i)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64((i+1)*r.squareSize-9), float64(8*r.squareSize-15))
		op.ColorScale.ScaleWithColor(r.theme.CoordColor)
		text.Draw(screen, string(file.File()), regularFace, op)

		rank := board.NewSquare(i, 0)
		op = &text.DrawOptions{}
		op.GeoM.Translate(3, float64(i*r.squareSize+2))
		op.ColorScale.ScaleWithColor(r.theme.CoordColor)
		text.Draw(screen, string(rank.Rank()), regularFace, op)
	}
}

// DrawHighlights shades the selected square when it holds a piece of the
// side to move, and marks its legal destinations: a filled square for
// captures, a dot otherwise.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, gs *board.GameState, legal []board.Move, selected board.Square) {
	if !selected.IsValid() {
		return
	}
	p := gs.PieceAt(selected)
	if p.IsEmpty() || p.Color() != gs.SideToMove() {
		return
	}
	r.fillSquare(screen, selected, r.theme.SelectedSquare)

	size := float32(r.squareSize)
	for _, m := range legal {
		if m.From() != selected {
			continue
		}
		to := m.To()
		if m.IsCapture() {
			r.fillSquare(screen, to, r.theme.CaptureColor)
			continue
		}
		cx := float32(to.Col)*size + size/2
		cy := float32(to.Row)*size + size/2
		vector.DrawFilledCircle(screen, cx, cy, size*0.16, r.theme.TargetColor, true)
	}
}

func (r *Renderer) fillSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	x, y := r.SquareToScreen(sq)
	size := float32(r.squareSize)
	vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
}

// DrawPieces draws every piece of the position.
func (r *Renderer) DrawPieces(screen *ebiten.Image, gs *board.GameState) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := board.NewSquare(row, col)
			p := gs.PieceAt(sq)
			if p.IsEmpty() {
				continue
			}
			x, y := r.SquareToScreen(sq)
			r.sprites.DrawPieceAt(screen, p, x, y)
		}
	}
}

// DrawBanner draws msg centered horizontally, a little above the middle.
func (r *Renderer) DrawBanner(screen *ebiten.Image, msg string) {
	if msg == "" || bannerFace == nil {
		return
	}
	boardSize := float64(8 * r.squareSize)
	w, h := MeasureText(msg, bannerFace)
	x := boardSize/2 - w/2
	y := boardSize/2.5 - h/2.5

	vector.DrawFilledRect(screen, float32(x-8), float32(y-4), float32(w+16), float32(h+8), r.theme.BannerShade, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(r.theme.BannerColor)
	text.Draw(screen, msg, bannerFace, op)
}

// SquareToScreen returns the top-left pixel of a square.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	return sq.Col * r.squareSize, sq.Row * r.squareSize
}

// ScreenToSquare converts pixel coordinates to a square, or NoSquare when
// they fall outside the board.
func ScreenToSquare(x, y, squareSize int) board.Square {
	if x < 0 || y < 0 {
		return board.NoSquare
	}
	sq := board.NewSquare(y/squareSize, x/squareSize)
	if !sq.IsValid() {
		return board.NoSquare
	}
	return sq
}

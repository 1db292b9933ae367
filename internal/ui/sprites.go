// Package ui implements the windowed chess frontend using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"image"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessai/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// SpriteManager holds one rasterized image per piece.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // Display size
	renderScale float64 // Pieces are rasterized larger and scaled down when drawn
}

// NewSpriteManager rasterizes the piece set for squares of the given size.
func NewSpriteManager(size int, logger *log.Logger) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces(logger)
	return sm
}

// assetName returns the embedded file of a piece, e.g. "assets/pieces/wN.svg".
func assetName(p board.Piece) string {
	color := "w"
	if p.Color() == board.Black {
		color = "b"
	}
	return "assets/pieces/" + color + string(p.Type().Char()-'a'+'A') + ".svg"
}

func (sm *SpriteManager) loadPieces(logger *log.Logger) {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for p := board.WhitePawn; p <= board.BlackKing; p++ {
		path := assetName(p)
		img, err := rasterize(path, renderSize)
		if err != nil {
			logger.Error("loading piece", "path", path, "err", err)
			continue
		}
		sm.pieces[p] = ebiten.NewImageFromImage(img)
	}
}

// rasterize renders an embedded SVG into a size×size RGBA image.
func rasterize(path string, size int) (*image.RGBA, error) {
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// DrawPieceAt draws a piece with its top-left corner at x, y.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	sprite := sm.pieces[p]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

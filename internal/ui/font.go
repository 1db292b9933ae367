package ui

import (
	"bytes"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularFace *text.GoTextFace
	bannerFace  *text.GoTextFace
)

const (
	coordFontSize  = 11.0
	bannerFontSize = 30.0
)

func init() {
	regularSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Error("loading regular font", "err", err)
		return
	}
	regularFace = &text.GoTextFace{Source: regularSource, Size: coordFontSize}

	boldSource, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Error("loading bold font", "err", err)
		return
	}
	bannerFace = &text.GoTextFace{Source: boldSource, Size: bannerFontSize}
}

// MeasureText returns the width and height of s in face.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}

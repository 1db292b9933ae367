package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler samples mouse and keyboard state once per frame.
type InputHandler struct {
	mouseX, mouseY  int
	leftJustPressed bool
	keys            []ebiten.Key
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update samples the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.keys = inpututil.AppendJustPressedKeys(ih.keys[:0])
}

// MousePosition returns the cursor position in layout coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// JustPressedKeys returns the keys pressed this frame.
func (ih *InputHandler) JustPressedKeys() []ebiten.Key {
	return ih.keys
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hailam/chessai/internal/board"
)

var (
	lightSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#EEEED2")).Foreground(lipgloss.Color("#000000"))
	darkSquare   = lipgloss.NewStyle().Background(lipgloss.Color("#769656")).Foreground(lipgloss.Color("#000000"))
	cursorSquare = lipgloss.NewStyle().Background(lipgloss.Color("#D9534F")).Foreground(lipgloss.Color("#000000"))
	selectSquare = lipgloss.NewStyle().Background(lipgloss.Color("#F6F669")).Foreground(lipgloss.Color("#000000"))
	targetSquare = lipgloss.NewStyle().Background(lipgloss.Color("#BACA44")).Foreground(lipgloss.Color("#000000"))

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E8B57"))
	infoBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(28)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
)

var glyphs = [...]string{
	board.WhitePawn: "♙", board.WhiteKnight: "♘", board.WhiteBishop: "♗",
	board.WhiteRook: "♖", board.WhiteQueen: "♕", board.WhiteKing: "♔",
	board.BlackPawn: "♟", board.BlackKnight: "♞", board.BlackBishop: "♝",
	board.BlackRook: "♜", board.BlackQueen: "♛", board.BlackKing: "♚",
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ChessAI"))
	s.WriteString("\n")
	if m.welcome {
		s.WriteString("Welcome! Press e, m or h to play the computer, or move for both sides.\n")
	}
	s.WriteString("\n")

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), "   ", m.renderInfo()))
	s.WriteString("\n\n")

	if banner := m.Result(); banner != "" {
		s.WriteString(bannerStyle.Render("*** " + banner + " ***"))
		s.WriteString("\n\n")
	}

	s.WriteString(helpStyle.Render("arrows move · enter select/move · esc deselect · e/m/h vs AI · 2 two players\nz undo · r reset · f flip · q quit"))
	s.WriteString("\n")
	return s.String()
}

// Result returns the end-of-game banner, or "" while the game is in progress.
func (m Model) Result() string {
	switch {
	case m.state.IsCheckmate() && m.state.SideToMove() == board.White:
		return "CHECKMATE - BLACK WINS"
	case m.state.IsCheckmate():
		return "CHECKMATE - WHITE WINS"
	case m.state.IsStalemate():
		return "STALEMATE - DRAW"
	}
	return ""
}

func (m Model) renderBoard() string {
	targets := make(map[board.Square]bool)
	if m.selected != board.NoSquare {
		for _, mv := range m.legal {
			if mv.From() == m.selected {
				targets[mv.To()] = true
			}
		}
	}

	files := "   a  b  c  d  e  f  g  h"
	if m.flipped {
		files = "   h  g  f  e  d  c  b  a"
	}

	var lines []string
	lines = append(lines, files)
	for i := 0; i < 8; i++ {
		row := i
		if m.flipped {
			row = 7 - i
		}

		var line strings.Builder
		fmt.Fprintf(&line, "%c ", '8'-row)
		for j := 0; j < 8; j++ {
			col := j
			if m.flipped {
				col = 7 - j
			}
			sq := board.NewSquare(row, col)

			cell := " "
			if p := m.state.PieceAt(sq); !p.IsEmpty() {
				cell = glyphs[p]
			}

			style := lightSquare
			switch {
			case sq == m.cursor:
				style = cursorSquare
			case sq == m.selected:
				style = selectSquare
			case targets[sq]:
				style = targetSquare
			case (row+col)%2 == 1:
				style = darkSquare
			}
			line.WriteString(style.Render(" " + cell + " "))
		}
		fmt.Fprintf(&line, " %c", '8'-row)
		lines = append(lines, line.String())
	}
	lines = append(lines, files)
	return strings.Join(lines, "\n")
}

func (m Model) renderInfo() string {
	var lines []string

	mode := "Two players"
	if m.vsAI {
		mode = fmt.Sprintf("vs %s AI (you: White)", m.level)
	}
	lines = append(lines, "Mode: "+mode)
	lines = append(lines, "Turn: "+m.state.SideToMove().String())

	if !m.gameOver() && m.state.InCheck() {
		lines = append(lines, "Check!")
	}
	if m.thinking {
		lines = append(lines, "AI is thinking...")
	}

	lines = append(lines, "")
	lines = append(lines, "Cursor: "+m.cursor.String()+" "+m.state.PieceAt(m.cursor).Name())
	if m.selected != board.NoSquare {
		lines = append(lines, "Selected: "+m.selected.String())
	}
	if last := m.state.LastMove(); last != board.NoMove {
		lines = append(lines, "Last move: "+last.Notation())
	}
	if m.message != "" {
		lines = append(lines, "", m.message)
	}

	return infoBox.Render(strings.Join(lines, "\n"))
}

package ultimate

import (
	"strings"

	"github.com/pocketarcade/pocketarcade/internal/model"
)

// ANSI escapes for the text board; the chat platform renders them
// inside ansi-tagged code fences
const (
	ansiReset     = "\x1b[0m"
	ansiRed       = "\x1b[31m"
	ansiBlue      = "\x1b[34m"
	ansiGreen     = "\x1b[32m"
	ansiHighlight = "\x1b[47m"
)

const boardSeparator = "-------+-------+-------"

func colorPiece(p model.Piece, highlighted bool) string {
	var color string
	switch p {
	case model.PieceX:
		color = ansiRed
	case model.PieceO:
		color = ansiBlue
	}
	prefix := color
	if highlighted {
		prefix = ansiHighlight + color
	}
	if prefix == "" {
		return p.String()
	}
	return prefix + p.String() + ansiReset
}

// stringMap renders the whole surface as a colored text grid. Decided
// inner boards collapse to nine copies of their verdict, a green "?"
// for a tie; the selected board's cells are highlighted.
func (m *MetaBoard) stringMap() string {
	var lines []string
	for my := 0; my < Size; my++ {
		for iy := 0; iy < Size; iy++ {
			var cells []string
			for mx := 0; mx < Size; mx++ {
				space := m.At(mx, my)
				var board []string
				for ix := 0; ix < Size; ix++ {
					switch {
					case space.Tied:
						board = append(board, ansiGreen+"?"+ansiReset)
					case space.Won != model.PieceNone:
						board = append(board, colorPiece(space.Won, false))
					default:
						selected := m.Selected != nil && m.Selected.X == mx && m.Selected.Y == my
						board = append(board, colorPiece(space.Board.At(ix, iy), selected))
					}
				}
				cells = append(cells, strings.Join(board, " "))
			}
			lines = append(lines, " "+strings.Join(cells, " | "))
		}
		if my != Size-1 {
			lines = append(lines, boardSeparator)
		}
	}
	return "```ansi\n" + strings.Join(lines, "\n") + "\n```"
}

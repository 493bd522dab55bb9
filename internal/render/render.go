// Package render draws a board snapshot for people: as text with chess glyphs,
// or as a one-page PDF diagram.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"resty_chess/internal/domain/board"
)

const (
	emptyGlyph = "."
	fileLegend = "a b c d e f g h"
)

var glyphs = map[board.Piece]string{
	board.NewPiece(board.Pawn, board.White):   "♙",
	board.NewPiece(board.Knight, board.White): "♘",
	board.NewPiece(board.Bishop, board.White): "♗",
	board.NewPiece(board.Rook, board.White):   "♖",
	board.NewPiece(board.Queen, board.White):  "♕",
	board.NewPiece(board.King, board.White):   "♔",
	board.NewPiece(board.Pawn, board.Black):   "♟",
	board.NewPiece(board.Knight, board.Black): "♞",
	board.NewPiece(board.Bishop, board.Black): "♝",
	board.NewPiece(board.Rook, board.Black):   "♜",
	board.NewPiece(board.Queen, board.Black):  "♛",
	board.NewPiece(board.King, board.Black):   "♚",
}

// Decode reads a snapshot-shaped JSON document, such as a GET /v1/board or
// POST /v1/move response body.
func Decode(r io.Reader) (board.Snapshot, error) {
	var snap board.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return board.Snapshot{}, fmt.Errorf("decode board json: %w", err)
	}
	if snap.Board == nil {
		return board.Snapshot{}, fmt.Errorf("decode board json: missing \"board\"")
	}
	return snap, nil
}

func Glyph(p board.Piece) string {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return emptyGlyph
}

// Text writes rank 8 at the top down to rank 1, then the file legend, the
// turn and the FEN string.
func Text(w io.Writer, snap board.Snapshot) error {
	bw := bufio.NewWriter(w)
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(bw, "%d", rank+1)
		for file := 0; file < 8; file++ {
			bw.WriteByte(' ')
			p, _ := snap.PieceAt(board.NewSquare(file, rank).Name())
			bw.WriteString(Glyph(p))
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "  %s\n", fileLegend)
	fmt.Fprintf(bw, "Turn: %s\n", snap.Turn)
	fmt.Fprintf(bw, "FEN: %s\n", snap.FEN)
	return bw.Flush()
}

// PDF draws the board on an A4 page. The core PDF fonts have no chess glyphs,
// so pieces are shown by their FEN letter.
func PDF(w io.Writer, snap board.Snapshot) error {
	const (
		left   = 25.0
		top    = 30.0
		cell   = 20.0
		legend = 6.0
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Board", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(left, top-10, "Turn: "+snap.Turn.String())

	for rank := 7; rank >= 0; rank-- {
		y := top + float64(7-rank)*cell
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(left-legend, y+cell/2+1, fmt.Sprintf("%d", rank+1))

		for file := 0; file < 8; file++ {
			x := left + float64(file)*cell
			if (file+rank)%2 == 0 {
				pdf.SetFillColor(181, 136, 99)
			} else {
				pdf.SetFillColor(240, 217, 181)
			}
			pdf.Rect(x, y, cell, cell, "F")

			p, ok := snap.PieceAt(board.NewSquare(file, rank).Name())
			if !ok {
				continue
			}
			if p.Color == board.White {
				pdf.SetTextColor(255, 255, 255)
			} else {
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.SetFont("Helvetica", "B", 22)
			pdf.SetXY(x, y)
			pdf.CellFormat(cell, cell, string(p.Letter()), "", 0, "CM", false, 0, "")
		}
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for file := 0; file < 8; file++ {
		pdf.Text(left+float64(file)*cell+cell/2-1, top+8*cell+legend, string(rune('a'+file)))
	}

	pdf.SetFont("Courier", "", 10)
	pdf.Text(left, top+8*cell+3*legend, "FEN: "+snap.FEN)

	return pdf.Output(w)
}

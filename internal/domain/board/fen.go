package board

import (
	"fmt"
	"strconv"
	"strings"

	errs "resty_chess/internal/errors"
)

const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN encodes the board in Forsyth-Edwards Notation. The en-passant field is
// always "-" and the clocks are the ones the board started with.
func (b *Board) FEN() string {
	var sb strings.Builder

	b.writePlacement(&sb)
	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	b.writeCastling(&sb)
	sb.WriteString(" - ")
	fmt.Fprintf(&sb, "%d %d", b.halfmoveClock, b.fullmoveNumber)

	return sb.String()
}

func (b *Board) writePlacement(sb *strings.Builder) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p, ok := b.PieceAt(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// castlingAvailable masks the starting rights with what the current placement
// still allows: king and rook both on their home squares.
func (b *Board) castlingAvailable() uint8 {
	has := func(file, rank int, kind Kind, color Color) bool {
		p, ok := b.PieceAt(NewSquare(file, rank))
		return ok && p == NewPiece(kind, color)
	}

	var avail uint8
	if has(4, 0, King, White) {
		if has(7, 0, Rook, White) {
			avail |= castleWhiteKing
		}
		if has(0, 0, Rook, White) {
			avail |= castleWhiteQueen
		}
	}
	if has(4, 7, King, Black) {
		if has(7, 7, Rook, Black) {
			avail |= castleBlackKing
		}
		if has(0, 7, Rook, Black) {
			avail |= castleBlackQueen
		}
	}
	return avail & b.castling
}

func (b *Board) writeCastling(sb *strings.Builder) {
	avail := b.castlingAvailable()
	if avail == 0 {
		sb.WriteByte('-')
		return
	}
	for i, c := range []byte("KQkq") {
		if avail&(1<<i) != 0 {
			sb.WriteByte(c)
		}
	}
}

// ParseFEN builds a board from a FEN string. Only the placement and side to
// move fields are required; missing castling defaults to none and missing
// clocks to "0 1". The en-passant field is accepted and ignored.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: expected at least placement and side to move in %q", errs.ErrInvalidFEN, fen)
	}

	b := &Board{fullmoveNumber: 1}
	if err := b.parsePlacement(parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", errs.ErrInvalidFEN, parts[1])
	}

	if len(parts) > 2 {
		if err := b.parseCastling(parts[2]); err != nil {
			return nil, err
		}
	}

	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", errs.ErrInvalidFEN, parts[4])
		}
		b.halfmoveClock = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q", errs.ErrInvalidFEN, parts[5])
		}
		b.fullmoveNumber = n
	}

	return b, nil
}

func (b *Board) parsePlacement(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", errs.ErrInvalidFEN, len(rows))
	}
	for i, row := range rows {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				if j > 0 && row[j-1] >= '1' && row[j-1] <= '8' {
					return fmt.Errorf("%w: rank %d has adjacent empty counts", errs.ErrInvalidFEN, rank+1)
				}
				file += int(c - '0')
				continue
			}
			p, ok := pieceFromLetter(c)
			if !ok {
				return fmt.Errorf("%w: unknown piece %q", errs.ErrInvalidFEN, string(c))
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d is too long", errs.ErrInvalidFEN, rank+1)
			}
			b.cells[NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d files", errs.ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

func (b *Board) parseCastling(field string) error {
	if field == "-" {
		return nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			b.castling |= castleWhiteKing
		case 'Q':
			b.castling |= castleWhiteQueen
		case 'k':
			b.castling |= castleBlackKing
		case 'q':
			b.castling |= castleBlackQueen
		default:
			return fmt.Errorf("%w: castling field %q", errs.ErrInvalidFEN, field)
		}
	}
	return nil
}

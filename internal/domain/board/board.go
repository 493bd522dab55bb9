// Package board holds the chess board occupancy table and side-to-move flag.
// It knows nothing about chess legality: pieces can be placed, moved and
// removed freely on any of the 64 squares.
package board

// castling rights bits, in positional-notation order
const (
	castleWhiteKing uint8 = 1 << iota
	castleWhiteQueen
	castleBlackKing
	castleBlackQueen

	castleAll = castleWhiteKing | castleWhiteQueen | castleBlackKing | castleBlackQueen
)

// Board is a mutable 8x8 board. It is not safe for concurrent use; callers
// serialize access.
type Board struct {
	cells [NumSquares]Piece
	turn  Color

	castling       uint8
	halfmoveClock  int
	fullmoveNumber int
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New returns a board in the standard starting position, white to move.
func New() *Board {
	b := &Board{
		turn:           White,
		castling:       castleAll,
		fullmoveNumber: 1,
	}
	for file, kind := range backRank {
		b.cells[NewSquare(file, 0)] = NewPiece(kind, White)
		b.cells[NewSquare(file, 1)] = NewPiece(Pawn, White)
		b.cells[NewSquare(file, 6)] = NewPiece(Pawn, Black)
		b.cells[NewSquare(file, 7)] = NewPiece(kind, Black)
	}
	return b
}

// PieceAt reports the piece on sq, if any. Squares off the board are empty.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.cells[sq]
	return p, !p.IsZero()
}

// Place puts p on sq, replacing whatever was there.
func (b *Board) Place(sq Square, p Piece) {
	if !sq.Valid() {
		return
	}
	b.cells[sq] = p
}

// Clear empties sq. Clearing an empty square does nothing.
func (b *Board) Clear(sq Square) {
	if !sq.Valid() {
		return
	}
	b.cells[sq] = Piece{}
}

func (b *Board) ToggleTurn() {
	b.turn = b.turn.Opposite()
}

func (b *Board) Turn() Color {
	return b.turn
}

// Snapshot copies the board into a value that shares nothing with b.
func (b *Board) Snapshot() Snapshot {
	squares := make(map[string]*Piece, NumSquares)
	for _, sq := range AllSquares {
		if p, ok := b.PieceAt(sq); ok {
			squares[sq.Name()] = &p
		} else {
			squares[sq.Name()] = nil
		}
	}
	return Snapshot{
		Board: squares,
		FEN:   b.FEN(),
		Turn:  b.turn,
	}
}

// Snapshot is an immutable view of a Board at one instant. Board maps every
// square name to its piece, or nil when the square is empty.
type Snapshot struct {
	Board map[string]*Piece `json:"board"`
	FEN   string            `json:"fen"`
	Turn  Color             `json:"turn"`
}

// PieceAt looks a square up by name.
func (s Snapshot) PieceAt(name string) (Piece, bool) {
	p := s.Board[name]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

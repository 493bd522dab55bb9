package board

// Square is an index into the 8x8 board: a1=0, b1=1, ..., h1=7, a2=8, ..., h8=63.
type Square int8

const (
	NumSquares = 64

	files = "abcdefgh"
	ranks = "12345678"
)

// AllSquares lists every square in snapshot order: rank 1 to rank 8, file a to h
// within each rank.
var AllSquares = func() [NumSquares]Square {
	var all [NumSquares]Square
	for i := range all {
		all[i] = Square(i)
	}
	return all
}()

func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Square(-1)
	}
	return Square(rank*8 + file)
}

// ParseSquare converts an algebraic name like "e4" to a Square.
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return 0, false
	}
	f, r := name[0], name[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return 0, false
	}
	return NewSquare(int(f-'a'), int(r-'1')), true
}

func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// File is 0 for the a-file through 7 for the h-file.
func (s Square) File() int {
	return int(s) % 8
}

// Rank is 0 for rank 1 through 7 for rank 8.
func (s Square) Rank() int {
	return int(s) / 8
}

func (s Square) Name() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{files[s.File()], ranks[s.Rank()]})
}

func (s Square) String() string {
	return s.Name()
}

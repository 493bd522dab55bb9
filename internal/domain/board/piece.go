package board

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", string(text))
	}
	return nil
}

type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

// fenLetters holds the white (upper case) letter for each kind.
var fenLetters = [...]byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	if k == NoKind || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("cannot marshal piece kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i := Pawn; i <= King; i++ {
		if kindNames[i] == string(text) {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", string(text))
}

// Piece is a value: two pieces with the same kind and color are interchangeable.
// The zero Piece means "no piece".
type Piece struct {
	Kind  Kind  `json:"piece_type"`
	Color Color `json:"color"`
}

func NewPiece(kind Kind, color Color) Piece {
	return Piece{Kind: kind, Color: color}
}

func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

// Letter returns the positional-notation letter: upper case for white, lower case for black.
func (p Piece) Letter() byte {
	if p.IsZero() || int(p.Kind) >= len(fenLetters) {
		return ' '
	}
	l := fenLetters[p.Kind]
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

func pieceFromLetter(c byte) (Piece, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if fenLetters[k] == c {
			return NewPiece(k, color), true
		}
	}
	return Piece{}, false
}

package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		name   string
		want   Square
		wantOK bool
	}{
		{"a1", 0, true},
		{"h1", 7, true},
		{"a2", 8, true},
		{"e4", 28, true},
		{"h8", 63, true},
		{"i1", 0, false},
		{"a9", 0, false},
		{"a0", 0, false},
		{"E4", 0, false},
		{"e44", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSquare(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ParseSquare(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseSquare(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestSquareNamesAreABijection(t *testing.T) {
	seen := make(map[string]bool)
	for _, sq := range AllSquares {
		name := sq.Name()
		if seen[name] {
			t.Fatalf("duplicate square name %q", name)
		}
		seen[name] = true
		back, ok := ParseSquare(name)
		if !ok || back != sq {
			t.Errorf("ParseSquare(%q) = %d, %v; want %d", name, back, ok, sq)
		}
	}
	if len(seen) != NumSquares {
		t.Errorf("got %d names, want %d", len(seen), NumSquares)
	}
}

func TestInvalidSquare(t *testing.T) {
	for _, sq := range []Square{-1, 64, 100} {
		if sq.Valid() {
			t.Errorf("Square(%d).Valid() = true", sq)
		}
	}
	if got := NewSquare(8, 0); got.Valid() {
		t.Errorf("NewSquare(8, 0) = %d, want invalid", got)
	}
}

func TestNewBoardStartingPosition(t *testing.T) {
	b := New()

	checks := map[string]Piece{
		"e1": NewPiece(King, White),
		"d1": NewPiece(Queen, White),
		"a1": NewPiece(Rook, White),
		"g1": NewPiece(Knight, White),
		"c1": NewPiece(Bishop, White),
		"e2": NewPiece(Pawn, White),
		"d8": NewPiece(Queen, Black),
		"e8": NewPiece(King, Black),
		"h8": NewPiece(Rook, Black),
		"a7": NewPiece(Pawn, Black),
	}
	for name, want := range checks {
		sq, _ := ParseSquare(name)
		got, ok := b.PieceAt(sq)
		if !ok || got != want {
			t.Errorf("PieceAt(%s) = %v, %v; want %v", name, got, ok, want)
		}
	}

	occupied := 0
	for _, sq := range AllSquares {
		if _, ok := b.PieceAt(sq); ok {
			occupied++
		}
	}
	if occupied != 32 {
		t.Errorf("occupied squares = %d, want 32", occupied)
	}
	if b.Turn() != White {
		t.Errorf("Turn() = %v, want white", b.Turn())
	}
}

func TestPlaceOverwritesAndClearIsIdempotent(t *testing.T) {
	b := New()
	e2, _ := ParseSquare("e2")
	e7, _ := ParseSquare("e7")
	e4, _ := ParseSquare("e4")

	b.Place(e7, NewPiece(Queen, White))
	if got, _ := b.PieceAt(e7); got != NewPiece(Queen, White) {
		t.Errorf("after Place, PieceAt(e7) = %v", got)
	}

	b.Clear(e2)
	b.Clear(e2)
	b.Clear(e4)
	if _, ok := b.PieceAt(e2); ok {
		t.Error("e2 should be empty after Clear")
	}
	if _, ok := b.PieceAt(e4); ok {
		t.Error("e4 should still be empty")
	}
}

func TestOffBoardOperationsAreNoops(t *testing.T) {
	b := New()
	before := b.Snapshot()

	b.Place(Square(64), NewPiece(King, Black))
	b.Clear(Square(-1))
	if _, ok := b.PieceAt(Square(99)); ok {
		t.Error("PieceAt off the board reported a piece")
	}

	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Errorf("board changed (-before +after):\n%s", diff)
	}
}

func TestToggleTurn(t *testing.T) {
	b := New()
	b.ToggleTurn()
	if b.Turn() != Black {
		t.Fatalf("Turn() = %v, want black", b.Turn())
	}
	b.ToggleTurn()
	if b.Turn() != White {
		t.Fatalf("Turn() = %v, want white", b.Turn())
	}
}

func TestSnapshot(t *testing.T) {
	b := New()
	snap := b.Snapshot()

	if len(snap.Board) != NumSquares {
		t.Fatalf("snapshot has %d squares, want %d", len(snap.Board), NumSquares)
	}
	if p, ok := snap.PieceAt("e1"); !ok || p != NewPiece(King, White) {
		t.Errorf("e1 = %v, %v; want white king", p, ok)
	}
	if p, ok := snap.PieceAt("d8"); !ok || p != NewPiece(Queen, Black) {
		t.Errorf("d8 = %v, %v; want black queen", p, ok)
	}
	if _, ok := snap.PieceAt("e4"); ok {
		t.Error("e4 should be empty")
	}
	if v, present := snap.Board["e4"]; !present || v != nil {
		t.Errorf("empty square should be present with a nil piece, got %v, %v", v, present)
	}
	if snap.Turn != White {
		t.Errorf("Turn = %v, want white", snap.Turn)
	}
	if snap.FEN != InitialFEN {
		t.Errorf("FEN = %q, want %q", snap.FEN, InitialFEN)
	}
}

func TestSnapshotIsDetachedFromBoard(t *testing.T) {
	b := New()
	snap := b.Snapshot()
	again := b.Snapshot()

	if diff := cmp.Diff(snap, again); diff != "" {
		t.Fatalf("repeated snapshots differ (-first +second):\n%s", diff)
	}

	e1, _ := ParseSquare("e1")
	e4, _ := ParseSquare("e4")
	b.Clear(e1)
	b.Place(e4, NewPiece(Knight, Black))
	b.ToggleTurn()

	if diff := cmp.Diff(again, snap); diff != "" {
		t.Fatalf("old snapshot changed after board mutation:\n%s", diff)
	}

	*snap.Board["d1"] = NewPiece(Pawn, Black)
	d1, _ := ParseSquare("d1")
	if got, _ := b.PieceAt(d1); got != NewPiece(Queen, White) {
		t.Errorf("editing a snapshot reached the board: d1 = %v", got)
	}
}

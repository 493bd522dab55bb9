package board

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"resty_chess/internal/domain/board"
	"resty_chess/internal/domain/journal"
	errs "resty_chess/internal/errors"
)

const journalTimeout = 2 * time.Second

type JournalStore interface {
	Append(ctx context.Context, entry journal.Entry) error
	List(ctx context.Context, limit int) ([]journal.Entry, error)
}

// Notifier is told about every successful mutation while the board lock is
// held, so notifications arrive in mutation order. Notify must not call back
// into the use case.
type Notifier interface {
	Notify(entry journal.Entry, snap board.Snapshot)
}

type MoveResult struct {
	Snapshot board.Snapshot
	From     string
	To       string
	Moved    board.Piece
	Captured *board.Piece
}

type RemoveResult struct {
	Snapshot board.Snapshot
	Square   string
	Removed  board.Piece
}

// BoardUseCase owns the one board of the process. Every operation runs under
// a single mutex, so no caller ever observes a half-applied move.
type BoardUseCase struct {
	mu       sync.Mutex
	board    *board.Board
	journal  JournalStore
	notifier Notifier
	log      *zap.SugaredLogger
}

// NewBoardUseCase takes ownership of b. journal and notifier may be nil.
func NewBoardUseCase(b *board.Board, journal JournalStore, notifier Notifier, log *zap.SugaredLogger) *BoardUseCase {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &BoardUseCase{
		board:    b,
		journal:  journal,
		notifier: notifier,
		log:      log,
	}
}

func (u *BoardUseCase) GetState(ctx context.Context) board.Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.board.Snapshot()
}

// WithState calls fn with the current snapshot while holding the board lock.
// No mutation is applied or notified until fn returns.
func (u *BoardUseCase) WithState(fn func(board.Snapshot)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn(u.board.Snapshot())
}

// Move moves whatever stands on fromSquare to toSquare, capturing any piece
// there, and passes the turn. Chess rules are not checked.
func (u *BoardUseCase) Move(ctx context.Context, fromSquare, toSquare string) (MoveResult, error) {
	from, ok := board.ParseSquare(fromSquare)
	if !ok {
		return MoveResult{}, u.reject("move", errs.NewInvalidMove("Invalid square: %s", fromSquare))
	}
	to, ok := board.ParseSquare(toSquare)
	if !ok {
		return MoveResult{}, u.reject("move", errs.NewInvalidMove("Invalid square: %s", toSquare))
	}
	return u.MoveSquares(ctx, from, to)
}

// MoveSquares is Move for callers that already hold board coordinates.
func (u *BoardUseCase) MoveSquares(ctx context.Context, from, to board.Square) (MoveResult, error) {
	u.mu.Lock()

	piece, ok := u.board.PieceAt(from)
	if !ok && from.Valid() {
		u.mu.Unlock()
		return MoveResult{}, u.reject("move", errs.NewInvalidMove("No piece found at %s", from.Name()))
	}
	if !from.Valid() || !to.Valid() {
		u.mu.Unlock()
		return MoveResult{}, u.reject("move", errs.NewInvalidMove("Move is outside the board boundaries"))
	}

	// from == to captures the mover and leaves the square empty
	var captured *board.Piece
	if target, ok := u.board.PieceAt(to); ok {
		captured = &target
	}

	u.board.Place(to, piece)
	u.board.Clear(from)
	u.board.ToggleTurn()

	snap := u.board.Snapshot()
	entry := journal.NewMoveEntry(from.Name(), to.Name(), piece, captured, snap)
	u.record(ctx, entry)
	u.notify(entry, snap)
	u.mu.Unlock()

	u.log.Infof("Moved %s from %s to %s", piece, from, to)
	if captured != nil {
		u.log.Infof("Captured %s at %s", *captured, to)
	}

	return MoveResult{
		Snapshot: snap,
		From:     from.Name(),
		To:       to.Name(),
		Moved:    piece,
		Captured: captured,
	}, nil
}

// Remove takes the piece off square. The turn is left alone.
func (u *BoardUseCase) Remove(ctx context.Context, square string) (RemoveResult, error) {
	sq, ok := board.ParseSquare(square)
	if !ok {
		return RemoveResult{}, u.reject("remove", errs.NewInvalidMove("Invalid square: %s", square))
	}

	u.mu.Lock()
	piece, ok := u.board.PieceAt(sq)
	if !ok {
		u.mu.Unlock()
		return RemoveResult{}, u.reject("remove", errs.NewInvalidMove("No piece found at %s", square))
	}

	u.board.Clear(sq)

	snap := u.board.Snapshot()
	entry := journal.NewRemoveEntry(sq.Name(), piece, snap)
	u.record(ctx, entry)
	u.notify(entry, snap)
	u.mu.Unlock()

	u.log.Infof("Removed %s from %s", piece, sq)

	return RemoveResult{
		Snapshot: snap,
		Square:   sq.Name(),
		Removed:  piece,
	}, nil
}

// History returns up to limit of the most recent mutations, oldest first.
// limit <= 0 returns everything the journal retains.
func (u *BoardUseCase) History(ctx context.Context, limit int) ([]journal.Entry, error) {
	if u.journal == nil {
		return []journal.Entry{}, nil
	}
	return u.journal.List(ctx, limit)
}

func (u *BoardUseCase) reject(op string, err error) error {
	u.log.Warnf("Invalid %s: %v", op, err)
	return err
}

// record appends to the journal while the board lock is held so that journal
// order is mutation order. A failed append does not undo the mutation.
func (u *BoardUseCase) record(ctx context.Context, entry journal.Entry) {
	if u.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if err := u.journal.Append(ctx, entry); err != nil {
		u.log.Errorf("failed to append %s %s to journal: %v", entry.Action, entry.ID, err)
	}
}

func (u *BoardUseCase) notify(entry journal.Entry, snap board.Snapshot) {
	if u.notifier == nil {
		return
	}
	u.notifier.Notify(entry, snap)
}

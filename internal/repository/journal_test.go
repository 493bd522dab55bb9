package repository

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"resty_chess/internal/domain/board"
	"resty_chess/internal/domain/journal"
)

type journalStore interface {
	Append(ctx context.Context, entry journal.Entry) error
	List(ctx context.Context, limit int) ([]journal.Entry, error)
}

func newRedisJournal(t *testing.T, limit int) (*RedisJournal, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisJournal(rdb, zap.NewNop().Sugar(), "test:journal", limit), mr
}

func sampleEntries(n int) []journal.Entry {
	b := board.New()
	entries := make([]journal.Entry, 0, n)
	for i := 0; i < n; i++ {
		from, to := "g1", "f3"
		if i%2 == 1 {
			from, to = "f3", "g1"
		}
		b.ToggleTurn()
		entries = append(entries, journal.NewMoveEntry(from, to, board.NewPiece(board.Knight, board.White), nil, b.Snapshot()))
	}
	return entries
}

func stores(t *testing.T, limit int) map[string]journalStore {
	rj, _ := newRedisJournal(t, limit)
	return map[string]journalStore{
		"redis":  rj,
		"memory": NewMemoryJournal(limit),
	}
}

func TestJournalKeepsOrder(t *testing.T) {
	for name, store := range stores(t, 0) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := sampleEntries(5)
			for _, e := range want {
				if err := store.Append(ctx, e); err != nil {
					t.Fatalf("Append: %v", err)
				}
			}

			got, err := store.List(ctx, 0)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}

			last, err := store.List(ctx, 2)
			if err != nil {
				t.Fatalf("List(2): %v", err)
			}
			if diff := cmp.Diff(want[3:], last); diff != "" {
				t.Errorf("last two mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJournalTrimsToLimit(t *testing.T) {
	for name, store := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			all := sampleEntries(7)
			for _, e := range all {
				if err := store.Append(ctx, e); err != nil {
					t.Fatalf("Append: %v", err)
				}
			}

			got, err := store.List(ctx, 0)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if diff := cmp.Diff(all[4:], got); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJournalEmpty(t *testing.T) {
	for name, store := range stores(t, 10) {
		t.Run(name, func(t *testing.T) {
			got, err := store.List(context.Background(), 5)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("List = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestRedisJournalSkipsMalformedEntries(t *testing.T) {
	j, mr := newRedisJournal(t, 0)
	ctx := context.Background()

	entry := sampleEntries(1)[0]
	if err := j.Append(ctx, entry); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := mr.Push("test:journal", "{not json"); err != nil {
		t.Fatalf("Push: %v", err)
	}

	got, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != entry.ID {
		t.Errorf("List = %+v, want only the valid entry", got)
	}
}

func TestRedisJournalAppendFailsWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	j := NewRedisJournal(rdb, zap.NewNop().Sugar(), "test:journal", 0)
	mr.Close()

	if err := j.Append(context.Background(), sampleEntries(1)[0]); err == nil {
		t.Error("expected an error with redis stopped")
	}
}

package board

import (
	"context"
	"sync"
	"testing"

	"kanbanify/internal/kvstore"
	"kanbanify/internal/utils"

	"go.uber.org/zap/zaptest"
)

// spyStore counts writes and can be switched into a failing mode.
type spyStore struct {
	*kvstore.MemoryStore
	mu   sync.Mutex
	sets int
	fail bool
}

func (s *spyStore) Set(ctx context.Context, key string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.fail {
		return false
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *spyStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

func newTestService(t *testing.T) (Service, *spyStore, *utils.EventBus) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := &spyStore{MemoryStore: kvstore.NewMemoryStore(logger)}
	bus := utils.NewEventBus()
	return NewService(store, bus, logger), store, bus
}

func seedFixture(t *testing.T, svc Service, userID string) *Board {
	t.Helper()
	b, ok := svc.SaveBoard(context.Background(), userID, fixture())
	if !ok {
		t.Fatal("seed fixture failed")
	}
	return b
}

func TestCommitMoveCanonical(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")
	before := store.setCount()

	result, found := svc.CommitMove(ctx, "u1", "b1", "x", "z")
	if !found {
		t.Fatal("board not found")
	}
	if !result.Moved || !result.Persisted {
		t.Fatalf("unexpected result %+v", result)
	}
	assertIDs(t, result.Board, "A", "y", "x", "z")
	if store.setCount() != before+1 {
		t.Fatalf("expected exactly one write, got %d", store.setCount()-before)
	}

	stored, _ := svc.GetBoard(ctx, "u1", "b1")
	assertIDs(t, stored, "A", "y", "x", "z")
}

func TestCommitMoveOntoColumnAppends(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	seedFixture(t, svc, "u1")

	result, _ := svc.CommitMove(ctx, "u1", "b1", "x", "B")
	assertIDs(t, result.Board, "A", "y", "z")
	assertIDs(t, result.Board, "B", "p", "q", "x")
}

func TestNoopMovesNeverPersist(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")
	before := store.setCount()

	for _, over := range []string{"x", "", "missing"} {
		result, found := svc.CommitMove(ctx, "u1", "b1", "x", over)
		if !found {
			t.Fatal("board not found")
		}
		if result.Moved {
			t.Fatalf("drop onto %q should be a no-op", over)
		}
		assertIDs(t, result.Board, "A", "x", "y", "z")
	}
	if store.setCount() != before {
		t.Fatalf("no-op drops wrote to the store %d times", store.setCount()-before)
	}
}

func TestPreviewMoveNeverPersists(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")
	before := store.setCount()

	preview, found := svc.PreviewMove(ctx, "u1", "b1", "x", "z")
	if !found {
		t.Fatal("board not found")
	}
	assertIDs(t, preview, "A", "y", "z", "x")

	stored, _ := svc.GetBoard(ctx, "u1", "b1")
	assertIDs(t, stored, "A", "x", "y", "z")
	if store.setCount() != before {
		t.Fatal("preview wrote to the store")
	}
}

func TestFailedWriteKeepsMoveInMemory(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")
	store.fail = true

	result, _ := svc.CommitMove(ctx, "u1", "b1", "x", "z")
	if !result.Moved || result.Persisted {
		t.Fatalf("unexpected result %+v", result)
	}
	assertIDs(t, result.Board, "A", "y", "x", "z")

	store.fail = false
	stored, _ := svc.GetBoard(ctx, "u1", "b1")
	assertIDs(t, stored, "A", "x", "y", "z")
}

func TestDragGestureThroughService(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")

	session, ok := svc.StartDrag(ctx, "u1", "b1", "x")
	if !ok {
		t.Fatal("StartDrag failed")
	}
	session.Over("y")
	session.Over("z")
	before := store.setCount()

	result := svc.CommitDrag(ctx, "u1", session, "z")
	if !result.Moved || !result.Persisted {
		t.Fatalf("unexpected result %+v", result)
	}
	assertIDs(t, result.Board, "A", "y", "x", "z")
	if store.setCount() != before+1 {
		t.Fatal("expected one write for the drop")
	}

	again := svc.CommitDrag(ctx, "u1", session, "q")
	if again.Moved {
		t.Fatal("a finished gesture must not commit twice")
	}
}

func TestCancelDragLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")

	session, _ := svc.StartDrag(ctx, "u1", "b1", "x")
	session.Over("z")
	before := store.setCount()

	reverted := svc.CancelDrag(session)
	assertIDs(t, reverted, "A", "x", "y", "z")

	result := svc.CommitDrag(ctx, "u1", session, "z")
	if result.Moved {
		t.Fatal("cancelled gesture should not commit")
	}
	if store.setCount() != before {
		t.Fatal("cancel wrote to the store")
	}
}

func TestCommitDragOutsideIsCancel(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")
	session, _ := svc.StartDrag(ctx, "u1", "b1", "q")
	before := store.setCount()

	result := svc.CommitDrag(ctx, "u1", session, "")
	if result.Moved || !session.Done() {
		t.Fatalf("unexpected result %+v", result)
	}
	assertIDs(t, result.Board, "B", "p", "q")
	if store.setCount() != before {
		t.Fatal("drop outside wrote to the store")
	}
}

func TestCreateBoardFromPreset(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	b, err := svc.CreateBoard(ctx, "u1", "Sprint 1", "agile")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Columns) != 4 || b.Columns[0].Title != "Sprint Backlog" {
		t.Fatalf("unexpected columns %+v", b.Columns)
	}
	stored, ok := svc.GetBoard(ctx, "u1", b.ID)
	if !ok || len(stored.Columns) != 4 {
		t.Fatal("preset columns were not persisted")
	}
	last, ok := svc.LastBoard(ctx, "u1")
	if !ok || last.ID != b.ID {
		t.Fatal("new board should become the last board")
	}

	if _, err := svc.CreateBoard(ctx, "u1", "x", "nope"); err == nil {
		t.Fatal("unknown preset should fail")
	}
}

func TestDeleteBoardMovesLastBoard(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	first, _ := svc.CreateBoard(ctx, "u1", "First", "")
	second, _ := svc.CreateBoard(ctx, "u1", "Second", "")
	if !svc.DeleteBoard(ctx, "u1", second.ID) {
		t.Fatal("DeleteBoard failed")
	}
	last, ok := svc.LastBoard(ctx, "u1")
	if !ok || last.ID != first.ID {
		t.Fatalf("last board = %+v", last)
	}

	svc.DeleteBoard(ctx, "u1", first.ID)
	if _, ok := svc.LastBoard(ctx, "u1"); ok {
		t.Fatal("no boards left, no last board expected")
	}
	if _, ok := svc.Repository("u1").LastBoardID(ctx); ok {
		t.Fatal("last board key should be cleared")
	}
}

func TestColumnAndCardOperations(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	b, _ := svc.CreateBoard(ctx, "u1", "Work", "")

	b, found, err := svc.AddColumn(ctx, "u1", b.ID, "Todo")
	if err != nil || !found {
		t.Fatalf("AddColumn: found=%v err=%v", found, err)
	}
	colID := b.Columns[0].ID

	b, _, err = svc.AddCard(ctx, "u1", b.ID, colID, "Ship it", CardDetails{Priority: PriorityHigh})
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Columns[0].Cards) != 1 || b.Columns[0].Cards[0].Priority != PriorityHigh {
		t.Fatalf("unexpected column %+v", b.Columns[0])
	}
	cardID := b.Columns[0].Cards[0].ID

	b, _ = svc.DeleteCard(ctx, "u1", b.ID, colID, cardID)
	if len(b.Columns[0].Cards) != 0 {
		t.Fatal("card not deleted")
	}

	b, _ = svc.DeleteColumn(ctx, "u1", b.ID, colID)
	if len(b.Columns) != 0 {
		t.Fatal("column not deleted")
	}

	if _, found, _ := svc.AddColumn(ctx, "u1", "missing", "Todo"); found {
		t.Fatal("AddColumn on a missing board should report not found")
	}
	if _, _, err := svc.RenameColumn(ctx, "u1", b.ID, colID, ""); err == nil {
		t.Fatal("empty column title should fail")
	}
}

func TestMutationsPublishEvents(t *testing.T) {
	ctx := context.Background()
	svc, _, bus := newTestService(t)

	seedFixture(t, svc, "u1")
	svc.CommitMove(ctx, "u1", "b1", "x", "x")
	svc.CommitMove(ctx, "u1", "b1", "x", "z")

	var got []utils.Event
	for len(bus.SubscribeCh()) > 0 {
		got = append(got, <-bus.SubscribeCh())
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2 (seed and move)", len(got))
	}
	if got[1].Event != utils.EventBoardUpdated || got[1].UserID != "u1" {
		t.Fatalf("unexpected move event %+v", got[1])
	}
}

func TestCommitDragKeepsChangesSavedDuringGesture(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")

	session, ok := svc.StartDrag(ctx, "u1", "b1", "x")
	if !ok {
		t.Fatal("StartDrag failed")
	}
	session.Over("z")
	if _, _, err := svc.AddCard(ctx, "u1", "b1", "B", "late card", CardDetails{}); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	before := store.setCount()

	result := svc.CommitDrag(ctx, "u1", session, "z")
	if !result.Moved || !result.Persisted {
		t.Fatalf("unexpected result %+v", result)
	}
	if store.setCount() != before+1 {
		t.Fatal("expected one write for the drop")
	}
	stored, _ := svc.GetBoard(ctx, "u1", "b1")
	assertIDs(t, stored, "A", "y", "x", "z")
	col, _ := FindColumn(stored, "B")
	if len(col.Cards) != 3 || col.Cards[2].Title != "late card" {
		t.Fatalf("card added during the drag was lost: %v", cardIDs(stored, "B"))
	}
}

func TestCommitDragOfDeletedCardIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")

	session, _ := svc.StartDrag(ctx, "u1", "b1", "x")
	if _, ok := svc.DeleteCard(ctx, "u1", "b1", "A", "x"); !ok {
		t.Fatal("DeleteCard failed")
	}
	before := store.setCount()

	result := svc.CommitDrag(ctx, "u1", session, "q")
	if result.Moved || !session.Done() {
		t.Fatalf("unexpected result %+v", result)
	}
	if store.setCount() != before {
		t.Fatal("a stale drop wrote to the store")
	}
	stored, _ := svc.GetBoard(ctx, "u1", "b1")
	assertIDs(t, stored, "A", "y", "z")
	assertIDs(t, stored, "B", "p", "q")
}

func TestCommitDragOnDeletedBoardIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")

	session, _ := svc.StartDrag(ctx, "u1", "b1", "x")
	svc.DeleteBoard(ctx, "u1", "b1")
	before := store.setCount()

	result := svc.CommitDrag(ctx, "u1", session, "z")
	if result.Moved || store.setCount() != before {
		t.Fatalf("drop on a deleted board must not write: %+v", result)
	}
	if _, ok := svc.GetBoard(ctx, "u1", "b1"); ok {
		t.Fatal("deleted board was recreated")
	}
}

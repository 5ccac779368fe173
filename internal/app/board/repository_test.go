package board

import (
	"context"
	"reflect"
	"strconv"
	"testing"

	"kanbanify/internal/apperr"
	"kanbanify/internal/kvstore"

	"go.uber.org/zap/zaptest"
)

// newTestRepository returns a repository with a deterministic clock and ids.
func newTestRepository(t *testing.T, store kvstore.Store, userID string) *repository {
	t.Helper()
	repo := NewRepository(store, userID, zaptest.NewLogger(t)).(*repository)
	var tick int64
	repo.now = func() int64 {
		tick++
		return 1000 + tick
	}
	var seq int
	repo.newID = func() string {
		seq++
		return "id-" + strconv.Itoa(seq)
	}
	return repo
}

func TestCreateBoardValidatesName(t *testing.T) {
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")
	_, err := repo.CreateBoard(context.Background(), "  ")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Board name cannot be empty or null" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if len(repo.ListBoards(context.Background())) != 0 {
		t.Fatal("invalid board should not be stored")
	}
}

func TestListBoardsOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")
	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.CreateBoard(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	boards := repo.ListBoards(ctx)
	if len(boards) != 3 {
		t.Fatalf("got %d boards", len(boards))
	}
	for i, want := range []string{"first", "second", "third"} {
		if boards[i].Name != want {
			t.Fatalf("boards[%d] = %q, want %q", i, boards[i].Name, want)
		}
	}
}

func TestRepositoriesAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore(zaptest.NewLogger(t))
	alice := newTestRepository(t, store, "alice")
	bob := newTestRepository(t, store, "bob")

	b, err := alice.CreateBoard(ctx, "Alice's board")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := bob.GetBoard(ctx, b.ID); ok {
		t.Fatal("bob can see alice's board")
	}
	if len(bob.ListBoards(ctx)) != 0 {
		t.Fatal("bob's partition should be empty")
	}
	if !store.Has(kvstore.BoardsKey("alice")) || store.Has(kvstore.BoardsKey("bob")) {
		t.Fatal("unexpected partitions in store")
	}
}

func TestGetOrCreateDefaultBoardIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "")
	first := repo.GetOrCreateDefaultBoard(ctx)
	second := repo.GetOrCreateDefaultBoard(ctx)
	if first.ID != "default-board-global" || second.ID != first.ID {
		t.Fatalf("default board ids %q, %q", first.ID, second.ID)
	}
	if first.Name != "My Kanban Board" {
		t.Fatalf("name = %q", first.Name)
	}
	if n := len(repo.ListBoards(ctx)); n != 1 {
		t.Fatalf("got %d boards, want 1", n)
	}
}

func TestUpdateBoardName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")
	b, _ := repo.CreateBoard(ctx, "Old")

	updated, found, err := repo.UpdateBoardName(ctx, b.ID, "New")
	if err != nil || !found || updated.Name != "New" {
		t.Fatalf("UpdateBoardName: %+v found=%v err=%v", updated, found, err)
	}
	stored, _ := repo.GetBoard(ctx, b.ID)
	if stored.Name != "New" {
		t.Fatalf("stored name = %q", stored.Name)
	}

	if _, found, err := repo.UpdateBoardName(ctx, "missing", "x"); found || err != nil {
		t.Fatalf("missing board: found=%v err=%v", found, err)
	}
	if _, _, err := repo.UpdateBoardName(ctx, b.ID, ""); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteBoard(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")
	b, _ := repo.CreateBoard(ctx, "Doomed")
	if !repo.DeleteBoard(ctx, b.ID) {
		t.Fatal("DeleteBoard failed")
	}
	if _, ok := repo.GetBoard(ctx, b.ID); ok {
		t.Fatal("board still present")
	}
	if repo.DeleteBoard(ctx, b.ID) {
		t.Fatal("deleting twice should report false")
	}
}

func TestCreateCardDefaults(t *testing.T) {
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")
	c, err := repo.CreateCard("  Write tests ", CardDetails{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Title != "Write tests" || c.Priority != PriorityMedium || c.Tags == nil || c.DueDate != nil {
		t.Fatalf("unexpected card %+v", c)
	}
	if c.ID == "" || c.CreatedAt == 0 {
		t.Fatal("card should get an id and a timestamp")
	}

	if _, err := repo.CreateCard("x", CardDetails{Priority: "urgent"}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := repo.CreateColumn(""); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCorruptPartitionReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore(zaptest.NewLogger(t))
	store.SetRaw(kvstore.BoardsKey("u1"), []byte("{not json"))
	repo := newTestRepository(t, store, "u1")
	if n := len(repo.ListBoards(ctx)); n != 0 {
		t.Fatalf("got %d boards from a corrupt partition", n)
	}
}

func TestLastBoardID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")
	if _, ok := repo.LastBoardID(ctx); ok {
		t.Fatal("no last board expected")
	}
	repo.SetLastBoardID(ctx, "b7")
	if id, ok := repo.LastBoardID(ctx); !ok || id != "b7" {
		t.Fatalf("LastBoardID = %q, %v", id, ok)
	}
	repo.ClearLastBoardID(ctx)
	if _, ok := repo.LastBoardID(ctx); ok {
		t.Fatal("last board should be cleared")
	}
}

func TestSaveBoardRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")

	due := "2025-03-14"
	want := &Board{
		ID:        "b1",
		Name:      "Release",
		CreatedAt: 1700000000000,
		Columns: []*Column{
			{ID: "todo", Title: "To Do", Cards: []*Card{
				{
					ID:          "c1",
					Title:       "Ship it",
					Description: "cut the tag",
					DueDate:     &due,
					Tags:        []Tag{{Label: "release", Color: "green"}, {Label: "ops", Color: "red"}},
					Priority:    PriorityCritical,
					CreatedAt:   1700000000001,
				},
				{ID: "c2", Title: "Notes", Tags: []Tag{}, Priority: PriorityLow, CreatedAt: 1700000000002},
			}},
			{ID: "done", Title: "Done", Cards: []*Card{}},
		},
	}

	if _, ok := repo.SaveBoard(ctx, want.Clone()); !ok {
		t.Fatal("SaveBoard failed")
	}
	got, ok := repo.GetBoard(ctx, "b1")
	if !ok {
		t.Fatal("board not found after save")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestListBoardsBreaksTiesByID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, kvstore.NewMemoryStore(zaptest.NewLogger(t)), "u1")
	repo.now = func() int64 { return 5000 }
	ids := []string{"c", "a", "b"}
	repo.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	for _, name := range []string{"third", "first", "second"} {
		if _, err := repo.CreateBoard(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	boardIDs := func() []string {
		var out []string
		for _, b := range repo.ListBoards(ctx) {
			out = append(out, b.ID)
		}
		return out
	}
	first, second := boardIDs(), boardIDs()
	if !reflect.DeepEqual(first, []string{"a", "b", "c"}) {
		t.Fatalf("order = %v", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("listing is not stable: %v then %v", first, second)
	}
}

func TestEmptyNamesNeverReachTheStore(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedFixture(t, svc, "u1")
	before := store.setCount()

	repo := svc.Repository("u1")
	if _, err := repo.CreateBoard(ctx, ""); !apperr.IsValidation(err) {
		t.Fatalf("CreateBoard(\"\") err = %v", err)
	}
	if _, err := repo.CreateCard("", CardDetails{}); !apperr.IsValidation(err) {
		t.Fatalf("CreateCard(\"\") err = %v", err)
	}
	if _, err := repo.CreateColumn("  "); !apperr.IsValidation(err) {
		t.Fatalf("CreateColumn err = %v", err)
	}
	if _, err := svc.CreateBoard(ctx, "u1", "", "simple"); !apperr.IsValidation(err) {
		t.Fatalf("service CreateBoard err = %v", err)
	}
	if _, _, err := svc.AddCard(ctx, "u1", "b1", "A", "", CardDetails{}); !apperr.IsValidation(err) {
		t.Fatalf("AddCard err = %v", err)
	}
	if _, _, err := svc.AddColumn(ctx, "u1", "b1", ""); !apperr.IsValidation(err) {
		t.Fatalf("AddColumn err = %v", err)
	}

	if store.setCount() != before {
		t.Fatalf("validation failures wrote %d times", store.setCount()-before)
	}
	if boards := svc.ListBoards(ctx, "u1"); len(boards) != 1 {
		t.Fatalf("got %d boards, want only the fixture", len(boards))
	}
}

func TestNullEntriesInStoredPartitionAreSkipped(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore(zaptest.NewLogger(t))
	store.SetRaw(kvstore.BoardsKey("u1"), []byte(`{"b1":{"id":"b1","name":"B","columns":[null,{"id":"A","title":"A","cards":[null,{"id":"x","title":"x"}]}]},"b2":null}`))
	repo := newTestRepository(t, store, "u1")

	boards := repo.ListBoards(ctx)
	if len(boards) != 1 {
		t.Fatalf("got %d boards", len(boards))
	}
	b := boards[0]
	if len(b.Columns) != 1 {
		t.Fatalf("columns = %d, want 1", len(b.Columns))
	}
	assertIDs(t, b, "A", "x")

	result, moved := MoveCard(b, "x", "A")
	if !moved {
		t.Fatal("a cleaned board should still accept moves")
	}
	assertIDs(t, result, "A", "x")
}

func TestUnscopedLastBoardIsSeparateFromUserGlobal(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore(zaptest.NewLogger(t))
	unscoped := newTestRepository(t, store, "")
	named := newTestRepository(t, store, "global")

	unscoped.SetLastBoardID(ctx, "b-unscoped")
	named.SetLastBoardID(ctx, "b-named")

	if id, _ := unscoped.LastBoardID(ctx); id != "b-unscoped" {
		t.Fatalf("unscoped last board = %q", id)
	}
	if id, _ := named.LastBoardID(ctx); id != "b-named" {
		t.Fatalf("user global last board = %q", id)
	}
	if !store.Has(kvstore.KeyGlobalLastBoard) {
		t.Fatal("unscoped pointer should live under the unscoped key")
	}
}

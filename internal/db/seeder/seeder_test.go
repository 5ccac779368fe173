package seeder

import (
	"context"
	"testing"
	"time"

	"kanbanify/internal/app/auth"
	"kanbanify/internal/app/board"
	"kanbanify/internal/app/session"
	"kanbanify/internal/app/user"
	"kanbanify/internal/kvstore"

	"go.uber.org/zap/zaptest"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	store := kvstore.NewMemoryStore(logger)

	authSvc := auth.NewService(auth.NewRepository(store), session.NewRepository(store), auth.NewTokenIssuer("s", time.Hour), logger)
	users := user.NewService(user.NewRepository(store, logger), logger)
	boards := board.NewService(store, nil, logger)
	s := NewSeeder(authSvc, users, boards, logger)

	if err := s.Seed(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Seed(ctx); err != nil {
		t.Fatal(err)
	}

	profiles := authSvc.Profiles(ctx)
	if len(profiles) != 3 {
		t.Fatalf("got %d accounts", len(profiles))
	}
	for _, p := range profiles {
		list := boards.ListBoards(ctx, p.ID)
		if len(list) != 1 {
			t.Fatalf("%s has %d boards", p.Username, len(list))
		}
		if n := len(list[0].Columns[0].Cards); n != len(welcomeCards) {
			t.Fatalf("%s welcome board has %d cards", p.Username, n)
		}
	}
	if len(boards.ListBoards(ctx, user.DefaultUserID)) != 1 {
		t.Fatal("default user should get a welcome board")
	}
}

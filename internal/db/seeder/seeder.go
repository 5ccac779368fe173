package seeder

import (
	"context"
	"fmt"

	"kanbanify/internal/app/auth"
	"kanbanify/internal/app/board"
	"kanbanify/internal/app/user"

	"go.uber.org/zap"
)

type welcomeCard struct {
	title    string
	priority board.Priority
	tags     []board.Tag
}

var welcomeCards = []welcomeCard{
	{"Drag me onto another card", board.PriorityMedium, []board.Tag{{Label: "tutorial", Color: "blue"}}},
	{"Drop a card on a column to append it", board.PriorityLow, nil},
	{"Ship the first release", board.PriorityHigh, []board.Tag{{Label: "release", Color: "green"}}},
}

type Seeder struct {
	auth   auth.Service
	users  user.Service
	boards board.Service
	logger *zap.Logger
}

func NewSeeder(authSvc auth.Service, users user.Service, boards board.Service, logger *zap.Logger) *Seeder {
	return &Seeder{
		auth:   authSvc,
		users:  users,
		boards: boards,
		logger: logger,
	}
}

// Seed creates the demo accounts and gives every account without boards a
// welcome board. Running it again changes nothing.
func (s *Seeder) Seed(ctx context.Context) error {
	s.logger.Info("Running seeders...")

	if err := s.auth.Initialize(ctx); err != nil {
		return fmt.Errorf("seed auth users: %w", err)
	}
	current := s.users.Initialize(ctx)
	s.logger.Info("Current user", zap.String("user_id", current.ID))

	scopes := []string{current.ID}
	for _, p := range s.auth.Profiles(ctx) {
		scopes = append(scopes, p.ID)
	}
	seeded := 0
	for _, userID := range scopes {
		ok, err := s.seedWelcomeBoard(ctx, userID)
		if err != nil {
			return err
		}
		if ok {
			seeded++
		}
	}

	s.logger.Info("Seeders completed successfully", zap.Int("boards", seeded))
	return nil
}

func (s *Seeder) seedWelcomeBoard(ctx context.Context, userID string) (bool, error) {
	if len(s.boards.ListBoards(ctx, userID)) > 0 {
		s.logger.Debug("Boards already exist, skipping seed", zap.String("user_id", userID))
		return false, nil
	}

	b, err := s.boards.CreateBoard(ctx, userID, "Welcome", "simple")
	if err != nil {
		return false, fmt.Errorf("seed board for %s: %w", userID, err)
	}
	todo := b.Columns[0].ID
	for _, c := range welcomeCards {
		details := board.CardDetails{Priority: c.priority, Tags: c.tags}
		if _, _, err := s.boards.AddCard(ctx, userID, b.ID, todo, c.title, details); err != nil {
			return false, fmt.Errorf("seed card %q: %w", c.title, err)
		}
	}
	return true, nil
}

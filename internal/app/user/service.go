package user

import (
	"context"
	"strings"

	"kanbanify/internal/apperr"
	"kanbanify/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	ListUsers(ctx context.Context) []User
	GetUser(ctx context.Context, id string) (*User, bool)
	CreateUser(ctx context.Context, name, color string) (*User, error)
	UpdateUser(ctx context.Context, id string, patch Patch) (*User, bool, error)
	DeleteUser(ctx context.Context, id string) bool
	CurrentUser(ctx context.Context) (*User, bool)
	SetCurrentUser(ctx context.Context, id string) bool
	GetOrCreateDefaultUser(ctx context.Context) *User
	Initialize(ctx context.Context) *User
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
	now    func() int64
	newID  func() string
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Sugar(),
		now:    utils.NowMillis,
		newID:  utils.NewUserID,
	}
}

func (s *service) ListUsers(ctx context.Context) []User {
	return s.repo.List(ctx)
}

func (s *service) GetUser(ctx context.Context, id string) (*User, bool) {
	for _, u := range s.repo.List(ctx) {
		if u.ID == id {
			found := u
			return &found, true
		}
	}
	return nil, false
}

func (s *service) CreateUser(ctx context.Context, name, color string) (*User, error) {
	users := s.repo.List(ctx)
	name = strings.TrimSpace(name)
	if name == "" {
		name = newUserName
	}
	if color == "" {
		color = Palette[len(users)%len(Palette)]
	}

	u := User{ID: s.newID(), Name: name, Color: color, CreatedAt: s.now()}
	if !s.repo.SaveAll(ctx, append(users, u)) {
		return nil, apperr.New(apperr.CodeStorage, "failed to save user")
	}
	s.logger.Infow("User created", "user_id", u.ID, "name", u.Name)
	return &u, nil
}

func (s *service) UpdateUser(ctx context.Context, id string, patch Patch) (*User, bool, error) {
	if patch.Name != nil {
		if err := apperr.ValidateString(*patch.Name, "User name"); err != nil {
			return nil, false, err
		}
	}
	users := s.repo.List(ctx)
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Name != nil {
			users[i].Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Color != nil {
			users[i].Color = *patch.Color
		}
		if !s.repo.SaveAll(ctx, users) {
			return nil, true, apperr.New(apperr.CodeStorage, "failed to save user")
		}
		updated := users[i]
		return &updated, true, nil
	}
	return nil, false, nil
}

// DeleteUser removes the user together with every board they own.
func (s *service) DeleteUser(ctx context.Context, id string) bool {
	users := s.repo.List(ctx)
	kept := make([]User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return false
	}
	if !s.repo.SaveAll(ctx, kept) {
		s.logger.Errorw("Failed to persist user deletion", "user_id", id)
		return false
	}

	if current, ok := s.repo.CurrentUserID(ctx); ok && current == id {
		s.repo.ClearCurrentUserID(ctx)
	}
	if !s.repo.DropBoards(ctx, id) {
		s.logger.Warnw("Failed to remove boards of deleted user", "user_id", id)
	}
	s.logger.Infow("User deleted", "user_id", id)
	return true
}

func (s *service) CurrentUser(ctx context.Context) (*User, bool) {
	id, ok := s.repo.CurrentUserID(ctx)
	if !ok {
		return nil, false
	}
	return s.GetUser(ctx, id)
}

// SetCurrentUser only selects users that exist.
func (s *service) SetCurrentUser(ctx context.Context, id string) bool {
	if _, ok := s.GetUser(ctx, id); !ok {
		return false
	}
	return s.repo.SetCurrentUserID(ctx, id)
}

func (s *service) GetOrCreateDefaultUser(ctx context.Context) *User {
	if u, ok := s.GetUser(ctx, DefaultUserID); ok {
		return u
	}
	u := User{ID: DefaultUserID, Name: defaultUserName, Color: defaultUserColor, CreatedAt: s.now()}
	if !s.repo.SaveAll(ctx, append(s.repo.List(ctx), u)) {
		s.logger.Errorw("Failed to persist default user")
	}
	return &u
}

// Initialize returns the selected user, choosing one when none is selected.
// On a fresh store the default user is created and inherits any boards saved
// before users existed.
func (s *service) Initialize(ctx context.Context) *User {
	if u, ok := s.CurrentUser(ctx); ok {
		return u
	}

	users := s.repo.List(ctx)
	if len(users) > 0 {
		first := users[0]
		s.repo.SetCurrentUserID(ctx, first.ID)
		return &first
	}

	u := s.GetOrCreateDefaultUser(ctx)
	if s.repo.MigrateLegacyBoards(ctx, u.ID) {
		s.logger.Infow("Legacy boards assigned to default user", "user_id", u.ID)
	}
	s.repo.SetCurrentUserID(ctx, u.ID)
	return u
}

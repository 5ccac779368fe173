package user

import (
	"context"

	"kanbanify/internal/app/board"
	"kanbanify/internal/kvstore"

	"go.uber.org/zap"
)

// Repository reads and writes the user directory, which is stored as a single
// array, and the id of the selected user.
type Repository interface {
	List(ctx context.Context) []User
	SaveAll(ctx context.Context, users []User) bool
	CurrentUserID(ctx context.Context) (string, bool)
	SetCurrentUserID(ctx context.Context, id string) bool
	ClearCurrentUserID(ctx context.Context) bool
	DropBoards(ctx context.Context, userID string) bool
	MigrateLegacyBoards(ctx context.Context, userID string) bool
}

type repository struct {
	store  kvstore.Store
	logger *zap.SugaredLogger
}

func NewRepository(store kvstore.Store, logger *zap.Logger) Repository {
	return &repository{store: store, logger: logger.Sugar()}
}

func (r *repository) List(ctx context.Context) []User {
	users := kvstore.GetOr(ctx, r.store, kvstore.KeyUsers, []User{})
	if users == nil {
		return []User{}
	}
	return users
}

func (r *repository) SaveAll(ctx context.Context, users []User) bool {
	if users == nil {
		users = []User{}
	}
	return r.store.Set(ctx, kvstore.KeyUsers, users)
}

func (r *repository) CurrentUserID(ctx context.Context) (string, bool) {
	var id string
	if !r.store.Get(ctx, kvstore.KeyCurrentUser, &id) || id == "" {
		return "", false
	}
	return id, true
}

func (r *repository) SetCurrentUserID(ctx context.Context, id string) bool {
	return r.store.Set(ctx, kvstore.KeyCurrentUser, id)
}

func (r *repository) ClearCurrentUserID(ctx context.Context) bool {
	return r.store.Remove(ctx, kvstore.KeyCurrentUser)
}

// DropBoards removes the user's board partition and last-board pointer.
func (r *repository) DropBoards(ctx context.Context, userID string) bool {
	okBoards := r.store.Remove(ctx, kvstore.BoardsKey(userID))
	okLast := r.store.Remove(ctx, kvstore.LastBoardKey(userID))
	return okBoards && okLast
}

// MigrateLegacyBoards moves the unscoped board partition to userID. It reports
// false when there was nothing to migrate.
func (r *repository) MigrateLegacyBoards(ctx context.Context, userID string) bool {
	var legacy map[string]*board.Board
	if !r.store.Get(ctx, kvstore.KeyGlobalBoards, &legacy) {
		return false
	}
	if !r.store.Set(ctx, kvstore.BoardsKey(userID), legacy) {
		r.logger.Errorw("Failed to migrate legacy boards", "user_id", userID)
		return false
	}
	r.store.Remove(ctx, kvstore.KeyGlobalBoards)
	r.logger.Infow("Migrated legacy boards", "user_id", userID, "boards", len(legacy))
	return true
}

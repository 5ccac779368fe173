package auth

import (
	"context"

	"kanbanify/internal/kvstore"
)

type Repository interface {
	List(ctx context.Context) []AuthUser
	SaveAll(ctx context.Context, users []AuthUser) bool
}

type repository struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) []AuthUser {
	users := kvstore.GetOr(ctx, r.store, kvstore.KeyAuthUsers, []AuthUser{})
	if users == nil {
		return []AuthUser{}
	}
	return users
}

func (r *repository) SaveAll(ctx context.Context, users []AuthUser) bool {
	return r.store.Set(ctx, kvstore.KeyAuthUsers, users)
}

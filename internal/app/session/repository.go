package session

import (
	"context"

	"kanbanify/internal/kvstore"
)

type Repository interface {
	Get(ctx context.Context) (*Session, bool)
	Save(ctx context.Context, session *Session) bool
	Clear(ctx context.Context) bool
}

type repository struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Get(ctx context.Context) (*Session, bool) {
	var s Session
	if !r.store.Get(ctx, kvstore.KeySession, &s) || s.UserID == "" {
		return nil, false
	}
	return &s, true
}

func (r *repository) Save(ctx context.Context, session *Session) bool {
	return r.store.Set(ctx, kvstore.KeySession, session)
}

func (r *repository) Clear(ctx context.Context) bool {
	return r.store.Remove(ctx, kvstore.KeySession)
}

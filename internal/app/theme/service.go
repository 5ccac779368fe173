package theme

import (
	"context"

	"kanbanify/internal/kvstore"

	"go.uber.org/zap"
)

const (
	Light = "light"
	Dark  = "dark"
)

// Service keeps one global theme preference shared by every user.
type Service interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, theme string) bool
	Toggle(ctx context.Context) string
}

type service struct {
	store  kvstore.Store
	logger *zap.SugaredLogger
}

func NewService(store kvstore.Store, logger *zap.Logger) Service {
	return &service{store: store, logger: logger.Sugar()}
}

func Valid(theme string) bool {
	return theme == Light || theme == Dark
}

func (s *service) Get(ctx context.Context) string {
	theme := kvstore.GetOr(ctx, s.store, kvstore.KeyTheme, Dark)
	if !Valid(theme) {
		return Dark
	}
	return theme
}

func (s *service) Set(ctx context.Context, theme string) bool {
	if !Valid(theme) {
		s.logger.Warnw("Invalid theme", "theme", theme)
		return false
	}
	return s.store.Set(ctx, kvstore.KeyTheme, theme)
}

// Toggle flips the theme and returns the new value even if it was not saved.
func (s *service) Toggle(ctx context.Context) string {
	next := Light
	if s.Get(ctx) == Light {
		next = Dark
	}
	if !s.Set(ctx, next) {
		s.logger.Errorw("Failed to persist theme", "theme", next)
	}
	return next
}

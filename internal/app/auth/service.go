package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kanbanify/internal/app/session"
	"kanbanify/internal/apperr"
	"kanbanify/internal/utils"

	"go.uber.org/zap"
)

const invalidCredentials = "Invalid username or password"

type LoginResult struct {
	User      *session.Session `json:"user"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type Service interface {
	Initialize(ctx context.Context) error
	CreateAuthUser(ctx context.Context, username, password, name, color string) (*AuthUser, error)
	Profiles(ctx context.Context) []Profile
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context) bool
	CurrentSession(ctx context.Context) (*session.Session, bool)
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*Profile, bool)
	UserIDFromToken(token string) (string, error)
}

type service struct {
	repo     Repository
	sessions session.Repository
	tokens   *TokenIssuer
	logger   *zap.SugaredLogger
	now      func() int64
	newID    func() string
}

func NewService(repo Repository, sessions session.Repository, tokens *TokenIssuer, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger.Sugar(),
		now:      utils.NowMillis,
		newID:    utils.NewUserID,
	}
}

// Initialize creates the demo accounts when no account exists yet.
func (s *service) Initialize(ctx context.Context) error {
	if len(s.repo.List(ctx)) > 0 {
		return nil
	}
	for _, d := range demoUsers {
		if _, err := s.CreateAuthUser(ctx, d.username, d.password, d.name, d.color); err != nil {
			return fmt.Errorf("create demo user %s: %w", d.username, err)
		}
	}
	s.logger.Infow("Demo users created", "count", len(demoUsers))
	return nil
}

func (s *service) CreateAuthUser(ctx context.Context, username, password, name, color string) (*AuthUser, error) {
	if err := apperr.ValidateString(username, "Username"); err != nil {
		return nil, err
	}
	if err := apperr.ValidateString(password, "Password"); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)

	users := s.repo.List(ctx)
	for _, u := range users {
		if u.Username == username {
			return nil, apperr.Validation("Username already exists")
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = username
	}
	if color == "" {
		color = defaultColor
	}
	u := AuthUser{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: HashPassword(password),
		Name:         name,
		Color:        color,
		CreatedAt:    s.now(),
	}
	if !s.repo.SaveAll(ctx, append(users, u)) {
		return nil, apperr.New(apperr.CodeStorage, "failed to save user")
	}
	return &u, nil
}

func (s *service) Profiles(ctx context.Context) []Profile {
	users := s.repo.List(ctx)
	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles
}

// Login writes the session record and returns it with a signed token.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	hash := HashPassword(password)
	var match *AuthUser
	for _, u := range s.repo.List(ctx) {
		if u.Username == username && u.PasswordHash == hash {
			found := u
			match = &found
			break
		}
	}
	if match == nil {
		s.logger.Warnw("Login failed", "username", username)
		return nil, apperr.Auth(invalidCredentials)
	}

	sess := &session.Session{
		UserID:    match.ID,
		Username:  match.Username,
		Name:      match.Name,
		Color:     match.Color,
		LoginTime: s.now(),
	}
	if !s.sessions.Save(ctx, sess) {
		return nil, apperr.New(apperr.CodeStorage, "Login failed")
	}

	token, expiresAt, err := s.tokens.Issue(match)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", username, err)
	}
	s.logger.Infow("User logged in", "user_id", match.ID, "username", match.Username)
	return &LoginResult{User: sess, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *service) Logout(ctx context.Context) bool {
	return s.sessions.Clear(ctx)
}

func (s *service) CurrentSession(ctx context.Context) (*session.Session, bool) {
	return s.sessions.Get(ctx)
}

func (s *service) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.sessions.Get(ctx)
	return ok
}

func (s *service) CurrentUser(ctx context.Context) (*Profile, bool) {
	sess, ok := s.sessions.Get(ctx)
	if !ok {
		return nil, false
	}
	return &Profile{ID: sess.UserID, Name: sess.Name, Color: sess.Color, Username: sess.Username}, true
}

// UserIDFromToken accepts tokens of accounts that still exist.
func (s *service) UserIDFromToken(token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	for _, u := range s.repo.List(context.Background()) {
		if u.ID == claims.UserID {
			return u.ID, nil
		}
	}
	return "", fmt.Errorf("%w: unknown user %s", ErrInvalidToken, claims.UserID)
}

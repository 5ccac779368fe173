package board

import (
	"context"
	"sort"
	"strings"

	"kanbanify/internal/apperr"
	"kanbanify/internal/kvstore"
	"kanbanify/internal/utils"

	"go.uber.org/zap"
)

const (
	defaultBoardName = "My Kanban Board"
	defaultBoardID   = "default-board-"
)

// Repository is the board store of one user scope. It keeps no state besides
// the scope: every call reads or writes the user's partition in the store.
type Repository interface {
	UserID() string
	ListBoards(ctx context.Context) []*Board
	GetBoard(ctx context.Context, id string) (*Board, bool)
	CreateBoard(ctx context.Context, name string) (*Board, error)
	UpdateBoardName(ctx context.Context, id, name string) (*Board, bool, error)
	DeleteBoard(ctx context.Context, id string) bool
	SaveBoard(ctx context.Context, board *Board) (*Board, bool)
	GetOrCreateDefaultBoard(ctx context.Context) *Board
	CreateColumn(title string) (*Column, error)
	CreateCard(title string, details CardDetails) (*Card, error)
	FindCard(board *Board, cardID string) (*Column, *Card, bool)
	FindColumn(board *Board, columnID string) (*Column, bool)
	LastBoardID(ctx context.Context) (string, bool)
	SetLastBoardID(ctx context.Context, boardID string) bool
	ClearLastBoardID(ctx context.Context) bool
}

type repository struct {
	store  kvstore.Store
	userID string
	key    string
	logger *zap.SugaredLogger
	now    func() int64
	newID  func() string
}

func NewRepository(store kvstore.Store, userID string, logger *zap.Logger) Repository {
	return &repository{
		store:  store,
		userID: userID,
		key:    kvstore.BoardsKey(userID),
		logger: logger.Sugar().With("user_id", userID),
		now:    utils.NowMillis,
		newID:  func() string { return utils.NewID("") },
	}
}

func (r *repository) UserID() string {
	return r.userID
}

func (r *repository) load(ctx context.Context) map[string]*Board {
	boards := kvstore.GetOr(ctx, r.store, r.key, map[string]*Board{})
	if boards == nil {
		boards = map[string]*Board{}
	}
	for id, b := range boards {
		if b == nil {
			delete(boards, id)
			continue
		}
		b.normalize()
	}
	return boards
}

func (r *repository) ListBoards(ctx context.Context) []*Board {
	boards := r.load(ctx)
	list := make([]*Board, 0, len(boards))
	for _, b := range boards {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt != list[j].CreatedAt {
			return list[i].CreatedAt < list[j].CreatedAt
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (r *repository) GetBoard(ctx context.Context, id string) (*Board, bool) {
	b, ok := r.load(ctx)[id]
	return b, ok
}

func (r *repository) CreateBoard(ctx context.Context, name string) (*Board, error) {
	if err := apperr.ValidateString(name, "Board name"); err != nil {
		return nil, err
	}
	b := &Board{
		ID:        r.newID(),
		Name:      strings.TrimSpace(name),
		Columns:   []*Column{},
		CreatedAt: r.now(),
	}
	r.SaveBoard(ctx, b)
	return b, nil
}

func (r *repository) UpdateBoardName(ctx context.Context, id, name string) (*Board, bool, error) {
	if err := apperr.ValidateString(name, "Board name"); err != nil {
		return nil, false, err
	}
	b, ok := r.GetBoard(ctx, id)
	if !ok {
		return nil, false, nil
	}
	b.Name = strings.TrimSpace(name)
	r.SaveBoard(ctx, b)
	return b, true, nil
}

func (r *repository) DeleteBoard(ctx context.Context, id string) bool {
	boards := r.load(ctx)
	if _, ok := boards[id]; !ok {
		return false
	}
	delete(boards, id)
	if !r.store.Set(ctx, r.key, boards) {
		r.logger.Errorw("Failed to persist board deletion", "board_id", id)
		return false
	}
	return true
}

// SaveBoard overwrites the stored board with the same id (last write wins).
// The board is returned even when the write fails; the bool reports persistence.
func (r *repository) SaveBoard(ctx context.Context, board *Board) (*Board, bool) {
	board.normalize()
	boards := r.load(ctx)
	boards[board.ID] = board
	if !r.store.Set(ctx, r.key, boards) {
		r.logger.Errorw("Failed to persist board", "board_id", board.ID)
		return board, false
	}
	return board, true
}

func (r *repository) GetOrCreateDefaultBoard(ctx context.Context) *Board {
	scope := r.userID
	if scope == "" {
		scope = "global"
	}
	id := defaultBoardID + scope
	if b, ok := r.GetBoard(ctx, id); ok {
		return b
	}
	b := &Board{ID: id, Name: defaultBoardName, Columns: []*Column{}, CreatedAt: r.now()}
	r.SaveBoard(ctx, b)
	return b
}

func (r *repository) CreateColumn(title string) (*Column, error) {
	if err := apperr.ValidateString(title, "Column title"); err != nil {
		return nil, err
	}
	return &Column{ID: r.newID(), Title: strings.TrimSpace(title), Cards: []*Card{}}, nil
}

func (r *repository) CreateCard(title string, details CardDetails) (*Card, error) {
	if err := apperr.ValidateString(title, "Card title"); err != nil {
		return nil, err
	}
	priority := details.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperr.Validation("priority %q is not one of low, medium, high, critical", priority)
	}
	tags := append([]Tag{}, details.Tags...)
	return &Card{
		ID:          r.newID(),
		Title:       strings.TrimSpace(title),
		Description: details.Description,
		DueDate:     details.DueDate,
		Tags:        tags,
		Priority:    priority,
		CreatedAt:   r.now(),
	}, nil
}

func (r *repository) FindCard(board *Board, cardID string) (*Column, *Card, bool) {
	return FindCard(board, cardID)
}

func (r *repository) FindColumn(board *Board, columnID string) (*Column, bool) {
	return FindColumn(board, columnID)
}

func (r *repository) LastBoardID(ctx context.Context) (string, bool) {
	var id string
	if !r.store.Get(ctx, kvstore.LastBoardKey(r.userID), &id) || id == "" {
		return "", false
	}
	return id, true
}

func (r *repository) SetLastBoardID(ctx context.Context, boardID string) bool {
	return r.store.Set(ctx, kvstore.LastBoardKey(r.userID), boardID)
}

func (r *repository) ClearLastBoardID(ctx context.Context) bool {
	return r.store.Remove(ctx, kvstore.LastBoardKey(r.userID))
}

// FindCard scans columns in order and returns the first card with cardID.
func FindCard(board *Board, cardID string) (*Column, *Card, bool) {
	if board == nil {
		return nil, nil, false
	}
	for _, col := range board.Columns {
		for _, card := range col.Cards {
			if card.ID == cardID {
				return col, card, true
			}
		}
	}
	return nil, nil, false
}

func FindColumn(board *Board, columnID string) (*Column, bool) {
	if board == nil {
		return nil, false
	}
	for _, col := range board.Columns {
		if col.ID == columnID {
			return col, true
		}
	}
	return nil, false
}

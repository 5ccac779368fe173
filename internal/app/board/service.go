package board

import (
	"context"

	"kanbanify/internal/apperr"
	"kanbanify/internal/kvstore"
	"kanbanify/internal/metrics"
	"kanbanify/internal/utils"

	"go.uber.org/zap"
)

// MoveResult is the outcome of a committed drag. Board is always the state the
// caller should show: with Moved=false it is the unchanged board, with
// Persisted=false the move is kept in memory although the store write failed.
type MoveResult struct {
	Board     *Board `json:"board"`
	Moved     bool   `json:"moved"`
	Persisted bool   `json:"persisted"`
}

// Service applies board operations for a user scope. A missing board is
// reported through the found bool, never as an error.
type Service interface {
	Repository(userID string) Repository
	ListBoards(ctx context.Context, userID string) []*Board
	GetBoard(ctx context.Context, userID, boardID string) (*Board, bool)
	CreateBoard(ctx context.Context, userID, name, presetID string) (*Board, error)
	GetOrCreateDefaultBoard(ctx context.Context, userID string) *Board
	RenameBoard(ctx context.Context, userID, boardID, name string) (*Board, bool, error)
	SaveBoard(ctx context.Context, userID string, board *Board) (*Board, bool)
	DeleteBoard(ctx context.Context, userID, boardID string) bool
	LastBoard(ctx context.Context, userID string) (*Board, bool)
	SelectBoard(ctx context.Context, userID, boardID string) bool

	AddColumn(ctx context.Context, userID, boardID, title string) (*Board, bool, error)
	RenameColumn(ctx context.Context, userID, boardID, columnID, title string) (*Board, bool, error)
	DeleteColumn(ctx context.Context, userID, boardID, columnID string) (*Board, bool)
	AddCard(ctx context.Context, userID, boardID, columnID, title string, details CardDetails) (*Board, bool, error)
	UpdateCard(ctx context.Context, userID, boardID, columnID, cardID string, patch CardPatch) (*Board, bool, error)
	DeleteCard(ctx context.Context, userID, boardID, columnID, cardID string) (*Board, bool)

	Drop(ctx context.Context, userID string, board *Board, activeCardID, overID string) MoveResult
	CommitMove(ctx context.Context, userID, boardID, activeCardID, overID string) (MoveResult, bool)
	PreviewMove(ctx context.Context, userID, boardID, activeCardID, overID string) (*Board, bool)
	StartDrag(ctx context.Context, userID, boardID, cardID string) (*DragSession, bool)
	CommitDrag(ctx context.Context, userID string, session *DragSession, overID string) MoveResult
	CancelDrag(session *DragSession) *Board
}

type service struct {
	store    kvstore.Store
	eventBus *utils.EventBus
	logger   *zap.Logger
	sugar    *zap.SugaredLogger
}

func NewService(store kvstore.Store, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
		sugar:    logger.Sugar(),
	}
}

func (s *service) Repository(userID string) Repository {
	return NewRepository(s.store, userID, s.logger)
}

func (s *service) publish(event, userID string, data interface{}) {
	if s.eventBus != nil {
		s.eventBus.Publish(event, userID, data)
	}
}

func (s *service) persist(ctx context.Context, repo Repository, op string, b *Board) (*Board, bool) {
	saved, ok := repo.SaveBoard(ctx, b)
	metrics.BoardMutations.WithLabelValues(op).Inc()
	s.publish(utils.EventBoardUpdated, repo.UserID(), saved)
	return saved, ok
}

func (s *service) ListBoards(ctx context.Context, userID string) []*Board {
	return s.Repository(userID).ListBoards(ctx)
}

func (s *service) GetBoard(ctx context.Context, userID, boardID string) (*Board, bool) {
	return s.Repository(userID).GetBoard(ctx, boardID)
}

func (s *service) CreateBoard(ctx context.Context, userID, name, presetID string) (*Board, error) {
	var preset Preset
	if presetID != "" {
		p, ok := FindPreset(presetID)
		if !ok {
			return nil, apperr.Validation("unknown board preset %q", presetID)
		}
		preset = p
	}

	repo := s.Repository(userID)
	b, err := repo.CreateBoard(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(preset.Columns) > 0 {
		withColumns, err := ApplyPreset(b, preset, repo.CreateColumn)
		if err != nil {
			return nil, err
		}
		b, _ = repo.SaveBoard(ctx, withColumns)
	}

	repo.SetLastBoardID(ctx, b.ID)
	metrics.BoardMutations.WithLabelValues("create_board").Inc()
	s.publish(utils.EventBoardUpdated, userID, b)
	s.sugar.Infow("Board created", "user_id", userID, "board_id", b.ID, "preset", presetID)
	return b, nil
}

func (s *service) GetOrCreateDefaultBoard(ctx context.Context, userID string) *Board {
	return s.Repository(userID).GetOrCreateDefaultBoard(ctx)
}

func (s *service) RenameBoard(ctx context.Context, userID, boardID, name string) (*Board, bool, error) {
	repo := s.Repository(userID)
	b, found, err := repo.UpdateBoardName(ctx, boardID, name)
	if err != nil || !found {
		return nil, found, err
	}
	metrics.BoardMutations.WithLabelValues("rename_board").Inc()
	s.publish(utils.EventBoardUpdated, userID, b)
	return b, true, nil
}

func (s *service) SaveBoard(ctx context.Context, userID string, board *Board) (*Board, bool) {
	return s.persist(ctx, s.Repository(userID), "save_board", board)
}

func (s *service) DeleteBoard(ctx context.Context, userID, boardID string) bool {
	repo := s.Repository(userID)
	if !repo.DeleteBoard(ctx, boardID) {
		return false
	}
	if last, ok := repo.LastBoardID(ctx); ok && last == boardID {
		if remaining := repo.ListBoards(ctx); len(remaining) > 0 {
			repo.SetLastBoardID(ctx, remaining[0].ID)
		} else {
			repo.ClearLastBoardID(ctx)
		}
	}
	metrics.BoardMutations.WithLabelValues("delete_board").Inc()
	s.publish(utils.EventBoardDeleted, userID, map[string]string{"id": boardID})
	s.sugar.Infow("Board deleted", "user_id", userID, "board_id", boardID)
	return true
}

// LastBoard returns the last selected board, falling back to the oldest one.
func (s *service) LastBoard(ctx context.Context, userID string) (*Board, bool) {
	repo := s.Repository(userID)
	boards := repo.ListBoards(ctx)
	if len(boards) == 0 {
		return nil, false
	}
	if id, ok := repo.LastBoardID(ctx); ok {
		for _, b := range boards {
			if b.ID == id {
				return b, true
			}
		}
	}
	return boards[0], true
}

func (s *service) SelectBoard(ctx context.Context, userID, boardID string) bool {
	repo := s.Repository(userID)
	if _, ok := repo.GetBoard(ctx, boardID); !ok {
		return false
	}
	return repo.SetLastBoardID(ctx, boardID)
}

func (s *service) AddColumn(ctx context.Context, userID, boardID, title string) (*Board, bool, error) {
	repo := s.Repository(userID)
	col, err := repo.CreateColumn(title)
	if err != nil {
		return nil, false, err
	}
	b, ok := repo.GetBoard(ctx, boardID)
	if !ok {
		return nil, false, nil
	}
	saved, _ := s.persist(ctx, repo, "add_column", AddColumn(b, col))
	return saved, true, nil
}

func (s *service) RenameColumn(ctx context.Context, userID, boardID, columnID, title string) (*Board, bool, error) {
	if err := apperr.ValidateString(title, "Column title"); err != nil {
		return nil, false, err
	}
	repo := s.Repository(userID)
	b, ok := repo.GetBoard(ctx, boardID)
	if !ok {
		return nil, false, nil
	}
	next, changed, err := RenameColumn(b, columnID, title)
	if err != nil {
		return nil, true, err
	}
	if !changed {
		return b, true, nil
	}
	saved, _ := s.persist(ctx, repo, "rename_column", next)
	return saved, true, nil
}

func (s *service) DeleteColumn(ctx context.Context, userID, boardID, columnID string) (*Board, bool) {
	repo := s.Repository(userID)
	b, ok := repo.GetBoard(ctx, boardID)
	if !ok {
		return nil, false
	}
	next, changed := DeleteColumn(b, columnID)
	if !changed {
		return b, true
	}
	saved, _ := s.persist(ctx, repo, "delete_column", next)
	return saved, true
}

func (s *service) AddCard(ctx context.Context, userID, boardID, columnID, title string, details CardDetails) (*Board, bool, error) {
	repo := s.Repository(userID)
	card, err := repo.CreateCard(title, details)
	if err != nil {
		return nil, false, err
	}
	b, ok := repo.GetBoard(ctx, boardID)
	if !ok {
		return nil, false, nil
	}
	next, added := AddCard(b, columnID, card)
	if !added {
		return b, true, nil
	}
	saved, _ := s.persist(ctx, repo, "add_card", next)
	return saved, true, nil
}

func (s *service) UpdateCard(ctx context.Context, userID, boardID, columnID, cardID string, patch CardPatch) (*Board, bool, error) {
	repo := s.Repository(userID)
	b, ok := repo.GetBoard(ctx, boardID)
	if !ok {
		return nil, false, nil
	}
	next, changed, err := UpdateCard(b, columnID, cardID, patch)
	if err != nil {
		return nil, true, err
	}
	if !changed {
		return b, true, nil
	}
	saved, _ := s.persist(ctx, repo, "update_card", next)
	return saved, true, nil
}

func (s *service) DeleteCard(ctx context.Context, userID, boardID, columnID, cardID string) (*Board, bool) {
	repo := s.Repository(userID)
	b, ok := repo.GetBoard(ctx, boardID)
	if !ok {
		return nil, false
	}
	next, changed := DeleteCard(b, columnID, cardID)
	if !changed {
		return b, true
	}
	saved, _ := s.persist(ctx, repo, "delete_card", next)
	return saved, true
}

// Drop commits a move on an in-memory board. No-ops skip the store entirely.
func (s *service) Drop(ctx context.Context, userID string, board *Board, activeCardID, overID string) MoveResult {
	next, moved := MoveCard(board, activeCardID, overID)
	if !moved {
		metrics.DragEvents.WithLabelValues("drop", "noop").Inc()
		s.sugar.Debugw("Drop ignored", "user_id", userID, "active_id", activeCardID, "over_id", overID)
		return MoveResult{Board: board}
	}
	return s.commitMoved(ctx, userID, next, activeCardID, overID)
}

func (s *service) commitMoved(ctx context.Context, userID string, next *Board, activeCardID, overID string) MoveResult {
	saved, persisted := s.persist(ctx, s.Repository(userID), "move_card", next)
	if !persisted {
		metrics.DragEvents.WithLabelValues("drop", "unpersisted").Inc()
		s.sugar.Warnw("Card moved but board was not persisted",
			"user_id", userID,
			"board_id", next.ID,
			"active_id", activeCardID,
			"over_id", overID,
		)
	} else {
		metrics.DragEvents.WithLabelValues("drop", "moved").Inc()
	}
	return MoveResult{Board: saved, Moved: true, Persisted: persisted}
}

func (s *service) CommitMove(ctx context.Context, userID, boardID, activeCardID, overID string) (MoveResult, bool) {
	b, ok := s.Repository(userID).GetBoard(ctx, boardID)
	if !ok {
		return MoveResult{}, false
	}
	return s.Drop(ctx, userID, b, activeCardID, overID), true
}

func (s *service) PreviewMove(ctx context.Context, userID, boardID, activeCardID, overID string) (*Board, bool) {
	b, ok := s.Repository(userID).GetBoard(ctx, boardID)
	if !ok {
		return nil, false
	}
	preview, changed := PreviewMove(b, activeCardID, overID)
	metrics.DragEvents.WithLabelValues("over", outcome(changed)).Inc()
	return preview, true
}

func (s *service) StartDrag(ctx context.Context, userID, boardID, cardID string) (*DragSession, bool) {
	b, ok := s.Repository(userID).GetBoard(ctx, boardID)
	if !ok {
		return nil, false
	}
	return StartDrag(b, cardID)
}

// CommitDrag applies the drop to the board as currently stored. When the board
// or the dragged card is gone the drop is a no-op.
func (s *service) CommitDrag(ctx context.Context, userID string, session *DragSession, overID string) MoveResult {
	if session.Done() {
		return MoveResult{Board: session.base}
	}
	if overID == "" {
		return MoveResult{Board: s.CancelDrag(session)}
	}
	current, ok := s.Repository(userID).GetBoard(ctx, session.BoardID())
	if !ok {
		session.Cancel()
		metrics.DragEvents.WithLabelValues("drop", "noop").Inc()
		s.sugar.Debugw("Drop on a deleted board", "user_id", userID, "board_id", session.BoardID())
		return MoveResult{Board: session.base}
	}
	result, moved := session.DropOnto(current, overID)
	if !moved {
		metrics.DragEvents.WithLabelValues("drop", "noop").Inc()
		return MoveResult{Board: result}
	}
	return s.commitMoved(ctx, userID, result, session.ActiveCardID(), overID)
}

func (s *service) CancelDrag(session *DragSession) *Board {
	metrics.DragEvents.WithLabelValues("cancel", "reverted").Inc()
	return session.Cancel()
}

func outcome(changed bool) string {
	if changed {
		return "moved"
	}
	return "noop"
}

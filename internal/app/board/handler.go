package board

import (
	"net/http"
	"strconv"

	"kanbanify/internal/apperr"
	"kanbanify/internal/middleware"

	"github.com/gin-gonic/gin"
)

// PersistedHeader is set to "false" when a move was applied but the store
// write failed.
const PersistedHeader = "X-Kanban-Persisted"

type Handler interface {
	ListBoards(c *gin.Context)
	CreateBoard(c *gin.Context)
	GetDefaultBoard(c *gin.Context)
	GetBoard(c *gin.Context)
	RenameBoard(c *gin.Context)
	SaveBoard(c *gin.Context)
	DeleteBoard(c *gin.Context)
	AddColumn(c *gin.Context)
	RenameColumn(c *gin.Context)
	DeleteColumn(c *gin.Context)
	AddCard(c *gin.Context)
	UpdateCard(c *gin.Context)
	DeleteCard(c *gin.Context)
	CommitMove(c *gin.Context)
	PreviewMove(c *gin.Context)
	GetLastBoard(c *gin.Context)
	SetLastBoard(c *gin.Context)
	ListPresets(c *gin.Context)
	ListPriorities(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error(), Code: string(apperr.CodeOf(err))})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: string(apperr.CodeValidation)})
}

func boardNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "board not found", Code: string(apperr.CodeNotFound)})
}

// @Summary List boards
// @Description List the boards of the caller's scope, oldest first
// @Tags Board
// @Produce json
// @Success 200 {object} BoardListResponse
// @Router /api/boards [get]
func (h *handler) ListBoards(c *gin.Context) {
	boards := h.service.ListBoards(c.Request.Context(), middleware.UserID(c))
	c.JSON(http.StatusOK, BoardListResponse{Boards: boards})
}

// @Summary Create board
// @Description Create a board, optionally seeded with the columns of a preset
// @Tags Board
// @Accept json
// @Produce json
// @Param request body CreateBoardRequest true "Board"
// @Success 201 {object} Board
// @Failure 400 {object} ErrorResponse
// @Router /api/boards [post]
func (h *handler) CreateBoard(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	b, err := h.service.CreateBoard(c.Request.Context(), middleware.UserID(c), req.Name, req.Preset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handler) GetDefaultBoard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetOrCreateDefaultBoard(c.Request.Context(), middleware.UserID(c)))
}

// @Summary Get board
// @Tags Board
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} Board
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id} [get]
func (h *handler) GetBoard(c *gin.Context) {
	b, ok := h.service.GetBoard(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if !ok {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) RenameBoard(c *gin.Context) {
	var req RenameBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	b, found, err := h.service.RenameBoard(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SaveBoard replaces the stored board with the body, under the id from the
// path, once the body passes Board.Validate.
func (h *handler) SaveBoard(c *gin.Context) {
	var b Board
	if err := c.ShouldBindJSON(&b); err != nil {
		badRequest(c)
		return
	}
	if err := b.Validate(); err != nil {
		respondError(c, err)
		return
	}
	b.ID = c.Param("id")
	saved, persisted := h.service.SaveBoard(c.Request.Context(), middleware.UserID(c), &b)
	c.Header(PersistedHeader, strconv.FormatBool(persisted))
	c.JSON(http.StatusOK, saved)
}

func (h *handler) DeleteBoard(c *gin.Context) {
	deleted := h.service.DeleteBoard(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

func (h *handler) AddColumn(c *gin.Context) {
	var req ColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	b, found, err := h.service.AddColumn(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handler) RenameColumn(c *gin.Context) {
	var req ColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	b, found, err := h.service.RenameColumn(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("column_id"), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) DeleteColumn(c *gin.Context) {
	b, found := h.service.DeleteColumn(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("column_id"))
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Add card
// @Description Append a card to a column. Tags may be objects or bare strings.
// @Tags Card
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param column_id path string true "Column ID"
// @Param request body CreateCardRequest true "Card"
// @Success 201 {object} Board
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id}/columns/{column_id}/cards [post]
func (h *handler) AddCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	b, found, err := h.service.AddCard(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("column_id"), req.Title, req.Details())
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handler) UpdateCard(c *gin.Context) {
	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	b, found, err := h.service.UpdateCard(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("column_id"), c.Param("card_id"), req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) DeleteCard(c *gin.Context) {
	b, found := h.service.DeleteCard(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("column_id"), c.Param("card_id"))
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Commit a card move
// @Description Drop active_id onto over_id (a card or a column). No-ops are not persisted.
// @Tags Move
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body MoveRequest true "Move"
// @Success 200 {object} MoveResult
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id}/moves [post]
func (h *handler) CommitMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	result, found := h.service.CommitMove(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.ActiveID, req.OverID)
	if !found {
		boardNotFound(c)
		return
	}
	if result.Moved && !result.Persisted {
		c.Header(PersistedHeader, "false")
	}
	c.JSON(http.StatusOK, result)
}

// PreviewMove returns the provisional board and never writes it.
func (h *handler) PreviewMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	b, found := h.service.PreviewMove(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.ActiveID, req.OverID)
	if !found {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) GetLastBoard(c *gin.Context) {
	b, ok := h.service.LastBoard(c.Request.Context(), middleware.UserID(c))
	if !ok {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) SetLastBoard(c *gin.Context) {
	var req LastBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if !h.service.SelectBoard(c.Request.Context(), middleware.UserID(c), req.BoardID) {
		boardNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board_id": req.BoardID})
}

func (h *handler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": Presets()})
}

func (h *handler) ListPriorities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"priorities": PriorityLevels()})
}

package user

import (
	"net/http"

	"kanbanify/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	ListUsers(c *gin.Context)
	CreateUser(c *gin.Context)
	GetUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
	GetCurrentUser(c *gin.Context)
	SetCurrentUser(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{
		service: service,
		logger:  logger.Sugar(),
	}
}

func userNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found", Code: string(apperr.CodeNotFound)})
}

func (h *handler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.service.ListUsers(c.Request.Context())})
}

// @Summary Create user
// @Description Create a user; name and colour default when omitted
// @Tags User
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User"
// @Success 201 {object} User
// @Router /api/users [post]
func (h *handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("CreateUser: invalid request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: string(apperr.CodeValidation)})
		return
	}
	u, err := h.service.CreateUser(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error(), Code: string(apperr.CodeOf(err))})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *handler) GetUser(c *gin.Context) {
	u, ok := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if !ok {
		userNotFound(c)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handler) UpdateUser(c *gin.Context) {
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warnw("UpdateUser: invalid request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: string(apperr.CodeValidation)})
		return
	}
	u, found, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error(), Code: string(apperr.CodeOf(err))})
		return
	}
	if !found {
		userNotFound(c)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Delete user
// @Description Delete a user and every board they own
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Router /api/users/{id} [delete]
func (h *handler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	deleted := h.service.DeleteUser(c.Request.Context(), id)
	h.logger.Infow("DeleteUser", "user_id", id, "deleted", deleted)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *handler) GetCurrentUser(c *gin.Context) {
	u, ok := h.service.CurrentUser(c.Request.Context())
	if !ok {
		userNotFound(c)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handler) SetCurrentUser(c *gin.Context) {
	var req CurrentUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required", Code: string(apperr.CodeValidation)})
		return
	}
	if !h.service.SetCurrentUser(c.Request.Context(), req.UserID) {
		userNotFound(c)
		return
	}
	u, _ := h.service.GetUser(c.Request.Context(), req.UserID)
	c.JSON(http.StatusOK, u)
}

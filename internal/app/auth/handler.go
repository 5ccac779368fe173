package auth

import (
	"net/http"

	"kanbanify/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Session(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error(), Code: string(apperr.CodeOf(err))})
}

// @Summary Register
// @Description Create an account; duplicate usernames are rejected
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account"
// @Success 201 {object} Profile
// @Failure 400 {object} ErrorResponse
// @Router /api/auth/register [post]
func (h *handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: string(apperr.CodeValidation)})
		return
	}
	u, err := h.service.CreateAuthUser(c.Request.Context(), req.Username, req.Password, req.Name, req.Color)
	if err != nil {
		h.logger.Warnw("Register: rejected", "username", req.Username, "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u.Profile())
}

// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResult
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: string(apperr.CodeValidation)})
		return
	}
	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": h.service.Logout(c.Request.Context())})
}

func (h *handler) Session(c *gin.Context) {
	user, ok := h.service.CurrentUser(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user": user})
}

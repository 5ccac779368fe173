package theme

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Get(c *gin.Context)
	Set(c *gin.Context)
	Toggle(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

type Request struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

func (h *handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.service.Get(c.Request.Context())})
}

func (h *handler) Set(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light or dark", "code": "VALIDATION_ERROR"})
		return
	}
	if !h.service.Set(c.Request.Context(), req.Theme) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save theme", "code": "STORAGE_ERROR"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}

func (h *handler) Toggle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.service.Toggle(c.Request.Context())})
}

package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the comma separated origins, or the local dev
// frontend when none are configured.
func CORSMiddleware(origins string) gin.HandlerFunc {
	allowedOrigins := []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	if origins != "" {
		allowedOrigins = strings.Split(origins, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Kanban-Persisted"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

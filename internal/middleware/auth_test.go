package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

type fakeParser struct{}

func (fakeParser) UserIDFromToken(token string) (string, error) {
	if token == "good" {
		return "user-1", nil
	}
	return "", errors.New("bad token")
}

func newRouter(t *testing.T, required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggerMiddleware(zaptest.NewLogger(t)))
	r.Use(AuthMiddleware(fakeParser{}, required, zaptest.NewLogger(t)))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		required   bool
		header     string
		query      string
		wantStatus int
		wantBody   string
	}{
		{"bearer token", true, "Bearer good", "", http.StatusOK, "user-1"},
		{"query token", true, "", "?token=good", http.StatusOK, "user-1"},
		{"missing token required", true, "", "", http.StatusUnauthorized, ""},
		{"missing token optional", false, "", "", http.StatusOK, ""},
		{"bad token optional", false, "Bearer bad", "", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(t, tt.required).ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != tt.wantBody {
				t.Fatalf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

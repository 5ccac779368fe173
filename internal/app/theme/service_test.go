package theme

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kanbanify/internal/kvstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

func TestThemeDefaultsToDark(t *testing.T) {
	svc := NewService(kvstore.NewMemoryStore(zaptest.NewLogger(t)), zaptest.NewLogger(t))
	if got := svc.Get(context.Background()); got != Dark {
		t.Fatalf("Get = %q", got)
	}
}

func TestSetAndToggle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kvstore.NewMemoryStore(zaptest.NewLogger(t)), zaptest.NewLogger(t))

	if svc.Set(ctx, "blue") {
		t.Fatal("unknown theme accepted")
	}
	if !svc.Set(ctx, Light) || svc.Get(ctx) != Light {
		t.Fatal("Set light failed")
	}
	if got := svc.Toggle(ctx); got != Dark || svc.Get(ctx) != Dark {
		t.Fatalf("Toggle = %q", got)
	}
	if got := svc.Toggle(ctx); got != Light {
		t.Fatalf("Toggle = %q", got)
	}
}

func TestCorruptThemeFallsBack(t *testing.T) {
	store := kvstore.NewMemoryStore(zaptest.NewLogger(t))
	store.SetRaw(kvstore.KeyTheme, []byte(`"sepia"`))
	if got := NewService(store, zaptest.NewLogger(t)).Get(context.Background()); got != Dark {
		t.Fatalf("Get = %q", got)
	}
}

func TestThemeHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(kvstore.NewMemoryStore(zaptest.NewLogger(t)), zaptest.NewLogger(t))
	RegisterRoutes(r, NewHandler(svc))

	req := httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{"theme":"neon"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/theme/toggle", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"light"`) {
		t.Fatalf("toggle: %d %s", w.Code, w.Body.String())
	}
}

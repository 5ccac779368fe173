package router

import (
	"net/http"

	"kanbanify/internal/app/auth"
	"kanbanify/internal/app/board"
	"kanbanify/internal/app/health"
	"kanbanify/internal/app/theme"
	"kanbanify/internal/app/user"
	"kanbanify/internal/gateways/websocket"
	"kanbanify/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
	scoped *gin.RouterGroup
}

// NewRouter builds the engine. Routes under the scoped group resolve the
// caller's board partition from their token.
func NewRouter(logger *zap.Logger, frontendURL string, tokens middleware.TokenParser, authRequired bool) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware(frontendURL))
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api")
	scoped := api.Group("")
	scoped.Use(middleware.AuthMiddleware(tokens, authRequired, logger))

	return &Router{Engine: engine, api: api, scoped: scoped}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterMetricsRoutes() {
	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}

func (r *Router) RegisterAuthRoutes(handler auth.Handler) {
	auth.RegisterRoutes(r.api, handler)
}

// RegisterUserRoutes mounts the user directory behind the auth middleware.
// The directory and the theme are shared by every account.
func (r *Router) RegisterUserRoutes(handler user.Handler) {
	user.RegisterRoutes(r.scoped, handler)
}

func (r *Router) RegisterThemeRoutes(handler theme.Handler) {
	theme.RegisterRoutes(r.scoped, handler)
}

func (r *Router) RegisterBoardRoutes(handler board.Handler) {
	board.RegisterCatalogRoutes(r.api, handler)
	board.RegisterRoutes(r.scoped, handler)
}

func (r *Router) Server(addr string) *http.Server {
	return &http.Server{Addr: addr, Handler: r.Engine}
}

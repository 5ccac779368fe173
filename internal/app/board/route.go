package board

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the scoped board routes; rg is expected to carry the
// auth middleware.
func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/boards", handler.ListBoards)
	rg.POST("/boards", handler.CreateBoard)
	rg.GET("/default-board", handler.GetDefaultBoard)
	rg.GET("/boards/:id", handler.GetBoard)
	rg.PATCH("/boards/:id", handler.RenameBoard)
	rg.PUT("/boards/:id", handler.SaveBoard)
	rg.DELETE("/boards/:id", handler.DeleteBoard)

	rg.POST("/boards/:id/columns", handler.AddColumn)
	rg.PATCH("/boards/:id/columns/:column_id", handler.RenameColumn)
	rg.DELETE("/boards/:id/columns/:column_id", handler.DeleteColumn)

	rg.POST("/boards/:id/columns/:column_id/cards", handler.AddCard)
	rg.PATCH("/boards/:id/columns/:column_id/cards/:card_id", handler.UpdateCard)
	rg.DELETE("/boards/:id/columns/:column_id/cards/:card_id", handler.DeleteCard)

	rg.POST("/boards/:id/moves", handler.CommitMove)
	rg.POST("/boards/:id/moves/preview", handler.PreviewMove)

	rg.GET("/last-board", handler.GetLastBoard)
	rg.PUT("/last-board", handler.SetLastBoard)
}

// RegisterCatalogRoutes mounts the static lookups that need no user scope.
func RegisterCatalogRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/board-presets", handler.ListPresets)
	rg.GET("/priorities", handler.ListPriorities)
}

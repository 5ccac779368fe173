package theme

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/theme", handler.Get)
	rg.PUT("/theme", handler.Set)
	rg.POST("/theme/toggle", handler.Toggle)
}

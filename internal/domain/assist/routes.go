package assist

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes registers the generation gateway routes. All behind
// admin auth, nothing here is public.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	g := r.Group("/assist")
	{
		g.POST("/generate", handler.Generate)
		g.GET("/templates", handler.Templates)
		g.GET("/history", handler.History)
		g.POST("/test", handler.Test)
	}
}

package admin

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the login endpoint. It stays outside the
// authenticated admin group since it issues the token.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/admin/login", handler.Login)
}

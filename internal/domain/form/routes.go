package form

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the public render endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/forms/:slug/render", handler.RenderForm)
}

// RegisterAdminRoutes registers admin form management routes.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	forms := r.Group("/forms")
	{
		forms.GET("", handler.ListForms)
		forms.POST("", handler.CreateForm)
		forms.GET("/:id", handler.GetForm)
		forms.PUT("/:id", handler.UpdateForm)
		forms.DELETE("/:id", handler.DeleteForm)
		forms.POST("/:id/duplicate", handler.DuplicateForm)
		forms.POST("/:id/toggle", handler.ToggleForm)
	}
}

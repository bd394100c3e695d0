package submission

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the intake endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/submissions", handler.Submit)
}

// RegisterAdminRoutes registers admin submission routes plus the form-scoped
// destination tests.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	subs := r.Group("/submissions")
	{
		subs.GET("", handler.ListSubmissions)
		subs.POST("/bulk-delete", handler.BulkDeleteSubmissions)
		subs.GET("/:id", handler.GetSubmission)
		subs.DELETE("/:id", handler.DeleteSubmission)
		subs.GET("/:id/whatsapp-link", handler.WhatsAppLink)
	}

	r.POST("/forms/:id/test-webhook", handler.TestWebhook)
	r.POST("/forms/:id/test-chatwoot", handler.TestChatwoot)
}

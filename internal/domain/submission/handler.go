package submission

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"formgate/internal/domain/form"
	"formgate/internal/pkg/response"
	"formgate/internal/pkg/validator"
)

// Handler handles submission HTTP requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/v1/submissions (public).
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Missing required fields", errs)
		return
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}

	result, err := h.service.Intake(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// ListSubmissions handles GET /api/v1/admin/submissions.
func (h *Handler) ListSubmissions(c *gin.Context) {
	formID, _ := strconv.ParseInt(c.Query("form_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	subs, total, err := h.service.List(c.Request.Context(), formID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, ListResponse{Submissions: subs, Total: total})
}

// GetSubmission handles GET /api/v1/admin/submissions/:id.
func (h *Handler) GetSubmission(c *gin.Context) {
	sub, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// DeleteSubmission handles DELETE /api/v1/admin/submissions/:id.
func (h *Handler) DeleteSubmission(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// BulkDeleteSubmissions handles POST /api/v1/admin/submissions/bulk-delete.
func (h *Handler) BulkDeleteSubmissions(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "No ids given", errs)
		return
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

// WhatsAppLink handles GET /api/v1/admin/submissions/:id/whatsapp-link.
func (h *Handler) WhatsAppLink(c *gin.Context) {
	link, err := h.service.WhatsAppLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"enabled": link != "",
		"link":    link,
	})
}

// TestWebhook handles POST /api/v1/admin/forms/:id/test-webhook.
func (h *Handler) TestWebhook(c *gin.Context) {
	formID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid form ID")
		return
	}

	var req TestWebhookRequest
	_ = c.ShouldBindJSON(&req) // empty body means primary slot

	result, err := h.service.TestWebhook(c.Request.Context(), formID, req.Slot)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// TestChatwoot handles POST /api/v1/admin/forms/:id/test-chatwoot.
func (h *Handler) TestChatwoot(c *gin.Context) {
	formID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid form ID")
		return
	}

	if err := h.service.TestChatwoot(c.Request.Context(), formID); err != nil {
		if errors.Is(err, form.ErrFormNotFound) {
			response.Error(c, http.StatusNotFound, "FORM_NOT_FOUND", "Form not found")
			return
		}
		response.Error(c, http.StatusBadGateway, "CHATWOOT_UNREACHABLE", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"connected": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", vErr.Message, gin.H{"field": vErr.Field})
	case errors.Is(err, form.ErrFormNotFound):
		response.Error(c, http.StatusNotFound, "FORM_NOT_FOUND", "Form not found")
	case errors.Is(err, form.ErrFormNotAvailable):
		response.Error(c, http.StatusUnprocessableEntity, "FORM_NOT_AVAILABLE", "Form is not accepting submissions")
	case errors.Is(err, ErrEmptyData):
		response.Error(c, http.StatusUnprocessableEntity, "EMPTY_SUBMISSION", "Submission has no data")
	case errors.Is(err, ErrSubmissionNotFound):
		response.Error(c, http.StatusNotFound, "SUBMISSION_NOT_FOUND", "Submission not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

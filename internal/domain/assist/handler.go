package assist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"formgate/internal/domain/form"
	"formgate/internal/pkg/response"
	"formgate/internal/pkg/validator"
)

// GenerateRequest asks for a stylesheet.
type GenerateRequest struct {
	FormID int64  `json:"form_id" validate:"required"`
	Prompt string `json:"prompt" validate:"required"`
}

// Handler handles assist HTTP requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Generate handles POST /api/v1/admin/assist/generate.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Missing required fields", errs)
		return
	}

	rec, err := h.service.Generate(c.Request.Context(), req.FormID, req.Prompt)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Templates handles GET /api/v1/admin/assist/templates.
func (h *Handler) Templates(c *gin.Context) {
	response.Success(c, http.StatusOK, Templates())
}

// History handles GET /api/v1/admin/assist/history.
func (h *Handler) History(c *gin.Context) {
	formID, err := strconv.ParseInt(c.Query("form_id"), 10, 64)
	if err != nil || formID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "form_id query parameter required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	recs, err := h.service.History(c.Request.Context(), formID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, recs)
}

// Test handles POST /api/v1/admin/assist/test.
func (h *Handler) Test(c *gin.Context) {
	if err := h.service.Test(c.Request.Context()); err != nil {
		if errors.Is(err, ErrNotConfigured) {
			response.Error(c, http.StatusConflict, "ASSIST_NOT_CONFIGURED", err.Error())
			return
		}
		response.Error(c, http.StatusBadGateway, "PROVIDER_UNREACHABLE", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"connected": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRateLimited):
		response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", err.Error())
	case errors.Is(err, ErrNotConfigured):
		response.Error(c, http.StatusConflict, "ASSIST_NOT_CONFIGURED", err.Error())
	case errors.Is(err, ErrEmptyPrompt):
		response.Error(c, http.StatusUnprocessableEntity, "EMPTY_PROMPT", err.Error())
	case errors.Is(err, form.ErrFormNotFound):
		response.Error(c, http.StatusNotFound, "FORM_NOT_FOUND", "Form not found")
	default:
		response.Error(c, http.StatusBadGateway, "GENERATION_FAILED", err.Error())
	}
}

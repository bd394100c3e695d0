package form

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"formgate/internal/pkg/response"
	"formgate/internal/pkg/validator"
)

// Handler handles form HTTP requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RenderForm handles GET /api/v1/forms/:slug/render (public).
func (h *Handler) RenderForm(c *gin.Context) {
	result, err := h.service.Render(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, result)
}

// CreateForm handles POST /api/v1/admin/forms.
func (h *Handler) CreateForm(c *gin.Context) {
	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid form definition", errs)
		return
	}

	f, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewFormResponse(f))
}

// GetForm handles GET /api/v1/admin/forms/:id (id or slug).
func (h *Handler) GetForm(c *gin.Context) {
	f, err := h.service.GetByRef(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewFormResponse(f))
}

// ListForms handles GET /api/v1/admin/forms.
func (h *Handler) ListForms(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var activeOnly *bool
	if v, ok := c.GetQuery("active"); ok {
		active := v == "true" || v == "1"
		activeOnly = &active
	}

	forms, total, err := h.service.List(c.Request.Context(), activeOnly, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	out := make([]FormResponse, 0, len(forms))
	for i := range forms {
		out = append(out, NewFormResponse(&forms[i]))
	}
	response.Success(c, http.StatusOK, FormListResponse{Forms: out, Total: total})
}

// UpdateForm handles PUT /api/v1/admin/forms/:id.
func (h *Handler) UpdateForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid form ID")
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid form definition", errs)
		return
	}

	f, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewFormResponse(f))
}

// DeleteForm handles DELETE /api/v1/admin/forms/:id.
func (h *Handler) DeleteForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid form ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// DuplicateForm handles POST /api/v1/admin/forms/:id/duplicate.
func (h *Handler) DuplicateForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid form ID")
		return
	}
	f, err := h.service.Duplicate(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewFormResponse(f))
}

// ToggleForm handles POST /api/v1/admin/forms/:id/toggle.
func (h *Handler) ToggleForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid form ID")
		return
	}
	f, err := h.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewFormResponse(f))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFormNotFound):
		response.Error(c, http.StatusNotFound, "FORM_NOT_FOUND", "Form not found")
	case errors.Is(err, ErrSlugTaken):
		response.Error(c, http.StatusConflict, "SLUG_TAKEN", "Slug already in use")
	case errors.Is(err, ErrUnsupportedField), errors.Is(err, ErrInvalidField):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_FIELD", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
